package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// generateCmd は、AIによる台本生成とフレームイラスト生成を一気に実行するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "ブリーフから絵コンテ一式を生成しますなのだ。",
	Long: `クリエイティブブリーフ（JSON）を読み込み、台本、フレームイラスト、
および最終的な絵コンテJSONを生成して保存するのだ。`,
	RunE: generateCommand,
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.BriefFile == "" {
		return fmt.Errorf("ブリーフ（--brief-file）を指定してほしいのだ")
	}

	cfg := loadConfig()

	slog.Info("絵コンテ生成パイプラインを起動するのだ！",
		"brief", opts.BriefFile,
		"text_model", cfg.TextModel,
		"image_model", cfg.ImageModel,
		"output", opts.OutputDir)

	if err := pipeline.Execute(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}
