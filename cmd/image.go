package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// imageCmd は、生成済みの台本からフレームイラストだけを描き直すのだ。
var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "既存の台本からフレームイラストのみを生成しますなのだ。",
	Long: `scriptコマンドで保存した台本（JSON）とブリーフを読み込み、各シーンの
フレームイラストを生成して絵コンテを組み立て直すのだ。台本の再生成は行わないのだよ。`,
	RunE: imageCommand,
}

func imageCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.BriefFile == "" {
		return fmt.Errorf("ブリーフ（--brief-file）を指定してほしいのだ")
	}
	if opts.ScriptFile == "" {
		return fmt.Errorf("台本（--script-file）を指定してほしいのだ")
	}

	cfg := loadConfig()

	slog.Info("イラスト生成モードを起動するのだ！",
		"brief", opts.BriefFile,
		"script", opts.ScriptFile,
		"image_model", cfg.ImageModel,
		"output", opts.OutputDir)

	if err := pipeline.ExecuteImageOnly(ctx, cfg); err != nil {
		return fmt.Errorf("イラスト生成中にエラーが発生したのだ: %w", err)
	}

	return nil
}
