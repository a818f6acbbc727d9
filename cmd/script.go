package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// scriptCmd は、台本の生成（JSON出力）のみを実行するのだ。
var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "台本（JSON）のみを生成して保存するのだ。",
	Long: `クリエイティブブリーフを解析し、CMのシーン構成案（タイトル、タイムスタンプ、
台詞、カメラワーク、描画指示）をJSON形式で出力するのだ。画像生成は行わないのだよ。`,
	RunE: scriptCommand,
}

func scriptCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.BriefFile == "" {
		return fmt.Errorf("ブリーフ（--brief-file）を指定してほしいのだ")
	}

	cfg := loadConfig()

	slog.Info("台本生成モードを起動するのだ！",
		"brief", opts.BriefFile,
		"text_model", cfg.TextModel,
		"output", opts.OutputDir)

	if err := pipeline.ExecuteScriptOnly(ctx, cfg); err != nil {
		return fmt.Errorf("台本生成中にエラーが発生したのだ: %w", err)
	}

	return nil
}
