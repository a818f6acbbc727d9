package cmd

import (
	"fmt"
	"os"

	"github.com/shouni/go-storyboard-kit/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は各サブコマンドで共有する実行時パラメータなのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.BriefFile, "brief-file", "f", "", "クリエイティブブリーフ（JSON）のパスなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.ScriptFile, "script-file", "s", "", "生成済み台本（JSON）のパスなのだ。imageコマンドで使うのだよ。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "成果物の保存先ディレクトリ（ローカル or gs://...）なのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.TextModel, "model", config.DefaultTextModel, "台本生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "画像生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "上流APIリクエストのタイムアウトなのだ。")

	// --- serve 固有設定 ---
	serveCmd.Flags().StringVar(&opts.Addr, "addr", "", "HTTPサーバーの待ち受けアドレスなのだ（未指定なら :PORT）。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	// 資格情報の解決は環境変数からの注入のみで、ファイルを直接漁るようなことはしないのだよ。
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

// loadConfig は環境変数の設定にCLIフラグの値を重ねるのだ。
func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	cfg.TextModel = opts.TextModel
	cfg.ImageModel = opts.ImageModel
	cfg.HTTPTimeout = opts.HTTPTimeout
	cfg.Options = opts
	return cfg
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"storyboard-go",
		addAppFlags,
		preRunAppE,
		serveCmd,
		generateCmd,
		scriptCmd,
		imageCmd,
	)
}
