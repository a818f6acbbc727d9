package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultTextModel     = "gemini-3-flash-preview"
	DefaultImageModel    = "gemini-2.5-flash-image"
	DefaultHTTPTimeout   = 90 * time.Second // 上流API1呼び出しあたりのHTTPタイムアウト
	DefaultRequestBudget = 2 * time.Minute  // 1リクエスト全体のウォールクロック予算
	DefaultRateInterval  = time.Duration(0) // 0 = 全シーンの画像生成を一斉に開始する
	DefaultPort          = "8080"
	DefaultOutputDir     = "output" // CLIモードの成果物ディレクトリ（ローカル or gs://...）
)

// Config はアプリケーション全体の環境設定（APIキーやモデル設定）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey  string
	TextModel     string
	ImageModel    string
	Port          string
	HTTPTimeout   time.Duration
	RequestBudget time.Duration
	RateInterval  time.Duration

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
// 資格情報は環境変数からの注入のみで、設定ファイルを直接読むようなフォールバックは持たないのだよ。
func LoadConfig() *Config {
	return &Config{
		GeminiAPIKey:  envutil.GetEnv("GEMINI_API_KEY", ""),
		TextModel:     envutil.GetEnv("GEMINI_MODEL", DefaultTextModel),
		ImageModel:    envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		Port:          envutil.GetEnv("PORT", DefaultPort),
		HTTPTimeout:   durationEnv("HTTP_TIMEOUT", DefaultHTTPTimeout),
		RequestBudget: durationEnv("REQUEST_BUDGET", DefaultRequestBudget),
		RateInterval:  durationEnv("IMAGE_RATE_INTERVAL", DefaultRateInterval),
	}
}

// durationEnv は time.Duration 形式の環境変数を読むヘルパーなのだ。不正な値はデフォルトに落とす。
func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := envutil.GetEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	BriefFile  string // --brief-file: クリエイティブブリーフのJSONパス（ローカル or gs://...）
	ScriptFile string // --script-file: 生成済み台本JSONのパス（imageコマンド用）

	// 生成結果の出力設定
	OutputDir string // --output-dir: ローカル or gs://...

	// AI挙動設定
	TextModel  string // --model: 台本生成用のGeminiモデル
	ImageModel string // --image-model: フレームイラスト生成用のGeminiモデル

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
	Addr        string        // --addr: serveコマンドの待ち受けアドレス（未指定時は :PORT）
}
