package builder

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shouni/go-storyboard-kit/internal/config"
	"github.com/shouni/go-storyboard-kit/internal/gemini"
	"github.com/shouni/go-storyboard-kit/internal/runner"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
	"github.com/shouni/go-storyboard-kit/pkg/publisher"

	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

// Setup は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
// 資格情報が空の場合はここで失敗させる。欠落は起動時の障害であって、リクエスト単位の検証エラーではないのだ。
func Setup(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	aiClient := gemini.New(gemini.Options{
		APIKey:     cfg.GeminiAPIKey,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
	})

	gcsFactory, err := gcsfactory.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.InputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.OutputWriter()
	if err != nil {
		return nil, err
	}

	appCtx := NewAppContext(cfg, aiClient, reader, writer)
	return &appCtx, nil
}

// BuildScriptRunner は台本生成を担当する Runner を構築します。
func BuildScriptRunner(appCtx *AppContext) (runner.ScriptRunner, error) {
	pb, err := prompts.NewScriptPromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("プロンプトビルダーの構築に失敗したのだ: %w", err)
	}
	return runner.NewStoryboardScriptRunner(appCtx.aiClient, pb, appCtx.Config.TextModel), nil
}

// BuildImageRunner はフレームイラストの並列生成を担当する Runner を構築します。
func BuildImageRunner(appCtx *AppContext) runner.ImageRunner {
	return runner.NewSceneImageRunner(appCtx.aiClient, appCtx.Config.ImageModel, appCtx.Config.RateInterval)
}

// BuildPublisher は成果物の保存を行うパブリッシャーを構築します。
func BuildPublisher(appCtx *AppContext) *publisher.StoryboardPublisher {
	return publisher.NewStoryboardPublisher(appCtx.Writer)
}
