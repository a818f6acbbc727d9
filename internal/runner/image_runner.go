package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/shouni/go-storyboard-kit/internal/gemini"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ImageRunner は、シーンごとの描画指示からフレームイラストを生成するためのインターフェース。
type ImageRunner interface {
	// Run は全シーンの画像生成を実行し、プロンプトと同じ並び順の結果リストを返す。
	// 失敗したシーンの位置には空文字列が入る。
	Run(ctx context.Context, scenePrompts []string, refs []domain.ReferenceImage) ([]string, error)
}

// ImageGenerator は画像生成APIとの通信の契約です。
type ImageGenerator interface {
	GenerateImage(ctx context.Context, model string, parts []gemini.Part) (string, error)
}

// SceneImageRunner は、全シーンのイラストを並列で生成する実体。
type SceneImageRunner struct {
	aiClient ImageGenerator // 画像生成AIへのクライアント
	model    string         // 使用する画像生成モデル名
	limiter  *rate.Limiter  // リクエスト開始の流量制限（interval 0 なら一斉開始）
}

// NewSceneImageRunner は、SceneImageRunnerの新しいインスタンスを生成して返す。
// rateInterval が 0 のときは流量制限なしで、全シーンの呼び出しを同時に開始するのだ。
func NewSceneImageRunner(ai ImageGenerator, model string, rateInterval time.Duration) *SceneImageRunner {
	return &SceneImageRunner{
		aiClient: ai,
		model:    model,
		// rate.Every(0) は Inf（無制限）になるのだ。Burst 2 は間隔指定時の立ち上がり用。
		limiter: rate.NewLimiter(rate.Every(rateInterval), 2),
	}
}

// Run は並列処理を用いて、各シーンの画像を生成するメインロジックなのだ。
//
// ここは settle-all の規律で動く: 全ゴルーチンの完了（成功か失敗か）を待ってから返り、
// 個々の失敗はそのシーンの結果を空にするだけで、兄弟のリクエストも全体も巻き込まないのだよ。
// そのため eg.Go に渡すクロージャは決して error を返さないのだ。
func (ir *SceneImageRunner) Run(ctx context.Context, scenePrompts []string, refs []domain.ReferenceImage) ([]string, error) {
	images := make([]string, len(scenePrompts))
	eg, egCtx := errgroup.WithContext(ctx)

	slog.Info("並列画像生成を開始するのだ", "count", len(scenePrompts))

	for i, prompt := range scenePrompts {
		i, prompt := i, prompt // ゴルーチンのクロージャ対策なのだ

		eg.Go(func() error {
			// 1. 流量制限に従って、自分の番が来るまで待機するのだ
			if err := ir.limiter.Wait(egCtx); err != nil {
				return nil
			}

			// 2. 参照画像一式を先頭に、シーン固有の指示を末尾に置いたパート列を作るのだ
			parts := ir.buildParts(prompt, refs)

			startTime := time.Now()
			dataURL, err := ir.aiClient.GenerateImage(egCtx, ir.model, parts)
			if err != nil {
				// 失敗はこの1フレームの欠落として記録するだけ。リトライもしないのだ。
				slog.Error("フレーム画像の生成に失敗したのだ", "scene", i+1, "error", err)
				return nil
			}

			images[i] = dataURL
			slog.Info("フレーム画像の生成に成功したのだ", "scene", i+1, "duration", time.Since(startTime).Round(time.Millisecond))
			return nil
		})
	}

	// すべての並列処理が完了するのを待つのだ（エラーは各ゴルーチン内で握り潰し済み）
	_ = eg.Wait()

	// 全体のウォールクロック予算を使い切った場合だけはリクエスト全体の失敗として返すのだ
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return images, nil
}

// buildParts は1リクエスト分のコンテンツを組み立てます。
// 参照画像は用途タグに関係なくフラットに全枚数を先頭に並べ、不正な data URL はスキップします。
func (ir *SceneImageRunner) buildParts(prompt string, refs []domain.ReferenceImage) []gemini.Part {
	parts := make([]gemini.Part, 0, len(refs)+1)
	for _, ref := range refs {
		mime, data, ok := ref.DecodeDataURL()
		if !ok {
			continue
		}
		parts = append(parts, gemini.Part{InlineData: &gemini.Blob{MimeType: mime, Data: data}})
	}
	parts = append(parts, gemini.Part{Text: prompt})
	return parts
}
