package pipeline

import (
	"context"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/internal/runner"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// StoryboardPipeline は、1件の生成リクエストを工程順に進めるオーケストレーターなのだ。
// ブリーフ → 台本 → 画像 → 絵コンテ、とデータは一方向にしか流れず、
// リクエストをまたいで状態を持つことはないのだよ。
type StoryboardPipeline struct {
	scripts runner.ScriptRunner
	images  runner.ImageRunner
}

// New は StoryboardPipeline の新しいインスタンスを生成して返すのだ。
func New(scripts runner.ScriptRunner, images runner.ImageRunner) *StoryboardPipeline {
	return &StoryboardPipeline{
		scripts: scripts,
		images:  images,
	}
}

// Run は 検証 → 台本生成 → 画像生成 → 組み立て を厳密に逐次実行するのだ。
//
// 工程は domain.Phase の値としてリクエストの寿命に沿って引き回される。
// 画像のプロンプトは台本の出力から導かれるため、台本生成が完全に決着する
// （成功か確定的な失敗か）までは画像生成を始めないのだ。
// 検証・台本生成・台本パースの失敗はその場で error 終端へ遷移するが、
// 個々の画像生成の失敗はフレーム単位で処理されるため、ここには届かないのだよ。
func (p *StoryboardPipeline) Run(ctx context.Context, brief domain.CreativeBrief) (domain.StoryboardDocument, error) {
	logger := slog.With("product", brief.ProductName)

	// --- Phase 1: Validation（上流APIに触れる前に入力を検査するのだ） ---
	phase := domain.PhaseValidating
	if err := brief.Validate(); err != nil {
		return domain.StoryboardDocument{}, p.fail(logger, phase, err)
	}

	// --- Phase 2: Script Phase（台本の生成） ---
	phase = domain.PhaseGeneratingScript
	logger.Info("台本生成を開始するのだ", "phase", phase, "duration", brief.DurationLabel())
	script, err := p.scripts.Run(ctx, brief)
	if err != nil {
		return domain.StoryboardDocument{}, p.fail(logger, phase, err)
	}
	logger.Info("台本生成が完了したのだ", "phase", phase, "title", script.Title, "frames", len(script.Frames))

	// --- Phase 3: Image Phase（フレームイラストの並列生成） ---
	phase = domain.PhaseGeneratingImages
	images, err := p.images.Run(ctx, script.ImagePrompts(), brief.ReferenceImages)
	if err != nil {
		return domain.StoryboardDocument{}, p.fail(logger, phase, err)
	}

	// --- Phase 4: Assemble（添字を揃えたままの純粋なマージ） ---
	phase = domain.PhaseAssembling
	storyboard := domain.AssembleStoryboard(brief, script, images)

	phase = domain.PhaseComplete
	logger.Info("絵コンテが完成したのだ！", "phase", phase, "total_frames", storyboard.TotalFrames)
	return storyboard, nil
}

// fail は error 終端への遷移を記録して、失敗をそのまま呼び出し元へ返すのだ。
func (p *StoryboardPipeline) fail(logger *slog.Logger, from domain.Phase, err error) error {
	logger.Error("生成パイプラインが失敗したのだ", "phase", domain.PhaseError, "failed_at", from, "error", err)
	return err
}
