package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/internal/builder"
	"github.com/shouni/go-storyboard-kit/internal/config"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/publisher"
)

// Execute は、ブリーフJSONを読み込み、台本生成 → 画像生成 → 組み立て → 保存 までの
// 全工程をCLIモードで一気に実行するのだ。
func Execute(ctx context.Context, cfg *config.Config) error {
	appCtx, err := builder.Setup(ctx, cfg)
	if err != nil {
		return err
	}

	brief, err := readBrief(ctx, appCtx, cfg.Options.BriefFile)
	if err != nil {
		return err
	}

	scripts, err := builder.BuildScriptRunner(appCtx)
	if err != nil {
		return err
	}
	p := New(scripts, builder.BuildImageRunner(appCtx))

	// HTTPサーバーと同じウォールクロック予算をCLIにも適用するのだ
	runCtx, cancel := context.WithTimeout(ctx, cfg.RequestBudget)
	defer cancel()

	storyboard, err := p.Run(runCtx, brief)
	if err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	result, err := builder.BuildPublisher(appCtx).Publish(ctx, storyboard, publisher.Options{OutputDir: cfg.Options.OutputDir})
	if err != nil {
		return err
	}

	slog.Info("すべての生成工程が完了したのだ！", "storyboard", result.StoryboardPath)
	return nil
}

// ExecuteScriptOnly は、台本の生成とJSON保存のみを実行するのだ。画像生成は行わないのだよ。
func ExecuteScriptOnly(ctx context.Context, cfg *config.Config) error {
	appCtx, err := builder.Setup(ctx, cfg)
	if err != nil {
		return err
	}

	brief, err := readBrief(ctx, appCtx, cfg.Options.BriefFile)
	if err != nil {
		return err
	}
	if err := brief.Validate(); err != nil {
		return err
	}

	scripts, err := builder.BuildScriptRunner(appCtx)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithTimeout(ctx, cfg.RequestBudget)
	defer cancel()

	script, err := scripts.Run(runCtx, brief)
	if err != nil {
		return fmt.Errorf("台本生成中にエラーが発生したのだ: %w", err)
	}

	jsonPath, err := builder.BuildPublisher(appCtx).PublishScript(ctx, script, publisher.Options{OutputDir: cfg.Options.OutputDir})
	if err != nil {
		return err
	}

	slog.Info("台本（JSON）の生成が完了したのだ！", "script", jsonPath, "frames", len(script.Frames))
	return nil
}

// ExecuteImageOnly は、生成・修正済みの台本JSONとブリーフを読み込み、
// 画像生成と保存（Phase 3 & 4）のみを実行するのだ。
// テキスト生成のコストを抑えつつ、画像の再生成や調整を行いたい場合に便利なのだ。
func ExecuteImageOnly(ctx context.Context, cfg *config.Config) error {
	appCtx, err := builder.Setup(ctx, cfg)
	if err != nil {
		return err
	}

	brief, err := readBrief(ctx, appCtx, cfg.Options.BriefFile)
	if err != nil {
		return err
	}
	if err := brief.Validate(); err != nil {
		return err
	}

	script, err := readScript(ctx, appCtx, cfg.Options.ScriptFile)
	if err != nil {
		return err
	}

	slog.Info("画像生成を開始するのだ...", "frames", len(script.Frames))

	runCtx, cancel := context.WithTimeout(ctx, cfg.RequestBudget)
	defer cancel()

	images, err := builder.BuildImageRunner(appCtx).Run(runCtx, script.ImagePrompts(), brief.ReferenceImages)
	if err != nil {
		return fmt.Errorf("画像生成に失敗したのだ: %w", err)
	}

	storyboard := domain.AssembleStoryboard(brief, script, images)
	result, err := builder.BuildPublisher(appCtx).Publish(ctx, storyboard, publisher.Options{OutputDir: cfg.Options.OutputDir})
	if err != nil {
		return err
	}

	slog.Info("画像生成と保存処理が完了したのだ！", "storyboard", result.StoryboardPath)
	return nil
}

// readBrief は、ローカルやGCSのパスからクリエイティブブリーフJSONを読み込むのだ。
func readBrief(ctx context.Context, appCtx *builder.AppContext, briefFile string) (domain.CreativeBrief, error) {
	if briefFile == "" {
		return domain.CreativeBrief{}, fmt.Errorf("ブリーフ（--brief-file）を指定してほしいのだ")
	}

	rc, err := appCtx.Reader.Open(ctx, briefFile)
	if err != nil {
		return domain.CreativeBrief{}, fmt.Errorf("ブリーフファイル '%s' の読み込みに失敗しました: %w", briefFile, err)
	}
	defer rc.Close()

	var brief domain.CreativeBrief
	if err := json.NewDecoder(rc).Decode(&brief); err != nil {
		return domain.CreativeBrief{}, fmt.Errorf("ブリーフファイル '%s' のデコードに失敗しました: %w", briefFile, err)
	}
	return brief, nil
}

// readScript は、生成済みの台本JSONを読み込むのだ。
func readScript(ctx context.Context, appCtx *builder.AppContext, scriptFile string) (domain.ScriptDocument, error) {
	if scriptFile == "" {
		return domain.ScriptDocument{}, fmt.Errorf("読み込む台本JSON（--script-file）を指定してほしいのだ")
	}

	rc, err := appCtx.Reader.Open(ctx, scriptFile)
	if err != nil {
		return domain.ScriptDocument{}, fmt.Errorf("台本ファイル '%s' の読み込みに失敗しました: %w", scriptFile, err)
	}
	defer rc.Close()

	var script domain.ScriptDocument
	if err := json.NewDecoder(rc).Decode(&script); err != nil {
		return domain.ScriptDocument{}, fmt.Errorf("台本ファイル '%s' のデコードに失敗しました: %w", scriptFile, err)
	}
	return script, nil
}
