package runner

import (
	"context"
	"fmt"

	"github.com/shouni/go-storyboard-kit/internal/gemini"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/parser"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
)

// ScriptRunner は、ブリーフから構造化された台本を生成するためのインターフェースなのだ。
type ScriptRunner interface {
	// Run は台本生成を実行し、構造化された台本データを返すのだ。
	Run(ctx context.Context, brief domain.CreativeBrief) (domain.ScriptDocument, error)
}

// TextGenerator はテキスト生成APIとの通信の契約です。
type TextGenerator interface {
	GenerateText(ctx context.Context, model, systemInstruction string, parts []gemini.Part) (string, error)
}

// StoryboardScriptRunner は、ブリーフからCMの台本（シーン構成案）を生成する核となる構造体なのだ。
type StoryboardScriptRunner struct {
	aiClient      TextGenerator                // テキスト生成APIと通信するクライアント
	promptBuilder *prompts.ScriptPromptBuilder // AIに渡すプロンプトを構築するビルダー
	model         string                       // 使用するテキスト生成モデル名
}

// NewStoryboardScriptRunner は、StoryboardScriptRunnerの新しいインスタンスを生成して返すのだ。
func NewStoryboardScriptRunner(ai TextGenerator, pb *prompts.ScriptPromptBuilder, model string) *StoryboardScriptRunner {
	return &StoryboardScriptRunner{
		aiClient:      ai,
		promptBuilder: pb,
		model:         model,
	}
}

// Run は、プロンプト構築、AIによる生成、結果のパースを一気に行うのだ。
// テキスト生成APIへのリクエストはちょうど1回で、パース失敗時のリトライはしないのだよ。
func (sr *StoryboardScriptRunner) Run(ctx context.Context, brief domain.CreativeBrief) (domain.ScriptDocument, error) {
	// 1. ブリーフからシステム指示（出力スキーマ + フレーム数）を組み立てるのだ
	systemInstruction, err := sr.promptBuilder.BuildSystemInstruction(brief)
	if err != nil {
		return domain.ScriptDocument{}, err
	}

	// 2. 参照画像を含むマルチモーダルなコンテンツブロック列を作るのだ
	parts := toGeminiParts(sr.promptBuilder.BuildContent(brief))

	// 3. Geminiを使って、台本（JSON形式を期待）を生成させるのだ
	raw, err := sr.aiClient.GenerateText(ctx, sr.model, systemInstruction, parts)
	if err != nil {
		return domain.ScriptDocument{}, fmt.Errorf("%w: 台本の生成に失敗しました: %v", domain.ErrUpstream, err)
	}

	// 4. AIが返したテキストからJSON部分を抽出し、構造体に変換するのだ
	return parser.ParseScriptResponse(raw)
}

// toGeminiParts はプロンプトビルダーの中立的なブロック列をワイヤ形式のパートへ変換するのだ。
// data URL として解釈できない参照画像は、その1枚だけを黙ってスキップするのだよ。
func toGeminiParts(content []prompts.ContentPart) []gemini.Part {
	parts := make([]gemini.Part, 0, len(content))
	for _, c := range content {
		if c.Image != nil {
			mime, data, ok := c.Image.DecodeDataURL()
			if !ok {
				continue
			}
			parts = append(parts, gemini.Part{InlineData: &gemini.Blob{MimeType: mime, Data: data}})
			continue
		}
		parts = append(parts, gemini.Part{Text: c.Text})
	}
	return parts
}
