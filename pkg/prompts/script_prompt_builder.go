package prompts

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

//go:embed script_system.md
var scriptSystemTemplate string

// ContentPart はテキスト生成APIへ渡すマルチモーダルなコンテンツの1ブロックです。
// Text と Image はどちらか一方だけが設定されます。
type ContentPart struct {
	Text  string
	Image *domain.ReferenceImage
}

// 参照画像グループの先頭に置くラベルテキストなのだ。
const (
	productGroupLabel = "Product/Service Reference Photos:"
	talentGroupLabel  = "Talent/Cast Reference Photos:"
	toneGroupLabel    = "Visual Tone / Mood Reference Images:"
)

// ScriptPromptBuilder は、クリエイティブブリーフを台本生成用のプロンプトへ決定論的に変換します。
type ScriptPromptBuilder struct {
	systemTmpl *template.Template
}

// NewScriptPromptBuilder は新しい ScriptPromptBuilder を生成して返すのだ。
// 埋め込みテンプレートが壊れている場合はビルド時の設定ミスなのでエラーを返すのだよ。
func NewScriptPromptBuilder() (*ScriptPromptBuilder, error) {
	tmpl, err := template.New("script_system").Parse(scriptSystemTemplate)
	if err != nil {
		return nil, fmt.Errorf("システム指示テンプレートの解析に失敗したのだ: %w", err)
	}
	return &ScriptPromptBuilder{systemTmpl: tmpl}, nil
}

// FrameCountRange は尺の指定から要求フレーム数の範囲表現を導きます。
// 15秒→3〜4、30秒→5〜6、60秒→7〜8。未指定は30秒として扱うのだ。
func FrameCountRange(duration string) string {
	switch duration {
	case domain.Duration15:
		return "3 to 4"
	case domain.Duration60:
		return "7 to 8"
	default:
		return "5 to 6"
	}
}

// BuildSystemInstruction は、要求フレーム数とJSON出力スキーマを定義するシステム指示を生成します。
func (pb *ScriptPromptBuilder) BuildSystemInstruction(brief domain.CreativeBrief) (string, error) {
	duration := brief.NormalizedDuration()
	data := struct {
		FrameCount string
		Duration   string
	}{
		FrameCount: FrameCountRange(duration),
		Duration:   duration,
	}

	var sb strings.Builder
	if err := pb.systemTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("システム指示の生成に失敗したのだ: %w", err)
	}
	return sb.String(), nil
}

// BuildContent は、ブリーフをテキスト生成API向けのコンテンツブロック列に変換するのだ。
// 参照画像がなければテキスト1ブロックのみ。画像がある場合は
// product → talent → visual-tone のグループ順に「ラベル + 画像ブロック列」を並べ、
// 最後に本文のテキストプロンプトを置くのだよ。
func (pb *ScriptPromptBuilder) BuildContent(brief domain.CreativeBrief) []ContentPart {
	text := pb.buildTextPrompt(brief)

	if len(brief.ReferenceImages) == 0 {
		return []ContentPart{{Text: text}}
	}

	var parts []ContentPart
	appendGroup := func(label string, refs []domain.ReferenceImage) {
		if len(refs) == 0 {
			return
		}
		parts = append(parts, ContentPart{Text: label})
		for i := range refs {
			parts = append(parts, ContentPart{Image: &refs[i]})
		}
	}

	appendGroup(productGroupLabel, brief.ImagesByPurpose(domain.PurposeProduct))
	appendGroup(talentGroupLabel, brief.ImagesByPurpose(domain.PurposeTalent))
	appendGroup(toneGroupLabel, brief.ImagesByPurpose(domain.PurposeVisualTone))

	parts = append(parts, ContentPart{Text: text})
	return parts
}

// buildTextPrompt は、入力済みの任意項目だけをラベル付きの行として固定順で並べます。
// 空の項目はプレースホルダも残さず完全に省略するのだ。
func (pb *ScriptPromptBuilder) buildTextPrompt(brief domain.CreativeBrief) string {
	parts := []string{
		fmt.Sprintf("Create a storyboard for a %s-second commercial advertisement.", brief.NormalizedDuration()),
		fmt.Sprintf("Product/Service: %s", brief.ProductName),
	}

	if brief.Talent != "" {
		parts = append(parts, fmt.Sprintf("Talent/Cast: %s", brief.Talent))
	}
	if brief.CreativeTone != "" {
		parts = append(parts, fmt.Sprintf("Creative Tone: %s", brief.CreativeTone))
	}
	if brief.TargetAudience != "" {
		parts = append(parts, fmt.Sprintf("Target Audience: %s", brief.TargetAudience))
	}
	if brief.KeyMessage != "" {
		parts = append(parts, fmt.Sprintf("Key Message: %s", brief.KeyMessage))
	}
	if brief.Setting != "" {
		parts = append(parts, fmt.Sprintf("Setting/Location: %s", brief.Setting))
	}
	if brief.Storyline != "" {
		// ストーリーラインは物語の背骨としてフレーム構成の基準にさせるのだ
		parts = append(parts, fmt.Sprintf("\nStoryline / Prompt (IMPORTANT — follow this storyline closely):\n%s", brief.Storyline))
	}
	if brief.AdditionalNotes != "" {
		parts = append(parts, fmt.Sprintf("Additional Notes: %s", brief.AdditionalNotes))
	}

	// どの種類の視覚的根拠が添付されたかは、モデル呼び出しがマルチモーダルかどうかに
	// かかわらず、必ず本文の指示として明記するのだ。
	if len(brief.ImagesByPurpose(domain.PurposeProduct)) > 0 {
		parts = append(parts, "\n[PRODUCT/SERVICE REFERENCE IMAGES ATTACHED] — Use these images to understand the product's actual appearance, packaging, logo, and branding. Accurately describe the product's visual details in each scene's imagePrompt so the image generator can reproduce the product faithfully.")
	}
	if len(brief.ImagesByPurpose(domain.PurposeTalent)) > 0 {
		parts = append(parts, "\n[TALENT REFERENCE IMAGES ATTACHED] — Use these images as visual reference for the talent/cast appearance. Describe the person's look in each scene's imagePrompt so the image generator can reproduce a similar appearance.")
	}
	if len(brief.ImagesByPurpose(domain.PurposeVisualTone)) > 0 {
		parts = append(parts, "\n[VISUAL TONE REFERENCE IMAGES ATTACHED] — Use these images as reference for the overall visual style, color palette, mood, and atmosphere. Incorporate this aesthetic into each scene's imagePrompt.")
	}

	return strings.Join(parts, "\n")
}
