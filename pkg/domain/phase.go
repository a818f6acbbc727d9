package domain

// Phase は1回の生成リクエストが進む工程を表す有限状態値です。
// 共有のミュータブルなグローバルではなく、リクエストの寿命に沿って値として引き回すのだ。
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseValidating       Phase = "validating"
	PhaseGeneratingScript Phase = "generating-script"
	PhaseGeneratingImages Phase = "generating-images"
	PhaseAssembling       Phase = "assembling"
	PhaseComplete         Phase = "complete"
	PhaseError            Phase = "error"
)

// String は slog などの構造化ログにそのまま渡すための文字列表現を返します。
func (p Phase) String() string {
	return string(p)
}
