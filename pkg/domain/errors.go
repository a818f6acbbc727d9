package domain

import "errors"

// パイプライン全体で共有するエラー種別の定義なのだ。
// ハンドラ側は errors.Is でHTTPステータスへの振り分けだけを行い、
// メッセージ文字列はそのまま呼び出し元へ返すのだよ。
var (
	// ErrValidation はブリーフの入力不備。上流APIに到達する前に検出されます。
	ErrValidation = errors.New("入力エラー")

	// ErrScriptParse はAIの応答を台本JSONとして解釈できなかったことを示します。
	// フォールバック抽出まで試した後の最終的な失敗であり、リトライはしません。
	ErrScriptParse = errors.New("台本の解析エラー")

	// ErrUpstream は生成AI APIとの通信そのものの失敗（認証・ネットワーク・クォータ等）です。
	ErrUpstream = errors.New("生成APIエラー")
)
