package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// ParseScriptResponse は、AIが返した自由形式テキストを台本（ScriptDocument）として解釈するのだ。
//
// 解釈は2段構えのパーサーとして振る舞う:
//  1. 応答全文をそのままJSONとしてパースする（Markdownのコードフェンスは事前に除去）。
//  2. 失敗したら、最初の '{' から最後の '}' までの部分文字列を切り出して再パースする。
//
// どちらも失敗した場合は ErrScriptParse を返し、それ以上のリトライは行わないのだよ。
func ParseScriptResponse(raw string) (domain.ScriptDocument, error) {
	cleaned := stripCodeFence(raw)

	var script domain.ScriptDocument
	if err := json.Unmarshal([]byte(cleaned), &script); err == nil {
		return ensureFrames(script)
	}

	// フォールバック: 前後に説明文が紛れ込んでいても、埋め込まれたJSON本体を救い出すのだ
	extracted, ok := extractJSONObject(cleaned)
	if !ok {
		return domain.ScriptDocument{}, fmt.Errorf("%w: 応答にJSONオブジェクトが見つかりません", domain.ErrScriptParse)
	}
	if err := json.Unmarshal([]byte(extracted), &script); err != nil {
		return domain.ScriptDocument{}, fmt.Errorf("%w: %v", domain.ErrScriptParse, err)
	}
	return ensureFrames(script)
}

// stripCodeFence はAIが付けがちなMarkdownタグ (```json ... ```) と余計な空白を取り除くのだ。
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractJSONObject は最初の '{' から最後の '}' までを切り出します。
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// ensureFrames は構造としては正しいが中身が空の台本を弾くのだ。
func ensureFrames(script domain.ScriptDocument) (domain.ScriptDocument, error) {
	if len(script.Frames) == 0 {
		return domain.ScriptDocument{}, fmt.Errorf("%w: 台本にフレームが1つも含まれていません", domain.ErrScriptParse)
	}
	return script, nil
}
