package parser

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

const scriptJSON = `{
	"title": "朝のずんだ習慣",
	"frames": [
		{
			"sceneNumber": 1,
			"timestamp": "00:00",
			"sceneDescription": "朝日が差し込むキッチン",
			"dialogue": "新しい朝が始まるのだ",
			"cameraWork": "スローズームイン",
			"sound": "穏やかなピアノ",
			"directionNotes": "温かみのある色調で",
			"imagePrompt": "a sunlit kitchen in the morning, warm tones"
		},
		{
			"sceneNumber": 2,
			"timestamp": "00:10",
			"sceneDescription": "商品のクローズアップ",
			"dialogue": "",
			"cameraWork": "固定",
			"sound": "効果音",
			"directionNotes": "ロゴを強調",
			"imagePrompt": "close-up product shot with logo"
		}
	]
}`

func TestParseScriptResponse(t *testing.T) {
	// 素のJSON、コードフェンス付き、説明文に埋め込まれたJSONの
	// 3パターンすべてから同一の台本が得られることを確認するのだ
	variants := map[string]string{
		"素のJSON":       scriptJSON,
		"コードフェンス付き":    "```json\n" + scriptJSON + "\n```",
		"フェンスのみ（言語指定なし）": "```\n" + scriptJSON + "\n```",
		"前後に説明文あり":     "はい、台本を作成しました！\n" + scriptJSON + "\nご確認ください。",
	}

	baseline, err := ParseScriptResponse(scriptJSON)
	if err != nil {
		t.Fatalf("素のJSONのパースに失敗しました: %v", err)
	}

	for name, raw := range variants {
		t.Run(name, func(t *testing.T) {
			script, err := ParseScriptResponse(raw)
			if err != nil {
				t.Fatalf("パース失敗なのだ: %v", err)
			}
			if !reflect.DeepEqual(script, baseline) {
				t.Errorf("表現形式の違いで結果が変わってしまいました。期待: %+v, 実際: %+v", baseline, script)
			}
		})
	}

	t.Run("台本の中身が正しく読めていること", func(t *testing.T) {
		script, err := ParseScriptResponse(scriptJSON)
		if err != nil {
			t.Fatalf("パース失敗なのだ: %v", err)
		}
		if script.Title != "朝のずんだ習慣" {
			t.Errorf("タイトルが違うのだ: %s", script.Title)
		}
		if len(script.Frames) != 2 {
			t.Fatalf("フレーム数の期待値 2, 実際の値 %d", len(script.Frames))
		}
		if script.Frames[1].ImagePrompt != "close-up product shot with logo" {
			t.Errorf("描画指示が正しく読めていません: %s", script.Frames[1].ImagePrompt)
		}
	})
}

func TestParseScriptResponse_Errors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"JSONが全く含まれない", "申し訳ありませんが、台本を生成できませんでした。"},
		{"壊れたJSON", `{"title": "test", "frames": [`},
		{"空文字列", ""},
		{"フレームが空の台本", `{"title": "empty", "frames": []}`},
		{"フレームキー自体が無い", `{"title": "no frames"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScriptResponse(tc.input)
			if !errors.Is(err, domain.ErrScriptParse) {
				t.Errorf("ErrScriptParse が返るべきところ、実際は %v", err)
			}
		})
	}
}
