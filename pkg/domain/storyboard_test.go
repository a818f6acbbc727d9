package domain

import (
	"reflect"
	"testing"
)

func sampleScript(n int) ScriptDocument {
	frames := make([]SceneScript, n)
	for i := range frames {
		frames[i] = SceneScript{
			SceneNumber:      i + 1,
			Timestamp:        "00:05",
			SceneDescription: "シーンの説明",
			Dialogue:         "のだ！",
			CameraWork:       "ズームイン",
			Sound:            "BGM",
			DirectionNotes:   "明るく",
			ImagePrompt:      "a bright product shot",
		}
	}
	return ScriptDocument{Title: "テストCM", Frames: frames}
}

func TestScriptDocument_ImagePrompts(t *testing.T) {
	script := ScriptDocument{
		Frames: []SceneScript{
			{SceneNumber: 1, ImagePrompt: "first"},
			{SceneNumber: 2, ImagePrompt: "second"},
			{SceneNumber: 3, ImagePrompt: "third"},
		},
	}

	got := script.ImagePrompts()
	expected := []string{"first", "second", "third"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("描画指示の並び順が台本と一致しません。期待: %v, 実際: %v", expected, got)
	}
}

func TestAssembleStoryboard(t *testing.T) {
	brief := CreativeBrief{ProductName: "エイカムコーラ", Duration: "30"}

	t.Run("全シーンの画像が揃っている場合", func(t *testing.T) {
		script := sampleScript(3)
		images := []string{"data:image/png;base64,a", "data:image/png;base64,b", "data:image/png;base64,c"}

		doc := AssembleStoryboard(brief, script, images)

		if doc.Title != "テストCM" {
			t.Errorf("タイトルが台本から引き継がれていません: %s", doc.Title)
		}
		if doc.ProductName != "エイカムコーラ" {
			t.Errorf("商品名がブリーフから引き継がれていません: %s", doc.ProductName)
		}
		if doc.Duration != "30s" {
			t.Errorf("尺ラベルの期待値 '30s', 実際の値 '%s'", doc.Duration)
		}
		if doc.TotalFrames != 3 || len(doc.Frames) != 3 {
			t.Fatalf("フレーム数が一致しません: TotalFrames=%d, len=%d", doc.TotalFrames, len(doc.Frames))
		}
		for i, f := range doc.Frames {
			if f.ImageURL != images[i] {
				t.Errorf("フレーム%dの画像が添字どおりに対応していません: %s", i, f.ImageURL)
			}
			if f.SceneNumber != script.Frames[i].SceneNumber {
				t.Errorf("フレーム%dのシーン番号がずれています", i)
			}
		}
	})

	t.Run("一部のシーンで画像生成に失敗した場合", func(t *testing.T) {
		script := sampleScript(5)
		// シーン2と4（添字1と3）が失敗して空文字になったケースなのだ
		images := []string{"data:image/png;base64,a", "", "data:image/png;base64,c", "", "data:image/png;base64,e"}

		doc := AssembleStoryboard(brief, script, images)

		if len(doc.Frames) != 5 {
			t.Fatalf("失敗シーンもフレームとして残るべきところ、%d フレームでした", len(doc.Frames))
		}
		for _, i := range []int{1, 3} {
			if doc.Frames[i].ImageURL != "" {
				t.Errorf("失敗したシーン%dのImageURLが空ではありません: %s", i+1, doc.Frames[i].ImageURL)
			}
			// 台本のテキスト情報は失敗シーンでも完全に残ること
			if doc.Frames[i].Dialogue == "" || doc.Frames[i].SceneDescription == "" {
				t.Errorf("失敗したシーン%dの台本情報が欠落しています", i+1)
			}
		}
		if doc.Frames[0].ImageURL != "data:image/png;base64,a" {
			t.Error("成功したシーンの画像まで巻き添えになっています")
		}
	})

	t.Run("画像スライスが台本より短い場合", func(t *testing.T) {
		script := sampleScript(4)
		images := []string{"data:image/png;base64,a"}

		doc := AssembleStoryboard(brief, script, images)

		if len(doc.Frames) != 4 {
			t.Fatalf("フレーム数は台本基準であるべきところ %d でした", len(doc.Frames))
		}
		for i := 1; i < 4; i++ {
			if doc.Frames[i].ImageURL != "" {
				t.Errorf("画像が無いフレーム%dのImageURLが空ではありません", i)
			}
		}
	})

	t.Run("同じ入力からは同じ結果が得られるのだ", func(t *testing.T) {
		script := sampleScript(2)
		images := []string{"data:image/png;base64,a", "data:image/png;base64,b"}

		doc1 := AssembleStoryboard(brief, script, images)
		doc2 := AssembleStoryboard(brief, script, images)

		if !reflect.DeepEqual(doc1, doc2) {
			t.Error("純粋関数のはずが、同じ入力から異なる結果が生成されました")
		}
	})
}
