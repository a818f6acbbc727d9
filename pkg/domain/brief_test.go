package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestCreativeBrief_Validate(t *testing.T) {
	t.Run("商品名があれば検証を通過するのだ", func(t *testing.T) {
		b := CreativeBrief{ProductName: "ずんだ茶寮のずんだ餅"}
		if err := b.Validate(); err != nil {
			t.Fatalf("正常なブリーフでエラーが発生しました: %v", err)
		}
	})

	t.Run("商品名が空ならErrValidationなのだ", func(t *testing.T) {
		b := CreativeBrief{ProductName: ""}
		err := b.Validate()
		if !errors.Is(err, ErrValidation) {
			t.Errorf("ErrValidation が返るべきところ、実際は %v", err)
		}
	})

	t.Run("空白だけの商品名も空とみなすのだ", func(t *testing.T) {
		b := CreativeBrief{ProductName: "   \t\n  "}
		if !errors.Is(b.Validate(), ErrValidation) {
			t.Error("空白のみの商品名が検証を通過してしまいました")
		}
	})

	t.Run("200文字ちょうどは許容されるのだ", func(t *testing.T) {
		b := CreativeBrief{ProductName: strings.Repeat("あ", MaxProductNameLength)}
		if err := b.Validate(); err != nil {
			t.Errorf("境界値（%d文字）でエラーが発生しました: %v", MaxProductNameLength, err)
		}
	})

	t.Run("201文字はErrValidationなのだ", func(t *testing.T) {
		b := CreativeBrief{ProductName: strings.Repeat("あ", MaxProductNameLength+1)}
		if !errors.Is(b.Validate(), ErrValidation) {
			t.Error("上限超過の商品名が検証を通過してしまいました")
		}
	})
}

func TestCreativeBrief_NormalizedDuration(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"15秒はそのまま", "15", "15"},
		{"30秒はそのまま", "30", "30"},
		{"60秒はそのまま", "60", "60"},
		{"未指定は30秒扱い", "", "30"},
		{"未知の値も30秒扱い", "45", "30"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := CreativeBrief{Duration: tc.input}
			if got := b.NormalizedDuration(); got != tc.expected {
				t.Errorf("期待値 '%s', 実際の値 '%s'", tc.expected, got)
			}
		})
	}
}

func TestCreativeBrief_DurationLabel(t *testing.T) {
	b := CreativeBrief{Duration: "60"}
	if got := b.DurationLabel(); got != "60s" {
		t.Errorf("期待値 '60s', 実際の値 '%s'", got)
	}

	// 未指定はデフォルト尺のラベルになるのだ
	b = CreativeBrief{}
	if got := b.DurationLabel(); got != "30s" {
		t.Errorf("期待値 '30s', 実際の値 '%s'", got)
	}
}

func TestCreativeBrief_ImagesByPurpose(t *testing.T) {
	b := CreativeBrief{
		ReferenceImages: []ReferenceImage{
			{Name: "bottle.png", Purpose: PurposeProduct},
			{Name: "actor.jpg", Purpose: PurposeTalent},
			{Name: "label.png", Purpose: PurposeProduct},
			{Name: "mood.png", Purpose: PurposeVisualTone},
		},
	}

	products := b.ImagesByPurpose(PurposeProduct)
	if len(products) != 2 {
		t.Fatalf("商品画像は2枚のはずが %d 枚でした", len(products))
	}
	// 元の並び順が維持されること
	if products[0].Name != "bottle.png" || products[1].Name != "label.png" {
		t.Errorf("並び順が崩れています: %+v", products)
	}

	if got := b.ImagesByPurpose("unknown"); got != nil {
		t.Errorf("未知の用途タグで空以外が返りました: %+v", got)
	}
}

func TestReferenceImage_DecodeDataURL(t *testing.T) {
	t.Run("正しいdata URLを分解できるのだ", func(t *testing.T) {
		r := ReferenceImage{Base64: "data:image/png;base64,aGVsbG8="}
		mimeType, data, ok := r.DecodeDataURL()
		if !ok {
			t.Fatal("正しい data URL の解析に失敗しました")
		}
		if mimeType != "image/png" {
			t.Errorf("MIMEタイプの期待値 'image/png', 実際の値 '%s'", mimeType)
		}
		if data != "aGVsbG8=" {
			t.Errorf("base64本体の期待値 'aGVsbG8=', 実際の値 '%s'", data)
		}
	})

	t.Run("不正な形式はok=falseなのだ", func(t *testing.T) {
		for _, raw := range []string{
			"",
			"aGVsbG8=",
			"data:text/plain;base64,aGVsbG8=",
			"data:image/png;base64,",
		} {
			r := ReferenceImage{Base64: raw}
			if _, _, ok := r.DecodeDataURL(); ok {
				t.Errorf("不正な入力 '%s' が解析に成功してしまいました", raw)
			}
		}
	})
}
