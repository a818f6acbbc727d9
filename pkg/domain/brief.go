package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// 商品名の最大文字数。フォーム入力の暴走を上流API呼び出しの前に止めるための上限なのだ。
const MaxProductNameLength = 200

// Duration はCM全体の尺（秒）を表す列挙値です。
const (
	Duration15      = "15"
	Duration30      = "30"
	Duration60      = "60"
	DefaultDuration = Duration30
)

// ReferenceImage の用途タグの定義です。
const (
	PurposeProduct    = "product"
	PurposeTalent     = "talent"
	PurposeVisualTone = "visual-tone"
)

// CreativeBrief は広告主から集めたクリエイティブブリーフ（制作要件）を保持します。
// 商品名以外はすべて任意項目で、提出後に書き換えられることはありません。
type CreativeBrief struct {
	ProductName     string           `json:"productName"`
	Talent          string           `json:"talent,omitempty"`
	CreativeTone    string           `json:"creativeTone,omitempty"`
	Duration        string           `json:"duration,omitempty"`
	TargetAudience  string           `json:"targetAudience,omitempty"`
	KeyMessage      string           `json:"keyMessage,omitempty"`
	Setting         string           `json:"setting,omitempty"`
	Storyline       string           `json:"storyline,omitempty"`
	AdditionalNotes string           `json:"additionalNotes,omitempty"`
	ReferenceImages []ReferenceImage `json:"referenceImages,omitempty"`
}

// ReferenceImage はユーザーが添付した参照写真1枚を表します。
// Base64 は data URL（data:image/...;base64,...）形式で、リクエストの寿命を超えて保持しないのだ。
type ReferenceImage struct {
	Name    string `json:"name"`
	Base64  string `json:"base64"`
	Purpose string `json:"purpose"`
}

// Validate はブリーフの必須項目を検査するのだ。
// 違反はすべて ErrValidation にラップされ、上流APIには一切問い合わせないのだよ。
func (b CreativeBrief) Validate() error {
	if strings.TrimSpace(b.ProductName) == "" {
		return fmt.Errorf("%w: 商品・サービス名は必須です", ErrValidation)
	}
	if utf8.RuneCountInString(b.ProductName) > MaxProductNameLength {
		return fmt.Errorf("%w: 商品・サービス名が長すぎます（最大%d文字）", ErrValidation, MaxProductNameLength)
	}
	return nil
}

// NormalizedDuration は尺の指定を正規化して返します。未指定や未知の値は30秒扱いです。
func (b CreativeBrief) NormalizedDuration() string {
	switch b.Duration {
	case Duration15, Duration30, Duration60:
		return b.Duration
	default:
		return DefaultDuration
	}
}

// DurationLabel は最終成果物に表示する尺ラベル（例: "30s"）を返します。
func (b CreativeBrief) DurationLabel() string {
	return b.NormalizedDuration() + "s"
}

// ImagesByPurpose は用途タグが一致する参照画像だけを、元の並び順のまま返すのだ。
func (b CreativeBrief) ImagesByPurpose(purpose string) []ReferenceImage {
	var refs []ReferenceImage
	for _, r := range b.ReferenceImages {
		if r.Purpose == purpose {
			refs = append(refs, r)
		}
	}
	return refs
}

var dataURLRegex = regexp.MustCompile(`^data:(image/\w+);base64,(.+)$`)

// DecodeDataURL は data URL から MIMEタイプと base64 本体を取り出します。
// 形式が不正な場合は ok=false を返し、呼び出し側でその1枚だけをスキップできるようにします。
func (r ReferenceImage) DecodeDataURL() (mimeType, data string, ok bool) {
	m := dataURLRegex.FindStringSubmatch(strings.TrimSpace(r.Base64))
	if len(m) != 3 {
		return "", "", false
	}
	return m[1], m[2], true
}
