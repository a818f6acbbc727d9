package gemini

// Part はリクエストに載せるコンテンツブロック（テキスト or インライン画像）です。
type Part struct {
	Text       string
	InlineData *Blob
}

// Blob は base64 エンコード済みのインライン画像データです。
type Blob struct {
	MimeType string
	Data     string
}

// --- 以下は Gemini generateContent API のワイヤ形式なのだ ---

type generateContentRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	Temperature        float64  `json:"temperature,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type content struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type wirePart struct {
	Text       string    `json:"text,omitempty"`
	InlineData *wireBlob `json:"inlineData,omitempty"`
}

type wireBlob struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}
