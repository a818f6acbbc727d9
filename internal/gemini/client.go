package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultBaseURL    = "https://generativelanguage.googleapis.com"
	defaultAPIVersion = "v1beta"

	// 台本生成の出力は構造化JSONなので、温度は低めに固定するのだ
	defaultTextTemperature = 0.2
)

// Options は Client の生成パラメータです。
type Options struct {
	APIKey     string
	BaseURL    string
	APIVersion string
	HTTPClient *http.Client
}

// Client は Gemini generateContent API への薄いRESTクライアントなのだ。
// テキスト生成（台本）と画像生成（フレームイラスト）の両方をこの1つの通信層で賄うのだよ。
type Client struct {
	apiKey     string
	baseURL    string
	apiVersion string
	httpClient *http.Client
}

// New は新しい Client を生成して返します。
func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	apiVersion := strings.TrimSpace(opts.APIVersion)
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    baseURL,
		apiVersion: apiVersion,
		httpClient: httpClient,
	}
}

// Configured はAPIキーが注入されているかを返します。
// 資格情報の欠落は起動時・初回利用時の障害であって、ブリーフ単位の検証エラーではないのだ。
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// GenerateText はマルチモーダル対応のテキスト生成を1回実行し、応答テキストを返すのだ。
func (c *Client) GenerateText(ctx context.Context, model, systemInstruction string, parts []Part) (string, error) {
	req := generateContentRequest{
		Contents: []content{{Role: "user", Parts: toWireParts(parts)}},
		GenerationConfig: &generationConfig{
			Temperature: defaultTextTemperature,
		},
	}
	if systemInstruction != "" {
		req.SystemInstruction = &content{Role: "user", Parts: []wirePart{{Text: systemInstruction}}}
	}

	resp, err := c.generateContent(ctx, model, req)
	if err != nil {
		return "", err
	}

	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("応答にテキストが含まれていませんでした")
	}
	return text, nil
}

// GenerateImage は画像生成を1回実行し、生成画像を data URL として返すのだ。
// 応答に画像ペイロードが1つも含まれない場合は、そのリクエストの失敗として扱うのだよ。
func (c *Client) GenerateImage(ctx context.Context, model string, parts []Part) (string, error) {
	req := generateContentRequest{
		Contents: []content{{Role: "user", Parts: toWireParts(parts)}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}

	resp, err := c.generateContent(ctx, model, req)
	if err != nil {
		return "", err
	}

	if dataURL, ok := extractImage(resp); ok {
		return dataURL, nil
	}
	return "", fmt.Errorf("応答に画像データが含まれていませんでした")
}

// generateContent はワイヤ形式のリクエストを送信して応答をデコードする共通処理です。
func (c *Client) generateContent(ctx context.Context, model string, payload generateContentRequest) (generateContentResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return generateContentResponse{}, fmt.Errorf("リクエストのエンコードに失敗しました: %w", err)
	}

	url := fmt.Sprintf("%s/%s/models/%s:generateContent", c.baseURL, c.apiVersion, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return generateContentResponse{}, fmt.Errorf("リクエストの生成に失敗しました: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return generateContentResponse{}, fmt.Errorf("Gemini APIへのリクエストに失敗しました: %w", err)
	}
	defer httpResp.Body.Close()

	rawBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return generateContentResponse{}, fmt.Errorf("応答の読み取りに失敗しました: %w", err)
	}

	if httpResp.StatusCode >= 400 {
		return generateContentResponse{}, fmt.Errorf("Gemini API %s: %s", httpResp.Status, strings.TrimSpace(string(rawBody)))
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(rawBody, &decoded); err != nil {
		return generateContentResponse{}, fmt.Errorf("応答のデコードに失敗しました: %w", err)
	}
	return decoded, nil
}

func toWireParts(parts []Part) []wirePart {
	wire := make([]wirePart, 0, len(parts))
	for _, p := range parts {
		wp := wirePart{Text: p.Text}
		if p.InlineData != nil {
			wp.InlineData = &wireBlob{
				MimeType: p.InlineData.MimeType,
				Data:     p.InlineData.Data,
			}
		}
		wire = append(wire, wp)
	}
	return wire
}

// extractText は先頭候補の全テキストパートを連結して返します。
func extractText(resp generateContentResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// extractImage は先頭候補から最初のインライン画像を探して data URL に整形します。
func extractImage(resp generateContentResponse) (string, bool) {
	if len(resp.Candidates) == 0 {
		return "", false
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.InlineData != nil && p.InlineData.Data != "" {
			mime := p.InlineData.MimeType
			if mime == "" {
				mime = "image/png"
			}
			return fmt.Sprintf("data:%s;base64,%s", mime, p.InlineData.Data), true
		}
	}
	return "", false
}
