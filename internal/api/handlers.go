package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shouni/go-storyboard-kit/pkg/domain"

	"github.com/gin-gonic/gin"
)

// StoryboardGenerator は、1件のブリーフから絵コンテを生成する契約です。
// 実体は internal/pipeline の StoryboardPipeline なのだ。
type StoryboardGenerator interface {
	Run(ctx context.Context, brief domain.CreativeBrief) (domain.StoryboardDocument, error)
}

// GenerateHandler は POST /generate のリクエストハンドラなのだ。
// リクエストごとの状態はすべてハンドラ内のローカル値で、リクエスト間で共有されるものはないのだよ。
type GenerateHandler struct {
	generator StoryboardGenerator
	budget    time.Duration // 1リクエスト全体のウォールクロック予算
}

// NewGenerateHandler は新しい GenerateHandler を生成して返します。
func NewGenerateHandler(generator StoryboardGenerator, budget time.Duration) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
		budget:    budget,
	}
}

// Generate はブリーフを受け取り、完成した絵コンテかエラーのどちらかだけを返すのだ。
// 部分的な結果をストリーミングで返すことはしない。
func (h *GenerateHandler) Generate(c *gin.Context) {
	var brief domain.CreativeBrief
	if err := c.ShouldBindJSON(&brief); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストボディをブリーフとして解釈できませんでした"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.budget)
	defer cancel()

	storyboard, err := h.generator.Run(ctx, brief)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, storyboard)
}

// Health は稼働確認用の軽量エンドポイントなのだ。
func (h *GenerateHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// statusFor は失敗をHTTPステータスに振り分けます。
// 呼び出し側の入力不備だけが 400 で、それ以外（生成・パース・認証・タイムアウト）はすべて 500 です。
func statusFor(err error) int {
	if errors.Is(err, domain.ErrValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// errorMessage は呼び出し元へ返す人間可読なメッセージを1つだけ選ぶのだ。
func errorMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "生成が時間内に完了しませんでした"
	}
	return err.Error()
}

// requestLogger はアクセスログを slog に流す小さなミドルウェアなのだ。
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("HTTPリクエストを処理したのだ",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	}
}
