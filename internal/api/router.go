package api

import (
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter は絵コンテ生成APIのルーターを構築するのだ。
// エンドポイントは生成1本とヘルスチェックだけの小さなAPIなのだよ。
func NewRouter(generator StoryboardGenerator, budget time.Duration) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	handler := NewGenerateHandler(generator, budget)
	router.POST("/generate", handler.Generate)
	router.GET("/healthz", handler.Health)

	return router
}
