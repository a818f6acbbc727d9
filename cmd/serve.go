package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shouni/go-storyboard-kit/internal/api"
	"github.com/shouni/go-storyboard-kit/internal/builder"
	"github.com/shouni/go-storyboard-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// serveCmd は、絵コンテ生成のHTTP APIサーバーを起動するのだ。
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "絵コンテ生成のHTTP APIサーバーを起動しますなのだ。",
	Long: `POST /generate でクリエイティブブリーフを受け取り、台本生成と画像生成を
オーケストレーションして、完成した絵コンテをJSONで返すサーバーなのだ。`,
	RunE: serveCommand,
}

func serveCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	appCtx, err := builder.Setup(ctx, cfg)
	if err != nil {
		return err
	}

	scripts, err := builder.BuildScriptRunner(appCtx)
	if err != nil {
		return err
	}
	generator := pipeline.New(scripts, builder.BuildImageRunner(appCtx))
	router := api.NewRouter(generator, cfg.RequestBudget)

	addr := opts.Addr
	if addr == "" {
		addr = ":" + cfg.Port
	}

	slog.Info("絵コンテ生成サーバーを起動するのだ！",
		"addr", addr,
		"text_model", cfg.TextModel,
		"image_model", cfg.ImageModel,
		"request_budget", cfg.RequestBudget)

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// サーバー本体は別ゴルーチンで起動して、ここではシグナルを待つのだ
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("サーバーの起動に失敗したのだ: %w", err)
	case sig := <-quit:
		slog.Info("シグナルを受信したので、サーバーを閉じるのだ", "signal", sig.String())
	}

	// 処理中のリクエストを見届けてから閉じるのだ
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("サーバーの終了処理に失敗したのだ: %w", err)
	}

	slog.Info("サーバーを正常に終了したのだ！")
	return nil
}
