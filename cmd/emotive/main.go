package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/genai"

	"github.com/shouni/emotive-flow/internal/config"
	"github.com/shouni/emotive-flow/internal/server"
	"github.com/shouni/emotive-flow/pkg/generator"
	"github.com/shouni/emotive-flow/pkg/imgutil"
)

func main() {
	if err := run(); err != nil {
		slog.Error("起動に失敗しました", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return err
	}

	var wm generator.Watermarker
	if cfg.WatermarkEnabled {
		wm = imgutil.NewWatermarker()
	}
	gen, err := generator.NewGeminiGenerator(client.Models, wm, cfg.GeminiModel)
	if err != nil {
		return err
	}

	app, err := server.New(gen, server.Options{
		MinLoadingDuration: cfg.MinLoadingDuration,
		SessionTTL:         cfg.SessionTTL,
		GenerateRatePerMin: cfg.GenerateRatePerMin,
		SecureCookies:      cfg.IsProduction(),
		TrustProxyHeaders:  cfg.TrustProxyHeaders,
		Logger:             logger,
	})
	if err != nil {
		return err
	}

	srv := server.NewHTTPServer(cfg, app.Routes())

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Emotive Flow を起動しました",
			"addr", srv.Addr(),
			"model", gen.Model(),
			"watermark", cfg.WatermarkEnabled,
			"min_loading", cfg.MinLoadingDuration,
		)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("サーバーの停止に失敗しました", "error", err)
	}
	logger.Info("サーバーを停止しました")
	return nil
}
