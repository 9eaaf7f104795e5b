package server

import (
	"context"
	"net/http"
	"time"

	"github.com/shouni/emotive-flow/internal/config"
)

// HTTPServer は http.Server をラップし、起動と graceful shutdown を提供します。
type HTTPServer struct {
	server *http.Server
}

// NewHTTPServer は設定値のタイムアウトを適用した HTTP サーバーを作成します。
func NewHTTPServer(cfg *config.Config, handler http.Handler) *HTTPServer {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}

	return &HTTPServer{server: srv}
}

// Addr は待ち受けアドレスを返します。
func (s *HTTPServer) Addr() string {
	return s.server.Addr
}

// Start は現在のゴルーチンでサーバーを起動します。
func (s *HTTPServer) Start() error {
	if s.server == nil {
		return nil
	}
	return s.server.ListenAndServe()
}

// Shutdown は処理中のリクエストを待ってからサーバーを停止します。
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
