// Package server は Emotive Flow の画面と JSON API を HTTP で提供します。
package server

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shouni/emotive-flow/pkg/controller"
	"github.com/shouni/emotive-flow/pkg/generator"
)

//go:embed web/index.html.tmpl
var webFS embed.FS

// maxRequestBody は JSON リクエストボディの上限です。
const maxRequestBody = 8 << 10

// Options は Server の動作設定です。
type Options struct {
	MinLoadingDuration time.Duration
	SessionTTL         time.Duration
	GenerateRatePerMin int
	SecureCookies      bool
	// TrustProxyHeaders が true の場合のみ X-Forwarded-For などから接続元 IP を復元します。
	TrustProxyHeaders  bool
	Logger             *slog.Logger
}

// Server はセッションごとの Controller を HTTP ハンドラーとして公開します。
type Server struct {
	sessions *SessionStore
	limiter  *IPRateLimiter
	page     *template.Template
	logger   *slog.Logger
	realIP   bool
}

// New は生成器と設定から Server を組み立てます。
func New(gen generator.ImageGenerator, opts Options) (*Server, error) {
	if gen == nil {
		return nil, fmt.Errorf("image generator is nil")
	}
	page, err := template.ParseFS(webFS, "web/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("画面テンプレートの読み込みに失敗しました: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	newSession := func() *controller.Controller {
		return controller.New(gen, controller.WithMinDuration(opts.MinLoadingDuration))
	}

	return &Server{
		sessions: NewSessionStore(opts.SessionTTL, newSession, opts.SecureCookies),
		limiter:  NewIPRateLimiter(opts.GenerateRatePerMin),
		page:     page,
		logger:   logger,
		realIP:   opts.TrustProxyHeaders,
	}, nil
}

// Routes は chi ルーターを返します。
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if s.realIP {
		r.Use(middleware.RealIP)
	}
	r.Use(
		middleware.Recoverer,
		RequestLogger(s.logger),
	)

	r.Get("/healthz", s.health)
	r.Get("/", s.index)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.state)
		r.Get("/style", s.style)
		r.Get("/image", s.image)
		r.Get("/events", s.events)
		r.With(s.limiter.Middleware).Post("/generate", s.generate)
		r.Post("/reset", s.reset)
		r.Post("/dismiss", s.dismiss)
	})

	return r
}
