package server

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// IPRateLimiter はクライアント IP ごとのトークンバケットを保持します。
type IPRateLimiter struct {
	limiters *cache.Cache
	limit    rate.Limit
	burst    int
}

// NewIPRateLimiter は 1 分あたり perMinute 回までのリクエストを許可するリミッターを作成します。
// perMinute が 0 以下の場合は nil を返し、制限を行いません。
func NewIPRateLimiter(perMinute int) *IPRateLimiter {
	if perMinute <= 0 {
		return nil
	}
	return &IPRateLimiter{
		limiters: cache.New(10*time.Minute, 5*time.Minute),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

// Allow は ip のリクエストを 1 回分消費できるかを返します。
func (l *IPRateLimiter) Allow(ip string) bool {
	if l == nil {
		return true
	}
	return l.limiterFor(ip).Allow()
}

func (l *IPRateLimiter) limiterFor(ip string) *rate.Limiter {
	if v, ok := l.limiters.Get(ip); ok {
		l.limiters.SetDefault(ip, v)
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	if err := l.limiters.Add(ip, lim, cache.DefaultExpiration); err != nil {
		if v, ok := l.limiters.Get(ip); ok {
			return v.(*rate.Limiter)
		}
	}
	return lim
}

// Middleware は制限を超えたリクエストに 429 を返すミドルウェアです。
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIPForRateLimit(r)
		if !l.Allow(ip) {
			slog.WarnContext(r.Context(), "レート制限を超えました", "ip", ip, "path", r.URL.Path)
			writeError(w, http.StatusTooManyRequests, "Too many requests. Please wait a moment and try again.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIPForRateLimit はリミッターのキーとなる接続元 IP を返します。
// クライアントが自由に設定できる X-Forwarded-For は参照しません。
// プロキシ配下では Options.TrustProxyHeaders で RealIP ミドルウェアを有効にし、RemoteAddr を書き換えてもらいます。
func clientIPForRateLimit(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		if net.ParseIP(host) != nil {
			return host
		}
	} else if net.ParseIP(r.RemoteAddr) != nil {
		return r.RemoteAddr
	}

	return r.RemoteAddr
}
