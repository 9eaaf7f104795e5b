package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/shouni/emotive-flow/pkg/controller"
)

// SessionCookieName はブラウザごとのセッション ID を保持する Cookie 名です。
const SessionCookieName = "emotive_session"

// SessionStore はセッション ID ごとに Controller を保持します。
// アクセスのたびに有効期限を延長し、放置されたセッションは TTL 経過後に破棄されます。
type SessionStore struct {
	items      *cache.Cache
	ttl        time.Duration
	newSession func() *controller.Controller
	secure     bool
}

// NewSessionStore は TTL と Controller の生成関数を指定して SessionStore を作成します。
func NewSessionStore(ttl time.Duration, newSession func() *controller.Controller, secure bool) *SessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionStore{
		items:      cache.New(ttl, ttl/2),
		ttl:        ttl,
		newSession: newSession,
		secure:     secure,
	}
}

// Len は現在保持しているセッション数を返します。
func (s *SessionStore) Len() int {
	return s.items.ItemCount()
}

// Lookup は Cookie に対応する既存の Controller を返します。新規作成はしません。
func (s *SessionStore) Lookup(r *http.Request) (*controller.Controller, bool) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	return s.touch(c.Value)
}

// Get は Cookie に対応する Controller を返し、無ければ新しいセッションを作成して Cookie を発行します。
func (s *SessionStore) Get(w http.ResponseWriter, r *http.Request) *controller.Controller {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		if ctl, ok := s.touch(c.Value); ok {
			s.setCookie(w, c.Value)
			return ctl
		}
	}

	id := uuid.NewString()
	ctl := s.newSession()
	if err := s.items.Add(id, ctl, cache.DefaultExpiration); err != nil {
		// UUID の衝突時は既存のものを優先します。
		if existing, ok := s.touch(id); ok {
			ctl = existing
		}
	}
	s.setCookie(w, id)
	return ctl
}

func (s *SessionStore) touch(id string) (*controller.Controller, bool) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, false
	}
	ctl, ok := v.(*controller.Controller)
	if !ok {
		return nil, false
	}
	s.items.SetDefault(id, ctl)
	return ctl, true
}

func (s *SessionStore) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
