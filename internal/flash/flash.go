// Package flash carries a typed value from one request to the next request
// of the same browser. A value is removed the first time it is read.
package flash

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultCookieName = "lottery_flash"

type entry[T any] struct {
	value   T
	expires time.Time
}

type Store[T any] struct {
	mu      sync.Mutex
	entries map[string]entry[T]
	ttl     time.Duration
	cookie  string
	secure  bool
	now     func() time.Time
}

type Option func(*options)

type options struct {
	cookie string
	secure bool
	now    func() time.Time
}

func WithCookieName(name string) Option {
	return func(o *options) { o.cookie = name }
}

// WithSecureCookie marks the cookie Secure, for deployments behind TLS.
func WithSecureCookie(secure bool) Option {
	return func(o *options) { o.secure = secure }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func New[T any](ttl time.Duration, opts ...Option) *Store[T] {
	o := options{cookie: DefaultCookieName, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{
		entries: make(map[string]entry[T]),
		ttl:     ttl,
		cookie:  o.cookie,
		secure:  o.secure,
		now:     o.now,
	}
}

// Put stores value under a fresh key and hands the key to the browser as a
// cookie. Nothing is added to the URL.
func (s *Store[T]) Put(w http.ResponseWriter, value T) error {
	key, err := uuid.NewRandom()
	if err != nil {
		return err
	}
	expires := s.now().Add(s.ttl)

	s.mu.Lock()
	s.entries[key.String()] = entry[T]{value: value, expires: expires}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie,
		Value:    key.String(),
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop returns the value staged for this browser and forgets it. The second
// call for the same key reports false.
func (s *Store[T]) Pop(w http.ResponseWriter, r *http.Request) (T, bool) {
	var zero T
	c, err := r.Cookie(s.cookie)
	if err != nil || c.Value == "" {
		return zero, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	s.mu.Lock()
	e, ok := s.entries[c.Value]
	delete(s.entries, c.Value)
	s.mu.Unlock()

	if !ok || !s.now().Before(e.expires) {
		return zero, false
	}
	return e.value, true
}

// Sweep drops expired entries and returns how many were removed.
func (s *Store[T]) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (s *Store[T]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
