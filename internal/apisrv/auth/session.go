package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"

	"github.com/jekabolt/edupath/internal/entity"
	gerr "github.com/jekabolt/edupath/internal/errors"
)

type ctxKey struct{}

// WithSession stores sess in ctx.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// SessionFromContext returns the session put there by Session or
// RequireSession.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(ctxKey{}).(*Session)
	return sess, ok && sess != nil
}

// DenyFunc answers a request that has no acceptable session. err wraps
// gerr.ErrUnauthenticated or gerr.ErrForbidden.
type DenyFunc func(w http.ResponseWriter, r *http.Request, err error)

// RedirectTo sends unauthenticated page requests to path, remembering where
// they were going. Forbidden requests are sent home.
func RedirectTo(path string) DenyFunc {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		if errors.Is(err, gerr.ErrForbidden) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		target := path + "?next=" + url.QueryEscape(r.URL.RequestURI())
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// Session attaches the session when the request carries a valid one and
// lets every request through.
func (s *Server) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess, err := s.SessionFromRequest(r); err == nil {
			r = r.WithContext(WithSession(r.Context(), sess))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSession lets a request through only once its token verified.
// Everything else goes to deny.
func (s *Server) RequireSession(deny DenyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := SessionFromContext(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}
			sess, err := s.SessionFromRequest(r)
			if err != nil {
				deny(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// RequireRole extends RequireSession with a role check.
func (s *Server) RequireRole(deny DenyFunc, roles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		check := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, _ := SessionFromContext(r.Context())
			if !slices.Contains(roles, sess.Role) {
				deny(w, r, fmt.Errorf("role %s: %w", sess.Role, gerr.ErrForbidden))
				return
			}
			next.ServeHTTP(w, r)
		})
		return s.RequireSession(deny)(check)
	}
}
