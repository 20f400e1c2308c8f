package locale

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jekabolt/edupath/internal/dependency"
)

// CookieName keeps the language preference of anonymous visitors.
const CookieName = "edupath-language"

// CookieStore keeps the preference in a long lived cookie.
type CookieStore struct {
	w      http.ResponseWriter
	r      *http.Request
	Secure bool
}

func NewCookieStore(w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{w: w, r: r}
}

func (cs *CookieStore) Load() (string, bool) {
	if cs.r == nil {
		return "", false
	}
	c, err := cs.r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (cs *CookieStore) Save(code Code) error {
	if cs.w == nil {
		return nil
	}
	http.SetCookie(cs.w, &http.Cookie{
		Name:     CookieName,
		Value:    string(code),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
		Secure:   cs.Secure,
	})
	return nil
}

// ProfileStore keeps the preference on a signed in user's profile.
type ProfileStore struct {
	ctx      context.Context
	profiles dependency.Profiles
	userId   string
}

func NewProfileStore(ctx context.Context, profiles dependency.Profiles, userId string) *ProfileStore {
	return &ProfileStore{
		ctx:      ctx,
		profiles: profiles,
		userId:   userId,
	}
}

func (ps *ProfileStore) Load() (string, bool) {
	p, err := ps.profiles.GetProfile(ps.ctx, ps.userId)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Default().ErrorContext(ps.ctx, "can't load profile locale",
				slog.String("user_id", ps.userId),
				slog.String("err", err.Error()),
			)
		}
		return "", false
	}
	if !p.PreferredLocale.Valid || p.PreferredLocale.String == "" {
		return "", false
	}
	return p.PreferredLocale.String, true
}

func (ps *ProfileStore) Save(code Code) error {
	return ps.profiles.SetPreferredLocale(ps.ctx, ps.userId, string(code))
}

// Stores reads from the first store holding a supported value and saves to
// all of them.
type Stores []PreferenceStore

func (ss Stores) Load() (string, bool) {
	for _, s := range ss {
		if s == nil {
			continue
		}
		v, ok := s.Load()
		if !ok {
			continue
		}
		if _, err := ParseCode(v); err == nil {
			return v, true
		}
	}
	return "", false
}

func (ss Stores) Save(code Code) error {
	var errs []error
	for _, s := range ss {
		if s == nil {
			continue
		}
		if err := s.Save(code); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
