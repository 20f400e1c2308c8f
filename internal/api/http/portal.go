package httpapi

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jekabolt/edupath/internal/apisrv/auth"
	"github.com/jekabolt/edupath/internal/catalog"
	"github.com/jekabolt/edupath/internal/entity"
	gerr "github.com/jekabolt/edupath/internal/errors"
	"github.com/jekabolt/edupath/internal/form"
	"github.com/jekabolt/edupath/internal/locale"
	clientid "github.com/jekabolt/edupath/internal/middleware"
)

type localeView struct {
	locale.Document
	Available []languageView    `json:"available"`
	Messages  map[string]string `json:"messages,omitempty"`
}

type languageView struct {
	Code locale.Code      `json:"code"`
	Name string           `json:"name"`
	Dir  locale.Direction `json:"dir"`
}

func (s *Server) languages() []languageView {
	out := make([]languageView, 0, len(locale.Codes))
	for _, c := range locale.Codes {
		name, _ := s.d.Locales.Lookup(c, "languageName")
		out = append(out, languageView{Code: c, Name: name, Dir: c.Direction()})
	}
	return out
}

func (s *Server) localeView(r *http.Request) localeView {
	p := s.provider(r)
	v := localeView{
		Document:  p.Document(),
		Available: s.languages(),
	}
	if r.URL.Query().Get("messages") != "false" {
		v.Messages = p.Table()
	}
	return v
}

func (s *Server) getLocale(w http.ResponseWriter, r *http.Request) {
	s.ok(w, r, http.StatusOK, s.localeView(r), "")
}

func (s *Server) setLocale(w http.ResponseWriter, r *http.Request) {
	req := &form.SetLocaleRequest{}
	if err := decode(r, req); err != nil {
		s.fail(w, r, err, "")
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, err, "")
		return
	}
	if err := s.provider(r).SetLocale(req.Locale); err != nil {
		s.fail(w, r, err, "")
		return
	}
	s.ok(w, r, http.StatusOK, s.localeView(r), "notice.localeChanged")
}

type navItem struct {
	Path   string `json:"path"`
	Key    string `json:"key"`
	Label  string `json:"label"`
	Active bool   `json:"active,omitempty"`
}

func (s *Server) navItems(r *http.Request, current string) []navItem {
	sess, _ := auth.SessionFromContext(r.Context())
	p := s.provider(r)
	out := []navItem{}
	for _, pg := range pages {
		if !pg.inMenu(sess) {
			continue
		}
		out = append(out, navItem{
			Path:   pg.Path,
			Key:    pg.Key,
			Label:  p.T(pg.Key),
			Active: pg.Path == current,
		})
	}
	return out
}

func (s *Server) navigation(w http.ResponseWriter, r *http.Request) {
	s.ok(w, r, http.StatusOK, s.navItems(r, r.URL.Query().Get("current")), "")
}

type fieldView struct {
	Id    entity.TrainingField `json:"id"`
	Label string               `json:"label"`
}

func (s *Server) trainingFields(w http.ResponseWriter, r *http.Request) {
	p := s.provider(r)
	fields := catalog.TrainingFields()
	out := make([]fieldView, 0, len(fields))
	for _, f := range fields {
		out = append(out, fieldView{Id: f.Id, Label: p.T(f.LabelKey)})
	}
	s.ok(w, r, http.StatusOK, out, "")
}

type sessionView struct {
	UserId string      `json:"user_id"`
	Email  string      `json:"email,omitempty"`
	Role   entity.Role `json:"role"`
	Token  string      `json:"token,omitempty"`
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	req := &form.SignupRequest{}
	if err := decode(r, req); err != nil {
		s.fail(w, r, err, "")
		return
	}
	u, token, err := s.d.Auth.Signup(r.Context(), clientid.GetClientIP(r.Context()), req)
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	s.d.Auth.SetSessionCookie(w, token)
	s.ok(w, r, http.StatusCreated, sessionView{UserId: u.Id, Email: u.Email, Role: u.Role, Token: token}, "notice.signedUp")
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	req := &form.LoginRequest{}
	if err := decode(r, req); err != nil {
		s.fail(w, r, err, "")
		return
	}
	u, token, err := s.d.Auth.Login(r.Context(), clientid.GetClientIP(r.Context()), req)
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	s.d.Auth.SetSessionCookie(w, token)
	s.ok(w, r, http.StatusOK, sessionView{UserId: u.Id, Email: u.Email, Role: u.Role, Token: token}, "notice.signedIn")
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.d.Auth.ClearSessionCookie(w)
	s.ok(w, r, http.StatusOK, nil, "notice.signedOut")
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	s.ok(w, r, http.StatusOK, sessionView{UserId: sess.UserId, Role: sess.Role}, "")
}

type profileView struct {
	UserId          string      `json:"user_id"`
	Email           string      `json:"email"`
	Role            entity.Role `json:"role"`
	FullName        string      `json:"full_name"`
	TrainingField   string      `json:"training_field,omitempty"`
	PreferredLocale string      `json:"preferred_locale,omitempty"`
}

func (s *Server) loadProfile(r *http.Request, sess *auth.Session) (*profileView, error) {
	u, err := s.d.Repo.Users().GetUserById(r.Context(), sess.UserId)
	if err != nil {
		return nil, fmt.Errorf("can't get user: %w", err)
	}
	v := &profileView{UserId: u.Id, Email: u.Email, Role: u.Role}
	prof, err := s.d.Repo.Profiles().GetProfile(r.Context(), sess.UserId)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return v, nil
	case err != nil:
		return nil, fmt.Errorf("can't get profile: %w", err)
	}
	v.FullName = prof.FullName
	v.TrainingField = prof.TrainingField.String
	v.PreferredLocale = prof.PreferredLocale.String
	return v, nil
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	v, err := s.loadProfile(r, sess)
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	s.ok(w, r, http.StatusOK, v, "")
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	req := &form.UpdateProfileRequest{}
	if err := decode(r, req); err != nil {
		s.fail(w, r, err, "")
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, err, "")
		return
	}
	upsert := &entity.ProfileUpsert{
		FullName:      strings.TrimSpace(req.FullName),
		TrainingField: sql.NullString{String: req.TrainingField, Valid: req.TrainingField != ""},
	}
	prev, err := s.d.Repo.Profiles().GetProfile(r.Context(), sess.UserId)
	switch {
	case err == nil:
		upsert.PreferredLocale = prev.PreferredLocale
	case !errors.Is(err, sql.ErrNoRows):
		s.fail(w, r, fmt.Errorf("can't get profile: %w", err), "")
		return
	}
	if err := s.d.Repo.Profiles().UpsertProfile(r.Context(), sess.UserId, upsert); err != nil {
		s.fail(w, r, fmt.Errorf("can't update profile: %w", err), "")
		return
	}
	v, err := s.loadProfile(r, sess)
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	s.ok(w, r, http.StatusOK, v, "notice.profileSaved")
}

func (s *Server) library(w http.ResponseWriter, r *http.Request) {
	s.ok(w, r, http.StatusOK, s.d.Documents.Library(), "")
}

// courses lists every course category, or the one of the training field
// given in the field query parameter.
func (s *Server) courses(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	if field == "" {
		s.ok(w, r, http.StatusOK, s.d.Documents.Courses(), "")
		return
	}
	cat, ok := s.d.Documents.CoursesFor(entity.TrainingField(field))
	if !ok {
		s.fail(w, r, fmt.Errorf("courses for %q: %w", field, gerr.ErrNotFound), "")
		return
	}
	s.ok(w, r, http.StatusOK, []catalog.Category{cat}, "")
}
