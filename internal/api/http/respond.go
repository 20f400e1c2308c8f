package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/jekabolt/edupath/internal/apisrv/auth"
	gerr "github.com/jekabolt/edupath/internal/errors"
	"github.com/jekabolt/edupath/internal/locale"
)

var errRouteNotFound = errors.New("route not found")

type noticeKind string

const (
	noticeSuccess noticeKind = "success"
	noticeError   noticeKind = "error"
)

type notice struct {
	Kind    noticeKind `json:"kind"`
	Message string     `json:"message"`
}

type response struct {
	Data   any               `json:"data,omitempty"`
	Notice *notice           `json:"notice,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// withLocale attaches the request's locale provider. Signed in users keep
// their preference on the profile as well.
func (s *Server) withLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var profile locale.PreferenceStore
		if sess, ok := auth.SessionFromContext(r.Context()); ok {
			profile = locale.NewProfileStore(r.Context(), s.d.Repo.Profiles(), sess.UserId)
		}
		p := locale.ForRequest(w, r, s.d.Locales, s.d.DefaultLocale, profile)
		w.Header().Set("Content-Language", p.Locale().String())
		next.ServeHTTP(w, r.WithContext(locale.WithProvider(r.Context(), p)))
	})
}

func (s *Server) provider(r *http.Request) *locale.Provider {
	if p, ok := locale.FromContext(r.Context()); ok {
		return p
	}
	return locale.NewProvider(s.d.Locales, nil, s.d.DefaultLocale)
}

func (s *Server) ok(w http.ResponseWriter, r *http.Request, status int, data any, noticeKey string) {
	resp := response{Data: data}
	if noticeKey != "" {
		resp.Notice = &notice{Kind: noticeSuccess, Message: s.provider(r).T(noticeKey)}
	}
	render.Status(r, status)
	render.JSON(w, r, resp)
}

// fail answers with the localized notice of err. fallbackKey replaces the
// generic error notice for failures that are not classified.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, fallbackKey string) {
	status := gerr.HTTPStatus(err)
	key := gerr.NoticeKey(err)
	if key == "notice.error" && fallbackKey != "" {
		key = fallbackKey
	}
	if errors.Is(err, errRouteNotFound) {
		status, key = http.StatusNotFound, "notice.notFound"
	}
	if status >= http.StatusInternalServerError {
		slog.Default().ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("err", err.Error()),
		)
	}
	resp := response{Notice: &notice{Kind: noticeError, Message: s.provider(r).T(key)}}
	var ve *gerr.ValidationError
	if errors.As(err, &ve) {
		resp.Errors = ve.Fields
	}
	render.Status(r, status)
	render.JSON(w, r, resp)
}

func (s *Server) apiDeny(w http.ResponseWriter, r *http.Request, err error) {
	s.fail(w, r, err, "")
}

func decode(r *http.Request, v any) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return &gerr.ValidationError{Fields: map[string]string{"body": "Must be a valid JSON document."}}
	}
	return nil
}
