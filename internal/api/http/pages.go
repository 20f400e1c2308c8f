package httpapi

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jekabolt/edupath/internal/apisrv/auth"
	"github.com/jekabolt/edupath/internal/catalog"
	"github.com/jekabolt/edupath/internal/entity"
	"github.com/jekabolt/edupath/internal/gallery"
	"github.com/jekabolt/edupath/internal/locale"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/page.html"))

type access int

const (
	accessPublic access = iota
	// accessGuest pages are only listed for visitors without a session.
	accessGuest
	accessMember
	accessAdmin
)

// page is a routed view. Key is both its identifier and the catalog key of
// its title.
type page struct {
	Path   string
	Key    string
	Access access
}

var pages = []page{
	{Path: "/", Key: "home", Access: accessPublic},
	{Path: "/auth", Key: "login", Access: accessGuest},
	{Path: "/announcements", Key: "announcements", Access: accessMember},
	{Path: "/courses", Key: "courses", Access: accessMember},
	{Path: "/library", Key: "library", Access: accessMember},
	{Path: "/results", Key: "results", Access: accessMember},
	{Path: "/schedule", Key: "schedule", Access: accessMember},
	{Path: "/forums", Key: "forums", Access: accessMember},
	{Path: "/messaging", Key: "messaging", Access: accessMember},
	{Path: "/notifications", Key: "notifications", Access: accessMember},
	{Path: "/work-tracking", Key: "workTracking", Access: accessMember},
	{Path: "/wellness", Key: "wellness", Access: accessMember},
	{Path: "/suggestions", Key: "suggestions", Access: accessMember},
	{Path: "/admin", Key: "admin", Access: accessAdmin},
}

func (pg page) inMenu(sess *auth.Session) bool {
	switch pg.Access {
	case accessGuest:
		return sess == nil
	case accessMember:
		return sess != nil
	case accessAdmin:
		return sess != nil && sess.Role == entity.RoleAdmin
	}
	return true
}

type pageData struct {
	Doc        locale.Document
	T          func(string) string
	Key        string
	Title      string
	Nav        []navItem
	Languages  []languageView
	Signed     bool
	Message    string
	NotFound   bool
	Hero       *gallery.Hero
	Latest     *announcementView
	List       *listView
	Categories []catalog.Category
	EmptyKey   string
}

func (s *Server) mountPages(r chi.Router) {
	toLogin := auth.RedirectTo("/auth")
	for _, pg := range pages {
		h := s.pageHandler(pg)
		switch pg.Access {
		case accessMember:
			r.With(s.d.Auth.RequireSession(toLogin)).Get(pg.Path, h)
		case accessAdmin:
			r.With(s.d.Auth.RequireRole(toLogin, entity.RoleAdmin)).Get(pg.Path, h)
		default:
			r.Get(pg.Path, h)
		}
	}
}

func (s *Server) pageData(r *http.Request, pg page) *pageData {
	p := s.provider(r)
	_, signed := auth.SessionFromContext(r.Context())
	return &pageData{
		Doc:       p.Document(),
		T:         p.T,
		Key:       pg.Key,
		Title:     p.T(pg.Key),
		Nav:       s.navItems(r, pg.Path),
		Languages: s.languages(),
		Signed:    signed,
	}
}

func (s *Server) pageHandler(pg page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.pageData(r, pg)
		p := s.provider(r)
		ctx := r.Context()
		switch pg.Key {
		case "home":
			hero, err := s.d.Gallery.Hero(ctx)
			if err != nil {
				slog.Default().ErrorContext(ctx, "can't load hero image",
					slog.String("err", err.Error()),
				)
			}
			data.Hero = hero
			if data.Signed {
				data.Latest = s.homeLatest(ctx, p)
			}
			data.Message = p.T("heroDescription")
		case "login":
		case "announcements":
			items, err := s.d.Repo.Announcements().ListAnnouncements(ctx, 0)
			if err != nil {
				slog.Default().ErrorContext(ctx, "can't list announcements",
					slog.String("err", err.Error()),
				)
				data.Message = p.T("notice.error")
				break
			}
			lv := s.listView(p, items)
			data.List = &lv
			if len(items) == 0 {
				data.Message = p.T("feed.empty")
			}
		case "library":
			data.Categories = s.d.Documents.Library()
			data.EmptyKey = "library.empty"
		case "courses":
			data.Categories = s.d.Documents.Courses()
			data.EmptyKey = "courses.empty"
		default:
			data.Message = p.T("comingSoon")
		}
		s.renderPage(w, r, http.StatusOK, data)
	}
}

func (s *Server) homeLatest(ctx context.Context, p *locale.Provider) *announcementView {
	items, err := s.d.Repo.Announcements().ListAnnouncements(ctx, 1)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't get latest announcement",
			slog.String("err", err.Error()),
		)
		return nil
	}
	if len(items) == 0 {
		return nil
	}
	av := newAnnouncementView(p, items[0])
	return &av
}

func (s *Server) notFoundPage(w http.ResponseWriter, r *http.Request) {
	data := s.pageData(r, page{Key: "notFound"})
	data.NotFound = true
	data.Message = data.T("notFoundMessage")
	s.renderPage(w, r, http.StatusNotFound, data)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, data *pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		slog.Default().ErrorContext(r.Context(), "can't render page",
			slog.String("page", data.Key),
			slog.String("err", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
