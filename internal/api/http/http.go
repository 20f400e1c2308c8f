package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/jekabolt/edupath/internal/apisrv/auth"
	"github.com/jekabolt/edupath/internal/catalog"
	"github.com/jekabolt/edupath/internal/dependency"
	"github.com/jekabolt/edupath/internal/entity"
	"github.com/jekabolt/edupath/internal/feed"
	"github.com/jekabolt/edupath/internal/gallery"
	"github.com/jekabolt/edupath/internal/locale"
	clientid "github.com/jekabolt/edupath/internal/middleware"
	"github.com/jekabolt/edupath/log"
)

const (
	defaultMaxUploadBytes = 10 << 20
	defaultPingInterval   = 30 * time.Second
)

// Config is the configuration for the http server
type Config struct {
	Port           string        `mapstructure:"port"`
	Address        string        `mapstructure:"address"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	TrustProxy     bool          `mapstructure:"trust_proxy"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	PingInterval   time.Duration `mapstructure:"ping_interval"`
}

// Deps are the services the handlers talk to.
type Deps struct {
	Repo          dependency.Repository
	Auth          *auth.Server
	Locales       *locale.Catalog
	DefaultLocale locale.Code
	Publisher     *feed.Publisher
	Gallery       *gallery.Gallery
	Documents     *catalog.Catalog
	Changes       dependency.ChangeFeed
	Feed          feed.Config
}

// Server is the http server
type Server struct {
	hs       *http.Server
	c        *Config
	d        Deps
	order    []feed.Bucket
	calendar feed.Calendar
	now      func() time.Time
	handler  http.Handler
	done     chan struct{}
}

// New creates a new server
func New(c *Config, d Deps) (*Server, error) {
	order, err := feed.ParseOrder(d.Feed.DisplayOrder)
	if err != nil {
		return nil, err
	}
	weekStart, err := feed.ParseWeekday(d.Feed.WeekStart)
	if err != nil {
		return nil, err
	}
	if !d.DefaultLocale.Valid() {
		d.DefaultLocale = locale.Default
	}
	s := &Server{
		c:        c,
		d:        d,
		order:    order,
		calendar: feed.Calendar{WeekStart: weekStart},
		now:      time.Now,
		done:     make(chan struct{}),
	}
	s.handler = s.cors(h2c.NewHandler(s.router(), &http2.Server{}))
	return s, nil
}

// Handler serves the whole site.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(log.RequestLogger(slog.Default()))
	r.Use(clientid.ClientIdentifier(s.c.TrustProxy))
	r.Use(s.d.Auth.Session)
	r.Use(s.withLocale)

	r.Route("/api", func(r chi.Router) {
		r.Get("/locale", s.getLocale)
		r.Put("/locale", s.setLocale)
		r.Get("/navigation", s.navigation)
		r.Get("/training-fields", s.trainingFields)
		r.Get("/gallery", s.listGallery)
		r.Get("/gallery/hero", s.hero)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", s.signup)
			r.Post("/login", s.login)
			r.Post("/logout", s.logout)
			r.With(s.d.Auth.RequireSession(s.apiDeny)).Get("/session", s.session)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.d.Auth.RequireSession(s.apiDeny))
			r.Get("/profile", s.getProfile)
			r.Put("/profile", s.updateProfile)
			r.Get("/library", s.library)
			r.Get("/courses", s.courses)
			r.Get("/announcements", s.listAnnouncements)
			r.Get("/announcements/latest", s.latestAnnouncement)
			r.Get("/announcements/feed", s.announcementFeed)
			r.Post("/announcements", s.publishAnnouncement)
			r.Get("/realtime/{table}", s.realtime)
		})

		r.With(s.d.Auth.RequireRole(s.apiDeny, entity.RoleStaff, entity.RoleAdmin)).
			Delete("/announcements/{id}", s.deleteAnnouncement)

		r.Route("/admin/gallery", func(r chi.Router) {
			r.Use(s.d.Auth.RequireRole(s.apiDeny, entity.RoleAdmin))
			r.Get("/", s.adminListGallery)
			r.Post("/", s.uploadImage)
			r.Patch("/{id}", s.setImageActive)
			r.Delete("/{id}", s.deleteImage)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			s.fail(w, r, fmt.Errorf("%s: %w", r.URL.Path, errRouteNotFound), "")
		})
	})

	s.mountPages(r)
	r.NotFound(s.notFoundPage)
	return r
}

// Start starts the server
func (s *Server) Start(ctx context.Context) error {
	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              listenerAddr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		defer close(s.done)
		slog.Default().InfoContext(ctx, "edupath listener started",
			slog.String("addr", "http://"+listenerAddr),
		)
		err := s.hs.ListenAndServe()
		if err == http.ErrServerClosed {
			slog.Default().InfoContext(ctx, "http server returned")
			return
		}
		slog.Default().ErrorContext(ctx, "http server exited with an error",
			slog.String("err", err.Error()),
		)
	}()
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	return s.hs.Shutdown(ctx)
}

// cors implements Cross Origin Resource Sharing for the configured origins
// and any localhost origin.
func (s *Server) cors(h http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return isOriginAllowed(origin, s.c.AllowedOrigins)
		},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodHead, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	})(h)
}

func isOriginAllowed(origin string, allowedOrigins []string) bool {
	// Always allow localhost origins
	if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "https://localhost:") {
		return true
	}
	for _, allowedOrigin := range allowedOrigins {
		if origin == allowedOrigin {
			return true
		}
	}
	return false
}

func (s *Server) maxUploadBytes() int64 {
	if s.c.MaxUploadBytes > 0 {
		return s.c.MaxUploadBytes
	}
	return defaultMaxUploadBytes
}

func (s *Server) pingInterval() time.Duration {
	if s.c.PingInterval > 0 {
		return s.c.PingInterval
	}
	return defaultPingInterval
}
