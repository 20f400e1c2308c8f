package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jekabolt/edupath/config"
	httpapi "github.com/jekabolt/edupath/internal/api/http"
	"github.com/jekabolt/edupath/internal/apisrv/auth"
	"github.com/jekabolt/edupath/internal/catalog"
	"github.com/jekabolt/edupath/internal/feed"
	"github.com/jekabolt/edupath/internal/gallery"
	"github.com/jekabolt/edupath/internal/locale"
	"github.com/jekabolt/edupath/internal/realtime"
	"github.com/jekabolt/edupath/internal/store"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

var errHTTPExited = errors.New("http server exited")

// App is the main application
type App struct {
	c      *config.Config
	db     *store.SQLStore
	hub    *realtime.Hub
	authS  *auth.Server
	hs     *httpapi.Server
	cancel context.CancelFunc
	done   chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting edupath")

	defLocale, err := locale.ParseCode(a.c.Locale.Default)
	if err != nil {
		return fmt.Errorf("default locale: %w", err)
	}
	locales, err := locale.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("can't load locale catalog: %w", err)
	}
	docs, err := catalog.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("can't load document catalog: %w", err)
	}

	a.hub = realtime.New(&a.c.Realtime)

	a.db, err = store.New(ctx, a.c.DB, a.hub)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to database",
			slog.String("driver", a.c.DB.Driver),
			slog.String("err", err.Error()),
		)
		a.hub.Close()
		return err
	}

	files, err := a.c.Bucket.New()
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed create new bucket",
			slog.String("err", err.Error()),
		)
		a.release()
		return err
	}

	a.authS, err = auth.New(&a.c.Auth, a.db)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed create new auth server",
			slog.String("err", err.Error()),
		)
		a.release()
		return err
	}

	a.hs, err = httpapi.New(&a.c.HTTP, httpapi.Deps{
		Repo:          a.db,
		Auth:          a.authS,
		Locales:       locales,
		DefaultLocale: defLocale,
		Publisher:     feed.NewPublisher(a.db.Announcements(), files),
		Gallery:       gallery.New(&a.c.Gallery, a.db.InstitutionImages(), files),
		Documents:     docs,
		Changes:       a.hub,
		Feed:          a.c.Feed,
	})
	if err != nil {
		a.release()
		return fmt.Errorf("cannot create http server: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	a.cancel = cancel
	if err = a.hs.Start(runCtx); err != nil {
		cancel()
		a.release()
		return fmt.Errorf("cannot start http server: %w", err)
	}

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		select {
		case <-a.hs.Done():
			return errHTTPExited
		case <-gctx.Done():
			return nil
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		stopCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		err := a.hs.Stop(stopCtx)
		a.release()
		return err
	})
	go func() {
		if err := g.Wait(); err != nil {
			slog.Default().Error("application stopped with an error",
				slog.String("err", err.Error()),
			)
		}
		close(a.done)
	}()
	return nil
}

// release closes everything the http server depends on.
func (a *App) release() {
	if a.authS != nil {
		a.authS.Close()
	}
	if a.hub != nil {
		a.hub.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.cancel == nil {
		return
	}
	a.cancel()
	select {
	case <-a.done:
	case <-ctx.Done():
	}
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() <-chan struct{} {
	return a.done
}
