package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/jekabolt/edupath/internal/entity"
	"github.com/jekabolt/edupath/internal/feed"
	"github.com/jekabolt/edupath/internal/locale"
)

const writeWait = 10 * time.Second

// feedFrame is one rendered feed snapshot.
type feedFrame struct {
	Mode    string            `json:"mode"`
	State   feed.State        `json:"state"`
	Spinner bool              `json:"spinner"`
	Locale  locale.Document   `json:"locale"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Latest  *announcementView `json:"latest,omitempty"`
	List    *listView         `json:"list,omitempty"`
}

// feedCommand is sent by clients over the feed socket.
type feedCommand struct {
	Action string `json:"action"`
	Locale string `json:"locale,omitempty"`
}

const (
	actionRefresh = "refresh"
	actionLocale  = "locale"
)

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err == nil && u.Host == r.Host {
		return true
	}
	return isOriginAllowed(origin, s.c.AllowedOrigins)
}

func (s *Server) upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, bool) {
	up := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader already answered
		slog.Default().DebugContext(r.Context(), "websocket upgrade failed",
			slog.String("err", err.Error()),
		)
		return nil, false
	}
	return conn, true
}

func (s *Server) renderFrame(p *locale.Provider, mode feed.Mode, snap feed.Snapshot) feedFrame {
	f := feedFrame{
		Mode:    mode.String(),
		State:   snap.State,
		Spinner: snap.ShowSpinner(),
		Locale:  p.Document(),
	}
	switch snap.State {
	case feed.StateErrored:
		f.Error = p.T("notice.error")
	case feed.StateEmpty:
		f.Message = p.T("feed.empty")
	case feed.StateLoading:
		if f.Spinner {
			f.Message = p.T("feed.loading")
		}
	}
	if !snap.Resolved {
		return f
	}
	if mode == feed.ModeLatest {
		if len(snap.Items) > 0 {
			av := newAnnouncementView(p, snap.Items[0])
			f.Latest = &av
		}
		return f
	}
	lv := s.listView(p, snap.Items)
	f.List = &lv
	return f
}

// announcementFeed streams a mounted feed controller over a websocket until
// either side closes. Clients may ask for a refresh or switch the language
// the frames are rendered in.
func (s *Server) announcementFeed(w http.ResponseWriter, r *http.Request) {
	mode := feed.ModeList
	if r.URL.Query().Get("mode") == feed.ModeLatest.String() {
		mode = feed.ModeLatest
	}
	p := s.provider(r)

	conn, ok := s.upgrade(w, r)
	if !ok {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	ctrl := feed.NewController(mode, s.d.Repo.Announcements(), s.d.Changes, &s.d.Feed)
	if err := ctrl.Mount(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "can't mount feed",
			slog.String("err", err.Error()),
		)
		return
	}
	defer ctrl.Close()

	commands := make(chan feedCommand)
	go s.readCommands(ctx, cancel, conn, commands)

	ping := time.NewTicker(s.pingInterval())
	defer ping.Stop()

	last := ctrl.Snapshot()
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-ctrl.Updates():
			if !ok {
				return
			}
			last = snap
			if err := s.writeFrame(conn, s.renderFrame(p, mode, snap)); err != nil {
				return
			}
		case cmd := <-commands:
			switch cmd.Action {
			case actionRefresh:
				ctrl.Refresh()
			case actionLocale:
				code, err := locale.ParseCode(cmd.Locale)
				if err != nil {
					continue
				}
				p = locale.NewProvider(s.d.Locales, nil, code)
				if err := s.writeFrame(conn, s.renderFrame(p, mode, last)); err != nil {
					return
				}
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (s *Server) writeFrame(conn *websocket.Conn, v any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}

// readCommands pumps client messages until the connection fails, then
// cancels the stream.
func (s *Server) readCommands(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, out chan<- feedCommand) {
	defer cancel()
	readWait := 2 * s.pingInterval()
	conn.SetReadLimit(4096)
	_ = conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readWait))
	})
	for {
		var cmd feedCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Default().DebugContext(ctx, "feed socket closed",
					slog.String("err", err.Error()),
				)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(readWait))
		select {
		case out <- cmd:
		case <-ctx.Done():
			return
		}
	}
}

var realtimeTables = map[string]bool{
	entity.TableAnnouncements:     true,
	entity.TableInstitutionImages: true,
}

// realtime forwards raw change events of one table.
func (s *Server) realtime(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	if !realtimeTables[table] {
		s.fail(w, r, errRouteNotFound, "")
		return
	}
	conn, ok := s.upgrade(w, r)
	if !ok {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sub := s.d.Changes.Subscribe(table)
	defer sub.Unsubscribe()

	// only control frames are expected from the client
	go s.readCommands(ctx, cancel, conn, make(chan feedCommand))

	ping := time.NewTicker(s.pingInterval())
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			if err := s.writeFrame(conn, ev); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
