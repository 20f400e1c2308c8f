// Package feed keeps a mounted view of the announcement collection fresh:
// it fetches, re-fetches on every realtime change and publishes new
// announcements.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jekabolt/edupath/internal/dependency"
	"github.com/jekabolt/edupath/internal/entity"
)

type Mode int

const (
	// ModeList fetches every announcement, newest first.
	ModeList Mode = iota
	// ModeLatest fetches the most recent announcement only.
	ModeLatest
)

func (m Mode) String() string {
	if m == ModeLatest {
		return "latest"
	}
	return "list"
}

type State string

const (
	StateIdle      State = "idle"
	StateLoading   State = "loading"
	StatePopulated State = "populated"
	StateEmpty     State = "empty"
	StateErrored   State = "errored"
)

const defaultFetchTimeout = 10 * time.Second

type Config struct {
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	Debounce     time.Duration `mapstructure:"debounce"`
	DisplayOrder string        `mapstructure:"display_order"`
	WeekStart    string        `mapstructure:"week_start"`
}

// Snapshot is the controller state handed to renderers.
type Snapshot struct {
	State State                 `json:"state"`
	Items []entity.Announcement `json:"items"`
	// Err is the failure of the last resolved fetch when State is errored.
	Err error `json:"-"`
	// Resolved is set once any fetch has resolved.
	Resolved  bool      `json:"resolved"`
	FetchedAt time.Time `json:"fetched_at"`
}

// ShowSpinner is true only while the first fetch is pending. Later
// re-fetches keep the previous items on screen.
func (s Snapshot) ShowSpinner() bool {
	return s.State == StateLoading && !s.Resolved
}

// Controller drives one mounted feed. It is safe for concurrent use.
type Controller struct {
	mode     Mode
	source   dependency.Announcements
	changes  dependency.ChangeFeed
	timeout  time.Duration
	debounce time.Duration
	now      func() time.Time
	log      *slog.Logger

	mu      sync.Mutex
	snap    Snapshot
	issued  uint64
	applied uint64
	mounted bool
	closed  bool
	sub     dependency.Subscription
	timer   *time.Timer
	ctx     context.Context
	cancel  context.CancelFunc
	updates chan Snapshot
}

// NewController returns an idle controller. changes may be nil when no
// realtime source is available.
func NewController(mode Mode, source dependency.Announcements, changes dependency.ChangeFeed, c *Config) *Controller {
	timeout := defaultFetchTimeout
	var debounce time.Duration
	if c != nil {
		if c.FetchTimeout > 0 {
			timeout = c.FetchTimeout
		}
		debounce = c.Debounce
	}
	return &Controller{
		mode:     mode,
		source:   source,
		changes:  changes,
		timeout:  timeout,
		debounce: debounce,
		now:      time.Now,
		log:      slog.Default().With(slog.String("component", "feed"), slog.String("mode", mode.String())),
		snap:     Snapshot{State: StateIdle},
		updates:  make(chan Snapshot, 1),
	}
}

// Updates delivers snapshots. Only the newest undelivered snapshot is kept.
// The channel is closed by Close.
func (c *Controller) Updates() <-chan Snapshot {
	return c.updates
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap.clone()
}

// Mount starts the first fetch and subscribes to announcement changes.
// The controller lives until Close or until ctx is done.
func (c *Controller) Mount(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("feed controller is closed")
	}
	if c.mounted {
		return fmt.Errorf("feed controller is already mounted")
	}
	c.mounted = true
	c.ctx, c.cancel = context.WithCancel(ctx)

	if c.changes != nil {
		c.sub = c.changes.Subscribe(entity.TableAnnouncements)
		go c.listen(c.ctx, c.sub)
	} else {
		go func(ctx context.Context) {
			<-ctx.Done()
			c.Close()
		}(c.ctx)
	}
	c.issueLocked()
	return nil
}

// Refresh re-fetches immediately.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.mounted {
		return
	}
	c.issueLocked()
}

// Close unsubscribes and drops every pending result. No snapshot is
// emitted once Close returns. Calling it again is a no-op.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
	}
	if c.cancel != nil {
		c.cancel()
	}
	sub := c.sub
	close(c.updates)
	c.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
}

func (c *Controller) listen(ctx context.Context, sub dependency.Subscription) {
	for {
		select {
		case <-ctx.Done():
			c.Close()
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			c.log.DebugContext(ctx, "announcement changed",
				slog.String("kind", string(ev.Kind)),
				slog.String("id", ev.RecordId),
			)
			c.invalidate()
		}
	}
}

// invalidate re-fetches everything after a change, optionally debounced.
func (c *Controller) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.debounce <= 0 {
		c.issueLocked()
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, c.Refresh)
}

func (c *Controller) issueLocked() {
	c.issued++
	seq := c.issued
	c.snap.State = StateLoading
	c.snap.Err = nil
	c.emitLocked()
	go c.fetch(c.ctx, seq)
}

type fetchResult struct {
	items []entity.Announcement
	err   error
}

func (c *Controller) fetch(parent context.Context, seq uint64) {
	ctx, cancel := context.WithTimeout(parent, c.timeout)
	defer cancel()

	limit := 0
	if c.mode == ModeLatest {
		limit = 1
	}

	done := make(chan fetchResult, 1)
	go func() {
		items, err := c.source.ListAnnouncements(ctx, limit)
		done <- fetchResult{items: items, err: err}
	}()

	var res fetchResult
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = ctx.Err()
	}
	if res.err != nil {
		res.err = fmt.Errorf("fetch announcements: %w", res.err)
	}
	c.apply(seq, res)
}

// apply keeps the result of the latest issued fetch that resolved. An older
// fetch resolving after a newer one is dropped.
func (c *Controller) apply(seq uint64, res fetchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || seq <= c.applied {
		return
	}
	if res.err != nil && c.ctx.Err() != nil {
		// torn down by the mount context, Close follows
		return
	}
	c.applied = seq

	c.snap.Resolved = true
	if res.err != nil {
		c.log.Error("can't fetch announcements",
			slog.String("err", res.err.Error()),
		)
		c.snap.Err = res.err
		c.snap.State = StateErrored
	} else {
		c.snap.Err = nil
		c.snap.Items = res.items
		c.snap.FetchedAt = c.now()
		if len(res.items) == 0 {
			c.snap.State = StateEmpty
		} else {
			c.snap.State = StatePopulated
		}
	}
	if seq < c.issued {
		// a newer fetch is still pending
		c.snap.State = StateLoading
	}
	c.emitLocked()
}

func (c *Controller) emitLocked() {
	if c.closed {
		return
	}
	select {
	case <-c.updates:
	default:
	}
	c.updates <- c.snap.clone()
}

func (s Snapshot) clone() Snapshot {
	if s.Items != nil {
		s.Items = append([]entity.Announcement(nil), s.Items...)
	}
	return s
}
