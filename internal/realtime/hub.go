// Package realtime fans committed row changes out to table subscribers.
package realtime

import (
	"log/slog"
	"sync"

	"github.com/jekabolt/edupath/internal/dependency"
	"github.com/jekabolt/edupath/internal/entity"
)

// AllTables subscribes to changes of every table.
const AllTables = "*"

type Config struct {
	BufferSize int `mapstructure:"buffer_size"`
}

// Hub implements dependency.ChangeNotifier and dependency.ChangeFeed.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*subscription]struct{}
	buffer int
	closed bool
}

func New(c *Config) *Hub {
	buffer := 1
	if c != nil && c.BufferSize > 0 {
		buffer = c.BufferSize
	}
	return &Hub{
		subs:   make(map[string]map[*subscription]struct{}),
		buffer: buffer,
	}
}

// Publish never blocks. A subscriber whose buffer is full already has a
// pending event and does not get another one.
func (h *Hub) Publish(ev entity.ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	h.deliver(h.subs[ev.Table], ev)
	h.deliver(h.subs[AllTables], ev)
}

func (h *Hub) deliver(subs map[*subscription]struct{}, ev entity.ChangeEvent) {
	for s := range subs {
		select {
		case s.ch <- ev:
		default:
			slog.Default().Debug("realtime subscriber busy, coalescing event",
				slog.String("table", ev.Table),
				slog.String("kind", string(ev.Kind)),
			)
		}
	}
}

// Subscribe opens a subscription on table, or on every table with AllTables.
// Subscribing to a closed hub returns a subscription whose channel is closed.
func (h *Hub) Subscribe(table string) dependency.Subscription {
	s := &subscription{
		hub:   h,
		table: table,
		ch:    make(chan entity.ChangeEvent, h.buffer),
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		s.once.Do(func() { close(s.ch) })
		return s
	}
	if h.subs[table] == nil {
		h.subs[table] = make(map[*subscription]struct{})
	}
	h.subs[table][s] = struct{}{}
	return s
}

// Subscribers returns the number of open subscriptions on table.
func (h *Hub) Subscribers(table string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[table])
}

// Close ends every subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, subs := range h.subs {
		for s := range subs {
			s.once.Do(func() { close(s.ch) })
		}
	}
	h.subs = make(map[string]map[*subscription]struct{})
}

func (h *Hub) remove(s *subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.subs[s.table]; ok {
		delete(subs, s)
		if len(subs) == 0 {
			delete(h.subs, s.table)
		}
	}
	s.once.Do(func() { close(s.ch) })
}

type subscription struct {
	hub   *Hub
	table string
	ch    chan entity.ChangeEvent
	once  sync.Once
}

func (s *subscription) Events() <-chan entity.ChangeEvent {
	return s.ch
}

func (s *subscription) Unsubscribe() {
	s.hub.remove(s)
}
