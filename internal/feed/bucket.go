package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/jekabolt/edupath/internal/entity"
)

// Bucket is the relative age group of an announcement.
type Bucket string

const (
	Today     Bucket = "today"
	ThisWeek  Bucket = "this_week"
	ThisMonth Bucket = "this_month"
	Older     Bucket = "older"
)

// LabelKey returns the catalog key of the bucket's heading.
func (b Bucket) LabelKey() string {
	switch b {
	case Today:
		return "feed.today"
	case ThisWeek:
		return "feed.thisWeek"
	case ThisMonth:
		return "feed.thisMonth"
	}
	return "feed.older"
}

var (
	// ObservedOrder renders older announcements above today's.
	ObservedOrder = []Bucket{Older, Today, ThisWeek, ThisMonth}
	// NewestFirstOrder renders buckets from the most recent down.
	NewestFirstOrder = []Bucket{Today, ThisWeek, ThisMonth, Older}
)

// ParseOrder maps a configured display order name to its bucket order.
func ParseOrder(s string) ([]Bucket, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "newest_first":
		return NewestFirstOrder, nil
	case "observed":
		return ObservedOrder, nil
	}
	return nil, fmt.Errorf("unknown display order %q", s)
}

// ParseWeekday accepts english weekday names, case insensitive.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return time.Sunday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == s {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}

// Calendar assigns announcements to buckets relative to now, in now's location.
type Calendar struct {
	WeekStart time.Weekday
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (c Calendar) startOfWeek(now time.Time) time.Time {
	back := (int(now.Weekday()) - int(c.WeekStart) + 7) % 7
	return startOfDay(now).AddDate(0, 0, -back)
}

// Classify compares calendar days, not rolling windows: one second after
// midnight yesterday's announcement is no longer "today".
func (c Calendar) Classify(t, now time.Time) Bucket {
	t = t.In(now.Location())
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	if ty == ny && tm == nm && td == nd {
		return Today
	}
	ws := c.startOfWeek(now)
	if !t.Before(ws) && t.Before(ws.AddDate(0, 0, 7)) {
		return ThisWeek
	}
	if ty == ny && tm == nm {
		return ThisMonth
	}
	return Older
}

// Groups holds announcements per bucket, each keeping the input order.
type Groups map[Bucket][]entity.Announcement

// Group partitions items: every item lands in exactly one bucket.
func (c Calendar) Group(items []entity.Announcement, now time.Time) Groups {
	g := Groups{
		Today:     {},
		ThisWeek:  {},
		ThisMonth: {},
		Older:     {},
	}
	for _, a := range items {
		b := c.Classify(a.CreatedAt, now)
		g[b] = append(g[b], a)
	}
	return g
}

// Section is one rendered bucket.
type Section struct {
	Bucket Bucket                `json:"bucket"`
	Items  []entity.Announcement `json:"items"`
}

// Sections lays groups out in order and leaves empty buckets out.
func Sections(g Groups, order []Bucket) []Section {
	out := make([]Section, 0, len(order))
	for _, b := range order {
		if len(g[b]) == 0 {
			continue
		}
		out = append(out, Section{Bucket: b, Items: g[b]})
	}
	return out
}
