package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jekabolt/edupath/internal/entity"
	"github.com/jekabolt/edupath/internal/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listFunc func(ctx context.Context, call int, limit int) ([]entity.Announcement, error)

// fakeSource serves ListAnnouncements from fn and records every call.
type fakeSource struct {
	mu     sync.Mutex
	limits []int
	fn     listFunc
}

func (f *fakeSource) ListAnnouncements(ctx context.Context, limit int) ([]entity.Announcement, error) {
	f.mu.Lock()
	call := len(f.limits)
	f.limits = append(f.limits, limit)
	fn := f.fn
	f.mu.Unlock()
	return fn(ctx, call, limit)
}

func (f *fakeSource) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.limits)
}

func (f *fakeSource) AddAnnouncement(context.Context, *entity.AnnouncementInsert) (*entity.Announcement, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeSource) GetAnnouncementById(context.Context, string) (*entity.Announcement, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeSource) DeleteAnnouncementById(context.Context, string) error {
	return errors.New("not implemented")
}

func fixed(items ...entity.Announcement) listFunc {
	return func(context.Context, int, int) ([]entity.Announcement, error) {
		return items, nil
	}
}

func waitFor(t *testing.T, c *Controller, pred func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s, ok := <-c.Updates():
			require.True(t, ok, "updates closed")
			if pred(s) {
				return s
			}
		case <-deadline:
			t.Fatalf("timed out, last snapshot %+v", c.Snapshot())
		}
	}
}

func inState(st State) func(Snapshot) bool {
	return func(s Snapshot) bool { return s.State == st }
}

func TestEmptyFeedIsEmptyState(t *testing.T) {
	src := &fakeSource{fn: fixed()}
	c := NewController(ModeList, src, nil, nil)
	defer c.Close()
	require.NoError(t, c.Mount(context.Background()))

	s := waitFor(t, c, func(s Snapshot) bool { return s.State != StateLoading })
	assert.Equal(t, StateEmpty, s.State)
	assert.NoError(t, s.Err)
	assert.False(t, s.ShowSpinner())
	assert.True(t, s.Resolved)
}

func TestLatestModeFetchesOne(t *testing.T) {
	src := &fakeSource{fn: fixed(ann("A", wednesday))}
	c := NewController(ModeLatest, src, nil, nil)
	defer c.Close()
	require.NoError(t, c.Mount(context.Background()))

	s := waitFor(t, c, inState(StatePopulated))
	assert.Equal(t, []string{"A"}, ids(s.Items))
	assert.Equal(t, []int{1}, src.limits)
}

func TestSpinnerOnlyBeforeFirstResolution(t *testing.T) {
	gate := make(chan struct{}, 2)
	src := &fakeSource{fn: func(ctx context.Context, call int, limit int) ([]entity.Announcement, error) {
		<-gate
		return []entity.Announcement{ann("A", wednesday)}, nil
	}}
	c := NewController(ModeList, src, nil, nil)
	defer c.Close()
	require.NoError(t, c.Mount(context.Background()))

	first := c.Snapshot()
	assert.Equal(t, StateLoading, first.State)
	assert.True(t, first.ShowSpinner())

	gate <- struct{}{}
	waitFor(t, c, inState(StatePopulated))

	c.Refresh()
	again := c.Snapshot()
	assert.Equal(t, StateLoading, again.State)
	assert.False(t, again.ShowSpinner())
	assert.Equal(t, []string{"A"}, ids(again.Items))

	gate <- struct{}{}
	waitFor(t, c, inState(StatePopulated))
}

func TestRealtimeEventTriggersRefetch(t *testing.T) {
	hub := realtime.New(nil)
	src := &fakeSource{fn: func(ctx context.Context, call int, limit int) ([]entity.Announcement, error) {
		if call == 0 {
			return nil, nil
		}
		return []entity.Announcement{ann("new", wednesday)}, nil
	}}
	c := NewController(ModeList, src, hub, nil)
	defer c.Close()
	require.NoError(t, c.Mount(context.Background()))
	waitFor(t, c, inState(StateEmpty))
	require.Equal(t, 1, hub.Subscribers(entity.TableAnnouncements))

	hub.Publish(entity.ChangeEvent{Table: entity.TableInstitutionImages, Kind: entity.ChangeInsert})
	hub.Publish(entity.ChangeEvent{Table: entity.TableAnnouncements, Kind: entity.ChangeInsert, RecordId: "new"})

	s := waitFor(t, c, inState(StatePopulated))
	assert.Equal(t, []string{"new"}, ids(s.Items))
	assert.Equal(t, 2, src.calls())
}

func TestCloseWithFetchInFlight(t *testing.T) {
	hub := realtime.New(nil)
	release := make(chan struct{})
	returned := make(chan struct{})
	src := &fakeSource{fn: func(ctx context.Context, call int, limit int) ([]entity.Announcement, error) {
		defer close(returned)
		<-release
		return []entity.Announcement{ann("late", wednesday)}, nil
	}}
	c := NewController(ModeList, src, hub, nil)
	require.NoError(t, c.Mount(context.Background()))

	c.Close()
	assert.Equal(t, 0, hub.Subscribers(entity.TableAnnouncements))

	close(release)
	<-returned
	time.Sleep(20 * time.Millisecond)

	for s := range c.Updates() {
		assert.Equal(t, StateLoading, s.State)
	}
	assert.Equal(t, StateLoading, c.Snapshot().State)
	assert.Empty(t, c.Snapshot().Items)

	c.Close()
	c.Refresh()
	assert.Error(t, c.Mount(context.Background()))
}

func TestCancelledMountContextCloses(t *testing.T) {
	hub := realtime.New(nil)
	src := &fakeSource{fn: fixed(ann("A", wednesday))}
	c := NewController(ModeList, src, hub, nil)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, c.Mount(ctx))
	waitFor(t, c, inState(StatePopulated))

	cancel()
	require.Eventually(t, func() bool {
		return hub.Subscribers(entity.TableAnnouncements) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLatestIssuedFetchWins(t *testing.T) {
	slow := make(chan struct{})
	src := &fakeSource{fn: func(ctx context.Context, call int, limit int) ([]entity.Announcement, error) {
		if call == 1 {
			<-slow
			return []entity.Announcement{ann("stale", wednesday)}, nil
		}
		if call == 0 {
			return []entity.Announcement{ann("first", wednesday)}, nil
		}
		return []entity.Announcement{ann("fresh", wednesday)}, nil
	}}
	c := NewController(ModeList, src, nil, nil)
	defer c.Close()
	require.NoError(t, c.Mount(context.Background()))
	waitFor(t, c, inState(StatePopulated))

	c.Refresh()
	require.Eventually(t, func() bool { return src.calls() == 2 }, time.Second, 5*time.Millisecond)
	c.Refresh()
	s := waitFor(t, c, inState(StatePopulated))
	assert.Equal(t, []string{"fresh"}, ids(s.Items))

	close(slow)
	require.Eventually(t, func() bool { return src.calls() == 3 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []string{"fresh"}, ids(c.Snapshot().Items))
	assert.Equal(t, StatePopulated, c.Snapshot().State)
}

func TestFetchTimeout(t *testing.T) {
	src := &fakeSource{fn: func(ctx context.Context, call int, limit int) ([]entity.Announcement, error) {
		select {} // ignores ctx
	}}
	c := NewController(ModeList, src, nil, &Config{FetchTimeout: 30 * time.Millisecond})
	defer c.Close()
	require.NoError(t, c.Mount(context.Background()))

	s := waitFor(t, c, inState(StateErrored))
	assert.ErrorIs(t, s.Err, context.DeadlineExceeded)
}

func TestErrorKeepsPreviousItems(t *testing.T) {
	boom := errors.New("db down")
	src := &fakeSource{fn: func(ctx context.Context, call int, limit int) ([]entity.Announcement, error) {
		if call == 0 {
			return []entity.Announcement{ann("A", wednesday)}, nil
		}
		return nil, boom
	}}
	c := NewController(ModeList, src, nil, nil)
	defer c.Close()
	require.NoError(t, c.Mount(context.Background()))
	waitFor(t, c, inState(StatePopulated))

	c.Refresh()
	s := waitFor(t, c, inState(StateErrored))
	assert.ErrorIs(t, s.Err, boom)
	assert.Equal(t, []string{"A"}, ids(s.Items))
}

func TestDebouncedEventsCoalesce(t *testing.T) {
	hub := realtime.New(&realtime.Config{BufferSize: 8})
	src := &fakeSource{fn: fixed(ann("A", wednesday))}
	c := NewController(ModeList, src, hub, &Config{Debounce: 50 * time.Millisecond})
	defer c.Close()
	require.NoError(t, c.Mount(context.Background()))
	waitFor(t, c, inState(StatePopulated))

	for i := 0; i < 5; i++ {
		hub.Publish(entity.ChangeEvent{Table: entity.TableAnnouncements, Kind: entity.ChangeUpdate})
	}
	require.Eventually(t, func() bool { return src.calls() == 2 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, 2, src.calls())
}

func TestMountTwice(t *testing.T) {
	c := NewController(ModeList, &fakeSource{fn: fixed()}, nil, nil)
	defer c.Close()
	require.NoError(t, c.Mount(context.Background()))
	assert.Error(t, c.Mount(context.Background()))
}
