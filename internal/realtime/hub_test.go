package realtime

import (
	"testing"
	"time"

	"github.com/jekabolt/edupath/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(table string, kind entity.ChangeKind) entity.ChangeEvent {
	return entity.ChangeEvent{Table: table, Kind: kind, RecordId: "1", At: time.Now()}
}

func TestSubscribeReceivesTableEvents(t *testing.T) {
	h := New(&Config{BufferSize: 4})
	sub := h.Subscribe(entity.TableAnnouncements)
	defer sub.Unsubscribe()

	h.Publish(event(entity.TableInstitutionImages, entity.ChangeInsert))
	h.Publish(event(entity.TableAnnouncements, entity.ChangeDelete))

	select {
	case ev := <-sub.Events():
		assert.Equal(t, entity.TableAnnouncements, ev.Table)
		assert.Equal(t, entity.ChangeDelete, ev.Kind)
	case <-time.After(time.Second):
		t.Fatal("no event")
	}
	assert.Len(t, sub.Events(), 0)
}

func TestAllTables(t *testing.T) {
	h := New(nil)
	sub := h.Subscribe(AllTables)
	h.Publish(event(entity.TableProfiles, entity.ChangeUpdate))
	ev := <-sub.Events()
	assert.Equal(t, entity.TableProfiles, ev.Table)
}

func TestPublishNeverBlocks(t *testing.T) {
	h := New(&Config{BufferSize: 1})
	sub := h.Subscribe(entity.TableAnnouncements)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			h.Publish(event(entity.TableAnnouncements, entity.ChangeInsert))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
	assert.Len(t, sub.Events(), 1)
}

func TestUnsubscribeIdempotent(t *testing.T) {
	h := New(nil)
	sub := h.Subscribe(entity.TableAnnouncements)
	require.Equal(t, 1, h.Subscribers(entity.TableAnnouncements))

	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.Equal(t, 0, h.Subscribers(entity.TableAnnouncements))

	_, open := <-sub.Events()
	assert.False(t, open)

	h.Publish(event(entity.TableAnnouncements, entity.ChangeInsert))
}

func TestClose(t *testing.T) {
	h := New(nil)
	sub := h.Subscribe(entity.TableAnnouncements)
	h.Close()
	h.Close()

	_, open := <-sub.Events()
	assert.False(t, open)
	sub.Unsubscribe()

	late := h.Subscribe(entity.TableAnnouncements)
	_, open = <-late.Events()
	assert.False(t, open)
	h.Publish(event(entity.TableAnnouncements, entity.ChangeInsert))
}
