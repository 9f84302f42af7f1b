package behavior

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quarry-app/quarry/core"
	"github.com/quarry-app/quarry/storage"
	"github.com/quarry-app/quarry/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingEvents is a BehaviorRepository whose operations always fail.
type failingEvents struct{}

func (failingEvents) AppendEvent(context.Context, *core.BehaviorEvent) error {
	return errors.New("log unavailable")
}

func (failingEvents) ListRecentEvents(context.Context, time.Time, int) ([]*core.BehaviorEvent, error) {
	return nil, errors.New("log unavailable")
}

func (failingEvents) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return errors.New("log unavailable")
}

func (failingEvents) Close() error { return nil }

var _ storage.BehaviorRepository = failingEvents{}

func TestNewRecorder(t *testing.T) {
	_, eventRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	t.Run("valid configuration", func(t *testing.T) {
		recorder, err := NewRecorder(eventRepo)
		require.NoError(t, err)
		assert.NotNil(t, recorder)
		recorder.Close()
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewRecorder(nil)
		assert.Equal(t, ErrBehaviorRepositoryRequired, err)
	})

	t.Run("with pool size", func(t *testing.T) {
		recorder, err := NewRecorder(eventRepo, WithPoolSize(4))
		require.NoError(t, err)
		assert.NotNil(t, recorder)
		recorder.Close()
	})
}

func TestRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("appends an event", func(t *testing.T) {
		_, eventRepo, backend, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		defer backend.Close()

		recorder, err := NewRecorder(eventRepo)
		require.NoError(t, err)
		defer recorder.Close()

		recorder.Record(ctx, "budget review", core.ID("item-1"), "")

		events, err := eventRepo.ListRecentEvents(ctx, time.Time{}, 0)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "budget review", events[0].Query)
		assert.Equal(t, core.ID("item-1"), events[0].ItemId)
	})

	t.Run("enriches tags and touches the item", func(t *testing.T) {
		itemRepo, eventRepo, backend, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		defer backend.Close()

		added, err := itemRepo.AddKnowledgeItems(ctx, &core.KnowledgeItem{
			Title:   "Morning routine",
			Content: "health and exercise",
			Tags:    []string{"health", "routine"},
		})
		require.NoError(t, err)

		recorder, err := NewRecorder(eventRepo, WithItemSource(itemRepo))
		require.NoError(t, err)
		defer recorder.Close()

		recorder.Record(ctx, "health", added[0].Id, "")

		events, err := eventRepo.ListRecentEvents(ctx, time.Time{}, 0)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, []string{"health", "routine"}, events[0].Tags)

		item, err := itemRepo.GetKnowledgeItem(ctx, added[0].Id)
		require.NoError(t, err)
		assert.Equal(t, 1, item.AccessCount)
		assert.False(t, item.LastAccessed.IsZero())
	})

	t.Run("unknown item still records the event", func(t *testing.T) {
		itemRepo, eventRepo, backend, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		defer backend.Close()

		recorder, err := NewRecorder(eventRepo, WithItemSource(itemRepo))
		require.NoError(t, err)
		defer recorder.Close()

		recorder.Record(ctx, "health", core.ID("missing"), "")

		events, err := eventRepo.ListRecentEvents(ctx, time.Time{}, 0)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Empty(t, events[0].Tags)
	})

	t.Run("append failure is swallowed", func(t *testing.T) {
		recorder, err := NewRecorder(failingEvents{})
		require.NoError(t, err)
		defer recorder.Close()

		recorder.Record(ctx, "budget", core.ID("item-1"), "")
	})
}

func TestRecordAsync(t *testing.T) {
	_, eventRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	recorder, err := NewRecorder(eventRepo)
	require.NoError(t, err)
	defer recorder.Close()

	recorder.RecordAsync("budget review", core.ID("item-1"), "")

	require.Eventually(t, func() bool {
		events, err := eventRepo.ListRecentEvents(context.Background(), time.Time{}, 0)
		return err == nil && len(events) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestUserPreferences(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates favorite tags by frequency", func(t *testing.T) {
		_, eventRepo, backend, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		defer backend.Close()

		base := time.Now().UTC().Add(-time.Hour)
		appendEvent := func(ts time.Time, tags ...string) {
			err := eventRepo.AppendEvent(ctx, &core.BehaviorEvent{
				Query:     "q",
				ItemId:    core.ID("item"),
				Tags:      tags,
				Timestamp: ts,
			})
			require.NoError(t, err)
		}
		appendEvent(base, "health", "work")
		appendEvent(base.Add(time.Minute), "health", "finance")
		appendEvent(base.Add(2*time.Minute), "health", "work")

		recorder, err := NewRecorder(eventRepo)
		require.NoError(t, err)
		defer recorder.Close()

		prefs := recorder.UserPreferences(ctx, "")
		assert.True(t, prefs.FavorFrequentlyAccessed)
		assert.True(t, prefs.FavorRecent)
		assert.Equal(t, []string{"health", "work", "finance"}, prefs.FavoriteTags)
	})

	t.Run("keeps at most five tags", func(t *testing.T) {
		_, eventRepo, backend, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		defer backend.Close()

		base := time.Now().UTC().Add(-time.Hour)
		err = eventRepo.AppendEvent(ctx, &core.BehaviorEvent{
			Query:     "q",
			ItemId:    core.ID("item"),
			Tags:      []string{"a", "b", "c", "d", "e", "f", "g"},
			Timestamp: base,
		})
		require.NoError(t, err)

		recorder, err := NewRecorder(eventRepo)
		require.NoError(t, err)
		defer recorder.Close()

		prefs := recorder.UserPreferences(ctx, "")
		assert.Len(t, prefs.FavoriteTags, 5)
	})

	t.Run("filters by user id", func(t *testing.T) {
		_, eventRepo, backend, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		defer backend.Close()

		base := time.Now().UTC().Add(-time.Hour)
		err = eventRepo.AppendEvent(ctx, &core.BehaviorEvent{
			Query: "q", ItemId: core.ID("i1"), UserId: "alice",
			Tags: []string{"health"}, Timestamp: base,
		})
		require.NoError(t, err)
		err = eventRepo.AppendEvent(ctx, &core.BehaviorEvent{
			Query: "q", ItemId: core.ID("i2"), UserId: "bob",
			Tags: []string{"finance"}, Timestamp: base.Add(time.Minute),
		})
		require.NoError(t, err)

		recorder, err := NewRecorder(eventRepo)
		require.NoError(t, err)
		defer recorder.Close()

		prefs := recorder.UserPreferences(ctx, "alice")
		assert.Equal(t, []string{"health"}, prefs.FavoriteTags)
	})

	t.Run("no tagged events yields flags only", func(t *testing.T) {
		_, eventRepo, backend, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		defer backend.Close()

		recorder, err := NewRecorder(eventRepo)
		require.NoError(t, err)
		defer recorder.Close()

		prefs := recorder.UserPreferences(ctx, "")
		assert.True(t, prefs.FavorFrequentlyAccessed)
		assert.True(t, prefs.FavorRecent)
		assert.Empty(t, prefs.FavoriteTags)
	})

	t.Run("read failure yields the zero profile", func(t *testing.T) {
		recorder, err := NewRecorder(failingEvents{})
		require.NoError(t, err)
		defer recorder.Close()

		prefs := recorder.UserPreferences(ctx, "")
		assert.Equal(t, core.UserPreferences{}, prefs)
	})

	t.Run("ignores events outside the window", func(t *testing.T) {
		_, eventRepo, backend, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		defer backend.Close()

		err = eventRepo.AppendEvent(ctx, &core.BehaviorEvent{
			Query: "q", ItemId: core.ID("i1"),
			Tags: []string{"stale"}, Timestamp: time.Now().UTC().Add(-48 * time.Hour),
		})
		require.NoError(t, err)

		recorder, err := NewRecorder(eventRepo, WithWindow(24*time.Hour))
		require.NoError(t, err)
		defer recorder.Close()

		prefs := recorder.UserPreferences(ctx, "")
		assert.Empty(t, prefs.FavoriteTags)
	})
}
