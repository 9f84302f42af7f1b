package badger

import (
	"context"
	"testing"
	"time"

	"github.com/quarry-app/quarry/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBehaviorRepository_AppendAndList(t *testing.T) {
	_, behaviorRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	events := []*core.BehaviorEvent{
		{Query: "health", ItemId: "item-1", Tags: []string{"health"}, Timestamp: now.Add(-2 * time.Hour)},
		{Query: "work", ItemId: "item-2", Tags: []string{"work"}, Timestamp: now.Add(-1 * time.Hour)},
		{Query: "health tips", ItemId: "item-1", Tags: []string{"health"}, Timestamp: now},
	}

	for _, event := range events {
		require.NoError(t, behaviorRepo.AppendEvent(ctx, event))
		assert.NotEmpty(t, event.Id)
	}

	got, err := behaviorRepo.ListRecentEvents(ctx, now.Add(-24*time.Hour), 0)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Most recent first
	assert.Equal(t, "health tips", got[0].Query)
	assert.Equal(t, "work", got[1].Query)
	assert.Equal(t, "health", got[2].Query)
}

func TestBehaviorRepository_ListSinceCutoff(t *testing.T) {
	_, behaviorRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	old := &core.BehaviorEvent{Query: "stale", ItemId: "item-1", Timestamp: now.Add(-48 * time.Hour)}
	fresh := &core.BehaviorEvent{Query: "fresh", ItemId: "item-2", Timestamp: now}

	require.NoError(t, behaviorRepo.AppendEvent(ctx, old))
	require.NoError(t, behaviorRepo.AppendEvent(ctx, fresh))

	got, err := behaviorRepo.ListRecentEvents(ctx, now.Add(-24*time.Hour), 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].Query)
}

func TestBehaviorRepository_ListLimit(t *testing.T) {
	_, behaviorRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	for i := 0; i < 10; i++ {
		event := &core.BehaviorEvent{
			Query:     "query",
			ItemId:    core.ID(rune('a' + i)),
			Timestamp: now.Add(-time.Duration(i) * time.Minute),
		}
		require.NoError(t, behaviorRepo.AppendEvent(ctx, event))
	}

	got, err := behaviorRepo.ListRecentEvents(ctx, now.Add(-time.Hour), 5)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestBehaviorRepository_AppendInvalidEvent(t *testing.T) {
	_, behaviorRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	err = behaviorRepo.AppendEvent(context.Background(), &core.BehaviorEvent{Query: "no item id"})
	assert.ErrorIs(t, err, core.ErrInvalidBehaviorEvent)
}

func TestBehaviorRepository_AppendSetsTimestamp(t *testing.T) {
	_, behaviorRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	event := &core.BehaviorEvent{Query: "health", ItemId: "item-1"}
	require.NoError(t, behaviorRepo.AppendEvent(context.Background(), event))
	assert.False(t, event.Timestamp.IsZero())
}
