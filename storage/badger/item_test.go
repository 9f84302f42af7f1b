package badger

import (
	"context"
	"testing"
	"time"

	"github.com/quarry-app/quarry/core"
	"github.com/quarry-app/quarry/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRepository_AddAndGet(t *testing.T) {
	itemRepo, behaviorRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		behaviorRepo.Close()
		itemRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	items := []*core.KnowledgeItem{
		{
			Title:   "Morning routine",
			Content: "health and exercise",
			Tags:    []string{"health"},
		},
		{
			Title:      "Project plan",
			Content:    "work deadlines",
			Tags:       []string{"work"},
			SourceType: core.SourceNote,
			Importance: 8,
		},
	}

	added, err := itemRepo.AddKnowledgeItems(ctx, items...)
	require.NoError(t, err)
	require.Len(t, added, 2)

	for _, item := range added {
		assert.NotEmpty(t, item.Id)
		assert.False(t, item.CreatedAt.IsZero())

		got, err := itemRepo.GetKnowledgeItem(ctx, item.Id)
		require.NoError(t, err)
		assert.Equal(t, item.Title, got.Title)
		assert.Equal(t, item.Tags, got.Tags)
	}
}

func TestItemRepository_AddInvalidItem(t *testing.T) {
	itemRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	_, err = itemRepo.AddKnowledgeItems(context.Background(), &core.KnowledgeItem{Title: "no content"})
	assert.ErrorIs(t, err, core.ErrInvalidKnowledgeItem)
}

func TestItemRepository_GetNotFound(t *testing.T) {
	itemRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	_, err = itemRepo.GetKnowledgeItem(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestItemRepository_List(t *testing.T) {
	itemRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	empty, err := itemRepo.ListKnowledgeItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for i, title := range []string{"One", "Two", "Three"} {
		_, err := itemRepo.AddKnowledgeItems(ctx, &core.KnowledgeItem{
			Title:   title,
			Content: "body",
			Tags:    []string{"t"},
			Summary: string(rune('a' + i)),
		})
		require.NoError(t, err)
	}

	all, err := itemRepo.ListKnowledgeItems(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestItemRepository_Update(t *testing.T) {
	itemRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	added, err := itemRepo.AddKnowledgeItems(ctx, &core.KnowledgeItem{
		Title:   "Note",
		Content: "body",
	})
	require.NoError(t, err)
	created := added[0].CreatedAt

	updated := *added[0]
	updated.Summary = "now with a summary"
	updated.Tags = []string{"reclassified"}
	updated.CreatedAt = time.Now().Add(-100 * time.Hour) // must be ignored

	_, err = itemRepo.UpdateKnowledgeItems(ctx, &updated)
	require.NoError(t, err)

	got, err := itemRepo.GetKnowledgeItem(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "now with a summary", got.Summary)
	assert.Equal(t, []string{"reclassified"}, got.Tags)
	assert.Equal(t, created, got.CreatedAt, "created timestamp is immutable")
}

func TestItemRepository_UpdateNotFound(t *testing.T) {
	itemRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	_, err = itemRepo.UpdateKnowledgeItems(context.Background(), &core.KnowledgeItem{
		Id:      "missing",
		Title:   "Note",
		Content: "body",
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestItemRepository_Delete(t *testing.T) {
	itemRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	added, err := itemRepo.AddKnowledgeItems(ctx, &core.KnowledgeItem{
		Title:   "Note",
		Content: "body",
	})
	require.NoError(t, err)

	require.NoError(t, itemRepo.DeleteKnowledgeItems(ctx, added[0].Id))

	_, err = itemRepo.GetKnowledgeItem(ctx, added[0].Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// A deleted item never comes back in a listing
	all, err := itemRepo.ListKnowledgeItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestItemRepository_Touch(t *testing.T) {
	itemRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	added, err := itemRepo.AddKnowledgeItems(ctx, &core.KnowledgeItem{
		Title:   "Note",
		Content: "body",
	})
	require.NoError(t, err)
	require.Equal(t, 0, added[0].AccessCount)

	at := time.Now().UTC().Truncate(time.Microsecond)
	touched, err := itemRepo.TouchKnowledgeItem(ctx, added[0].Id, at)
	require.NoError(t, err)
	assert.Equal(t, 1, touched.AccessCount)
	assert.Equal(t, at, touched.LastAccessed)

	touched, err = itemRepo.TouchKnowledgeItem(ctx, added[0].Id, at.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, touched.AccessCount)
}
