package quarry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quarry-app/quarry/ai/mock"
	"github.com/quarry-app/quarry/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("create new knowledge base", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		kb, err := Open(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, kb)
		defer kb.Close()

		// Verify components are initialized
		assert.NotNil(t, kb.ItemRepository())
		assert.NotNil(t, kb.BehaviorRepository())
		assert.NotNil(t, kb.backend)
		assert.NotNil(t, kb.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a knowledge base at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		kb, err := Open(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, kb)
	})

	t.Run("with injected interpreter", func(t *testing.T) {
		kb, err := Open(t.TempDir(), WithInterpreter(mock.NewMockInterpreter()))
		require.NoError(t, err)
		require.NotNil(t, kb)
		defer kb.Close()
	})
}

func TestKnowledgeBase_Close(t *testing.T) {
	kb, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, kb)

	err = kb.Close()
	assert.NoError(t, err)
}

func TestKnowledgeBase_FactoryMethods(t *testing.T) {
	kb, err := Open(t.TempDir(), WithInterpreter(mock.NewMockInterpreter()))
	require.NoError(t, err)
	require.NotNil(t, kb)
	defer kb.Close()

	t.Run("can create search engine", func(t *testing.T) {
		engine, err := kb.NewEngine()
		require.NoError(t, err)
		require.NotNil(t, engine)
	})

	t.Run("can create recorder", func(t *testing.T) {
		recorder, err := kb.NewRecorder()
		require.NoError(t, err)
		require.NotNil(t, recorder)
		recorder.Close()
	})
}

func TestKnowledgeBase_SearchRoundTrip(t *testing.T) {
	kb, err := Open(t.TempDir(), WithInterpreter(mock.NewMockInterpreter()))
	require.NoError(t, err)
	defer kb.Close()

	ctx := context.Background()
	added, err := kb.ItemRepository().AddKnowledgeItems(ctx,
		&core.KnowledgeItem{
			Title:   "Morning routine",
			Content: "health and exercise",
			Tags:    []string{"health"},
		},
		&core.KnowledgeItem{
			Title:   "Project plan",
			Content: "work deadlines",
			Tags:    []string{"work"},
		},
	)
	require.NoError(t, err)
	require.Len(t, added, 2)

	engine, err := kb.NewEngine()
	require.NoError(t, err)

	recorder, err := kb.NewRecorder()
	require.NoError(t, err)
	defer recorder.Close()

	items, err := kb.ItemRepository().ListKnowledgeItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// The mock interpreter parses "health not work" into a NOT query.
	prefs := recorder.UserPreferences(ctx, "")
	result := engine.Search(ctx, "health not work", items, prefs)
	require.NotNil(t, result)
	require.Equal(t, 1, result.TotalCount)
	assert.Equal(t, "Morning routine", result.Results[0].Item.Title)

	// Acting on the hit feeds the preference profile.
	recorder.Record(ctx, "health not work", result.Results[0].Item.Id, "")
	prefs = recorder.UserPreferences(ctx, "")
	assert.Equal(t, []string{"health"}, prefs.FavoriteTags)

	touched, err := kb.ItemRepository().GetKnowledgeItem(ctx, result.Results[0].Item.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, touched.AccessCount)
	assert.WithinDuration(t, time.Now(), touched.LastAccessed, time.Minute)
}
