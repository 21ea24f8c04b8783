package client

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesync/pkg/view"
)

func TestViewCacheLifecycle(t *testing.T) {
	cache := NewViewCache()
	key := view.NotebookListKey(view.SectionRegular)

	_, fresh := cache.Get(key)
	assert.Equal(t, FreshNever, fresh)

	cache.StoreNotebooks(key, []view.Notebook{{Id: uuid.New(), Name: "Work"}})
	entry, fresh := cache.Get(key)
	require.Equal(t, FreshLoaded, fresh)
	assert.Len(t, entry.Notebooks, 1)

	cache.Invalidate(key)
	_, fresh = cache.Get(key)
	assert.Equal(t, FreshStale, fresh)

	// A store after invalidation restores full trust.
	cache.StoreNotebooks(key, nil)
	_, fresh = cache.Get(key)
	assert.Equal(t, FreshLoaded, fresh)

	cache.Delete(key)
	_, fresh = cache.Get(key)
	assert.Equal(t, FreshNever, fresh)
}

func TestViewCacheInvalidateIgnoresUnknownKeys(t *testing.T) {
	cache := NewViewCache()

	cache.Invalidate(view.NotebookListKey(view.SectionFavorites))
	_, fresh := cache.Get(view.NotebookListKey(view.SectionFavorites))
	assert.Equal(t, FreshNever, fresh)
	assert.Equal(t, 0, cache.Len())
}

func TestViewCacheKeysAreIndependent(t *testing.T) {
	cache := NewViewCache()
	notebookId := uuid.New()
	listKey := view.NotebookListKey(view.SectionRegular)
	notesKey := view.NotesKey(view.SectionRegular, notebookId)

	cache.StoreNotebooks(listKey, []view.Notebook{{Id: notebookId, Name: "Work"}})
	cache.StoreNotes(notesKey, []view.Note{{Id: uuid.New(), Content: "milk"}})
	require.Equal(t, 2, cache.Len())

	cache.Invalidate(notesKey)

	_, fresh := cache.Get(listKey)
	assert.Equal(t, FreshLoaded, fresh)
	_, fresh = cache.Get(notesKey)
	assert.Equal(t, FreshStale, fresh)
}

func TestViewCacheReset(t *testing.T) {
	cache := NewViewCache()
	cache.StoreNotebooks(view.NotebookListKey(view.SectionRegular), nil)
	cache.StoreNotes(view.NotebookListKey(view.SectionLocked), nil)
	require.Equal(t, 2, cache.Len())

	cache.Reset()
	assert.Equal(t, 0, cache.Len())
}
