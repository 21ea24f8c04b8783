package client

import (
	"sync"

	"notesync/pkg/view"
)

// Freshness describes how much a cache entry can be trusted.
type Freshness int

const (
	// FreshNever means the key has no usable entry and must be fetched.
	FreshNever Freshness = iota
	// FreshStale means data exists but a mutation has touched the key since
	// it was loaded. It must be re-fetched before rendering.
	FreshStale
	// FreshLoaded means the entry mirrors the last known server state and
	// can be rendered without a network call.
	FreshLoaded
)

// Entry is one materialized view. Exactly one of Notebooks or Notes is
// populated, depending on what kind of view the key names.
type Entry struct {
	Notebooks []view.Notebook
	Notes     []view.Note
	Freshness Freshness
}

// ViewCache is the client's read-through store of views it has already seen.
// It never talks to the network; the state machine decides when to fill it.
type ViewCache struct {
	mu      sync.RWMutex
	entries map[view.Key]*Entry
}

func NewViewCache() *ViewCache {
	return &ViewCache{
		entries: make(map[view.Key]*Entry),
	}
}

// Get returns the entry for key and its freshness. A missing entry reports
// FreshNever.
func (c *ViewCache) Get(key view.Key) (*Entry, Freshness) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, FreshNever
	}
	return entry, entry.Freshness
}

// StoreNotebooks overwrites the entry for key with a loaded notebook list.
func (c *ViewCache) StoreNotebooks(key view.Key, notebooks []view.Notebook) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &Entry{
		Notebooks: notebooks,
		Freshness: FreshLoaded,
	}
}

// StoreNotes overwrites the entry for key with a loaded note list.
func (c *ViewCache) StoreNotes(key view.Key, notes []view.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &Entry{
		Notes:     notes,
		Freshness: FreshLoaded,
	}
}

// Invalidate marks the listed keys stale. Missing keys are ignored; they are
// already in the must-fetch state.
func (c *ViewCache) Invalidate(keys ...view.Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		if entry, ok := c.entries[key]; ok {
			entry.Freshness = FreshStale
		}
	}
}

// Delete drops the entries for the listed keys entirely.
func (c *ViewCache) Delete(keys ...view.Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.entries, key)
	}
}

// Reset empties the cache, used on logout.
func (c *ViewCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[view.Key]*Entry)
}

// Len reports how many views are currently cached.
func (c *ViewCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
