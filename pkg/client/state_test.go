package client

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesync/pkg/view"
)

type fakeFetcher struct {
	mu sync.Mutex

	notebooks map[view.Section][]view.Notebook
	notes     map[view.Key][]view.Note

	notebookErr error
	noteErr     error

	// blockNotes, when non-nil, stalls FetchNotes until closed.
	blockNotes chan struct{}

	notebookCalls int
	noteCalls     int
	mutations     []string

	hasPassword    bool
	passphrase     string
	setupCalls     int
	checkLockCalls int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		notebooks: make(map[view.Section][]view.Notebook),
		notes:     make(map[view.Key][]view.Note),
	}
}

func (f *fakeFetcher) FetchNotebooks(_ context.Context, section view.Section) ([]view.Notebook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notebookCalls++
	if f.notebookErr != nil {
		return nil, f.notebookErr
	}
	return f.notebooks[section], nil
}

func (f *fakeFetcher) FetchNotes(_ context.Context, key view.Key) ([]view.Note, error) {
	f.mu.Lock()
	block := f.blockNotes
	f.noteCalls++
	f.mu.Unlock()

	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.noteErr != nil {
		return nil, f.noteErr
	}
	return f.notes[key], nil
}

func (f *fakeFetcher) recordMutation(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutations = append(f.mutations, name)
	return nil
}

func (f *fakeFetcher) CreateNotebook(context.Context, string, view.Section) error {
	return f.recordMutation("createNotebook")
}

func (f *fakeFetcher) DeleteNotebook(context.Context, uuid.UUID) error {
	return f.recordMutation("deleteNotebook")
}

func (f *fakeFetcher) CreateNote(context.Context, NoteDraft) error {
	return f.recordMutation("createNote")
}

func (f *fakeFetcher) UpdateNote(context.Context, uuid.UUID, NotePatch) error {
	return f.recordMutation("updateNote")
}

func (f *fakeFetcher) DeleteNote(context.Context, uuid.UUID) error {
	return f.recordMutation("deleteNote")
}

func (f *fakeFetcher) ToggleFavorite(context.Context, uuid.UUID) error {
	return f.recordMutation("toggleFavorite")
}

func (f *fakeFetcher) SetLockPassword(_ context.Context, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setupCalls++
	f.hasPassword = true
	f.passphrase = password
	return nil
}

func (f *fakeFetcher) VerifyLockPassword(_ context.Context, password string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasPassword && f.passphrase == password, nil
}

func (f *fakeFetcher) CheckLockSetup(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkLockCalls++
	return f.hasPassword, nil
}

func (f *fakeFetcher) counts() (notebooks, notes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notebookCalls, f.noteCalls
}

type renderEvent struct {
	kind  string
	key   view.Key
	items int
}

type fakeRenderer struct {
	mu     sync.Mutex
	events []renderEvent
}

func (r *fakeRenderer) record(e renderEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *fakeRenderer) RenderNotebooks(section view.Section, notebooks []view.Notebook) {
	r.record(renderEvent{kind: "notebooks", key: view.NotebookListKey(section), items: len(notebooks)})
}

func (r *fakeRenderer) RenderNotes(key view.Key, notes []view.Note) {
	r.record(renderEvent{kind: "notes", key: key, items: len(notes)})
}

func (r *fakeRenderer) RenderLoading(key view.Key) {
	r.record(renderEvent{kind: "loading", key: key})
}

func (r *fakeRenderer) RenderLoadError(key view.Key, err error) {
	r.record(renderEvent{kind: "error", key: key})
}

func (r *fakeRenderer) RenderLockSetup() {
	r.record(renderEvent{kind: "lockSetup"})
}

func (r *fakeRenderer) RenderLockPrompt() {
	r.record(renderEvent{kind: "lockPrompt"})
}

func (r *fakeRenderer) RenderMutationError(err error) {
	r.record(renderEvent{kind: "mutationError"})
}

func (r *fakeRenderer) count(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.kind == kind {
			n++
		}
	}
	return n
}

func (r *fakeRenderer) countFor(kind string, key view.Key) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.kind == kind && e.key == key {
			n++
		}
	}
	return n
}

func (r *fakeRenderer) last() (renderEvent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return renderEvent{}, false
	}
	return r.events[len(r.events)-1], true
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond)
}

func sampleNotebook(section view.Section, name string) view.Notebook {
	return view.Notebook{Id: uuid.New(), Name: name, Section: section}
}

func TestNavigateServesFromCacheAfterFirstLoad(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.notebooks[view.SectionRegular] = []view.Notebook{sampleNotebook(view.SectionRegular, "Work")}
	renderer := &fakeRenderer{}
	state := NewState(fetcher, renderer)

	regularKey := view.NotebookListKey(view.SectionRegular)

	state.Navigate(view.SectionRegular)
	waitFor(t, func() bool { return renderer.countFor("notebooks", regularKey) == 1 })

	state.Navigate(view.SectionChecklist)
	waitFor(t, func() bool {
		return renderer.countFor("notebooks", view.NotebookListKey(view.SectionChecklist)) == 1
	})

	// Back to regular: must render synchronously, no second fetch.
	state.Navigate(view.SectionRegular)
	assert.Equal(t, 2, renderer.countFor("notebooks", regularKey))

	notebookCalls, _ := fetcher.counts()
	assert.Equal(t, 2, notebookCalls, "one fetch per section, cache hit afterwards")
}

func TestLoadingPlaceholderShownOnColdFetch(t *testing.T) {
	fetcher := newFakeFetcher()
	renderer := &fakeRenderer{}
	state := NewState(fetcher, renderer)

	state.Navigate(view.SectionRegular)

	key := view.NotebookListKey(view.SectionRegular)
	assert.Equal(t, 1, renderer.countFor("loading", key))
	waitFor(t, func() bool { return renderer.countFor("notebooks", key) == 1 })
}

func TestLateResponseNeverOverwritesNewerView(t *testing.T) {
	fetcher := newFakeFetcher()
	notebook := sampleNotebook(view.SectionRegular, "Slow")
	fetcher.notebooks[view.SectionRegular] = []view.Notebook{notebook}
	noteKey := view.NotesKey(view.SectionRegular, notebook.Id)
	fetcher.notes[noteKey] = []view.Note{{Id: uuid.New(), Content: "late arrival", Section: view.SectionRegular}}

	renderer := &fakeRenderer{}
	state := NewState(fetcher, renderer)

	state.Navigate(view.SectionRegular)
	waitFor(t, func() bool { return renderer.count("notebooks") == 1 })

	// The note fetch stalls while the user backs out.
	block := make(chan struct{})
	fetcher.mu.Lock()
	fetcher.blockNotes = block
	fetcher.mu.Unlock()

	state.OpenNotebook(notebook)
	waitFor(t, func() bool { _, n := fetcher.counts(); return n == 1 })
	state.GoBack()

	close(block)
	waitFor(t, func() bool {
		_, fresh := state.Cache().Get(noteKey)
		return fresh == FreshLoaded
	})

	// Stored, never rendered.
	assert.Equal(t, 0, renderer.countFor("notes", noteKey))

	// Re-entering the notebook serves the stored result without re-fetching.
	state.OpenNotebook(notebook)
	assert.Equal(t, 1, renderer.countFor("notes", noteKey))
	_, noteCalls := fetcher.counts()
	assert.Equal(t, 1, noteCalls)
}

func TestApplyPushUpdatesCacheAndVisibleView(t *testing.T) {
	fetcher := newFakeFetcher()
	renderer := &fakeRenderer{}
	state := NewState(fetcher, renderer)

	regularKey := view.NotebookListKey(view.SectionRegular)

	state.Navigate(view.SectionRegular)
	waitFor(t, func() bool { return renderer.countFor("notebooks", regularKey) == 1 })

	payload, err := json.Marshal(view.NotebooksUpdated{
		Section:   view.SectionRegular,
		Notebooks: []view.Notebook{sampleNotebook(view.SectionRegular, "Pushed")},
	})
	require.NoError(t, err)

	require.NoError(t, state.ApplyPush(view.EventNotebooksUpdated, payload))

	last, ok := renderer.last()
	require.True(t, ok)
	assert.Equal(t, "notebooks", last.kind)
	assert.Equal(t, 1, last.items)

	entry, fresh := state.Cache().Get(regularKey)
	require.Equal(t, FreshLoaded, fresh)
	assert.Len(t, entry.Notebooks, 1)
}

func TestApplyPushForHiddenViewOnlyUpdatesCache(t *testing.T) {
	fetcher := newFakeFetcher()
	renderer := &fakeRenderer{}
	state := NewState(fetcher, renderer)

	state.Navigate(view.SectionRegular)
	waitFor(t, func() bool { return renderer.count("notebooks") == 1 })

	favKey := view.NotebookListKey(view.SectionFavorites)
	payload, err := json.Marshal(view.NotesUpdated{
		Section: view.SectionFavorites,
		Notes:   []view.Note{{Id: uuid.New(), Content: "starred"}},
	})
	require.NoError(t, err)
	require.NoError(t, state.ApplyPush(view.EventNotesUpdated, payload))

	assert.Equal(t, 0, renderer.countFor("notes", favKey))
	entry, fresh := state.Cache().Get(favKey)
	require.Equal(t, FreshLoaded, fresh)
	assert.Len(t, entry.Notes, 1)

	// Navigating there now is a pure cache hit.
	state.Navigate(view.SectionFavorites)
	assert.Equal(t, 1, renderer.countFor("notes", favKey))
	_, noteCalls := fetcher.counts()
	assert.Equal(t, 0, noteCalls)
}

func TestApplyPushRejectsUnknownEvent(t *testing.T) {
	state := NewState(newFakeFetcher(), &fakeRenderer{})
	err := state.ApplyPush("mystery_event", json.RawMessage(`{}`))
	assert.Error(t, err)
}

func TestMutationsNeverTouchTheCache(t *testing.T) {
	fetcher := newFakeFetcher()
	renderer := &fakeRenderer{}
	state := NewState(fetcher, renderer)

	state.Navigate(view.SectionRegular)
	waitFor(t, func() bool { return renderer.count("notebooks") == 1 })
	require.Equal(t, 1, state.Cache().Len())

	require.NoError(t, state.CreateNotebook("Inbox", view.SectionRegular))
	require.NoError(t, state.CreateNote(NoteDraft{Content: "milk", Section: view.SectionRegular}))
	checked := true
	require.NoError(t, state.UpdateNote(uuid.New(), NotePatch{IsChecked: &checked}))

	// The lists only change when the server pushes them back.
	assert.Equal(t, 1, state.Cache().Len())
	entry, fresh := state.Cache().Get(view.NotebookListKey(view.SectionRegular))
	assert.Equal(t, FreshLoaded, fresh)
	assert.Empty(t, entry.Notebooks)
}

func TestFetchFailureRendersErrorNotEmptyState(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.notebookErr = assert.AnError
	renderer := &fakeRenderer{}
	state := NewState(fetcher, renderer)

	key := view.NotebookListKey(view.SectionRegular)
	state.Navigate(view.SectionRegular)
	waitFor(t, func() bool { return renderer.countFor("error", key) == 1 })

	// A failed load is never confused with a loaded-but-empty view.
	assert.Equal(t, 0, renderer.countFor("notebooks", key))
	_, fresh := state.Cache().Get(key)
	assert.Equal(t, FreshNever, fresh)

	// Once the backend recovers, re-navigating fetches again.
	fetcher.mu.Lock()
	fetcher.notebookErr = nil
	fetcher.mu.Unlock()
	state.Navigate(view.SectionRegular)
	waitFor(t, func() bool { return renderer.countFor("notebooks", key) == 1 })
}

func TestGoBackRendersNotebookListFromCache(t *testing.T) {
	fetcher := newFakeFetcher()
	notebook := sampleNotebook(view.SectionChecklist, "Chores")
	fetcher.notebooks[view.SectionChecklist] = []view.Notebook{notebook}
	renderer := &fakeRenderer{}
	state := NewState(fetcher, renderer)

	state.Navigate(view.SectionChecklist)
	waitFor(t, func() bool { return renderer.count("notebooks") == 1 })

	state.OpenNotebook(notebook)
	assert.Equal(t, ViewChecklist, state.View())
	waitFor(t, func() bool { return renderer.count("notes") == 1 })

	notebookCallsBefore, _ := fetcher.counts()
	state.GoBack()
	assert.Equal(t, ViewNotebooks, state.View())
	assert.Equal(t, 2, renderer.count("notebooks"))

	notebookCallsAfter, _ := fetcher.counts()
	assert.Equal(t, notebookCallsBefore, notebookCallsAfter, "go-back must not re-fetch")
}

func TestLockedSectionSetupFlow(t *testing.T) {
	fetcher := newFakeFetcher()
	renderer := &fakeRenderer{}
	state := NewState(fetcher, renderer)

	state.Navigate(view.SectionLocked)
	waitFor(t, func() bool { return renderer.count("lockSetup") == 1 })

	// Content never rendered while the gate is shut.
	lockedKey := view.NotebookListKey(view.SectionLocked)
	assert.Equal(t, 0, renderer.countFor("notes", lockedKey))

	require.NoError(t, state.SetupLock("hunter2"))
	waitFor(t, func() bool { return renderer.countFor("notes", lockedKey) == 1 })
}

func TestLockedSectionUnlockFlow(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.hasPassword = true
	fetcher.passphrase = "hunter2"
	fetcher.notes[view.NotebookListKey(view.SectionLocked)] = []view.Note{
		{Id: uuid.New(), Content: "secret", Section: view.SectionLocked, IsLocked: true},
	}
	renderer := &fakeRenderer{}
	state := NewState(fetcher, renderer)

	state.Navigate(view.SectionLocked)
	waitFor(t, func() bool { return renderer.count("lockPrompt") == 1 })

	err := state.Unlock("wrong")
	assert.ErrorIs(t, err, ErrWrongPassphrase)
	assert.Equal(t, 0, renderer.count("notes"))

	require.NoError(t, state.Unlock("hunter2"))
	waitFor(t, func() bool {
		last, ok := renderer.last()
		return ok && last.kind == "notes" && last.items == 1
	})
}

func TestPushForLockedViewStaysHiddenBehindGate(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.hasPassword = true
	fetcher.passphrase = "hunter2"
	renderer := &fakeRenderer{}
	state := NewState(fetcher, renderer)

	state.Navigate(view.SectionLocked)
	waitFor(t, func() bool { return renderer.count("lockPrompt") == 1 })

	payload, err := json.Marshal(view.NotesUpdated{
		Section: view.SectionLocked,
		Notes:   []view.Note{{Id: uuid.New(), Content: "secret", IsLocked: true}},
	})
	require.NoError(t, err)
	require.NoError(t, state.ApplyPush(view.EventNotesUpdated, payload))

	lockedKey := view.NotebookListKey(view.SectionLocked)
	assert.Equal(t, 0, renderer.countFor("notes", lockedKey))

	require.NoError(t, state.Unlock("hunter2"))
	waitFor(t, func() bool { return renderer.countFor("notes", lockedKey) == 1 })
}

func TestResetTearsDownSessionState(t *testing.T) {
	fetcher := newFakeFetcher()
	renderer := &fakeRenderer{}
	state := NewState(fetcher, renderer)

	state.Navigate(view.SectionRegular)
	waitFor(t, func() bool { return renderer.count("notebooks") == 1 })
	require.NoError(t, state.SetupLock("hunter2"))
	require.Equal(t, 1, state.Cache().Len())

	state.Reset()

	assert.Equal(t, 0, state.Cache().Len())
	assert.Equal(t, view.Section(""), state.Section())

	// A fresh sign-in must face the lock prompt again.
	state.Navigate(view.SectionLocked)
	waitFor(t, func() bool { return renderer.count("lockPrompt") == 1 })
}
