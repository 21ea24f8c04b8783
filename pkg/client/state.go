package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"notesync/pkg/view"
)

// CurrentView names which kind of screen the user is looking at.
type CurrentView string

const (
	ViewNotebooks CurrentView = "notebooks"
	ViewNotes     CurrentView = "notes"
	ViewChecklist CurrentView = "checklist"
)

// ErrWrongPassphrase is returned by Unlock when the server rejects the
// passphrase. The caller keeps the prompt open.
var ErrWrongPassphrase = errors.New("wrong passphrase")

// NoteDraft carries everything needed to create a note.
type NoteDraft struct {
	Content    string
	Section    view.Section
	NotebookId *uuid.UUID
	IsChecked  bool
	IsLocked   bool
}

// NotePatch is a partial update. Nil fields are left unchanged server-side.
type NotePatch struct {
	Content    *string
	IsChecked  *bool
	IsFavorite *bool
	IsLocked   *bool
}

// Fetcher is the HTTP surface the state machine drives. Implemented by
// APIClient; tests substitute fakes.
type Fetcher interface {
	FetchNotebooks(ctx context.Context, section view.Section) ([]view.Notebook, error)
	FetchNotes(ctx context.Context, key view.Key) ([]view.Note, error)

	CreateNotebook(ctx context.Context, name string, section view.Section) error
	DeleteNotebook(ctx context.Context, id uuid.UUID) error
	CreateNote(ctx context.Context, draft NoteDraft) error
	UpdateNote(ctx context.Context, id uuid.UUID, patch NotePatch) error
	DeleteNote(ctx context.Context, id uuid.UUID) error
	ToggleFavorite(ctx context.Context, id uuid.UUID) error

	SetLockPassword(ctx context.Context, password string) error
	VerifyLockPassword(ctx context.Context, password string) (bool, error)
	CheckLockSetup(ctx context.Context) (bool, error)
}

// Renderer receives every visible state transition. The state machine owns
// WHAT is shown; the renderer owns HOW.
//
// RenderLoadError and the empty-list renders are deliberately separate
// surfaces: a failed fetch must never look like a loaded-but-empty view.
type Renderer interface {
	RenderNotebooks(section view.Section, notebooks []view.Notebook)
	RenderNotes(key view.Key, notes []view.Note)
	RenderLoading(key view.Key)
	RenderLoadError(key view.Key, err error)
	RenderLockSetup()
	RenderLockPrompt()
	RenderMutationError(err error)
}

// State is the client's view-cache and navigation state machine. One instance
// exists per signed-in session and owns its cache outright, so logout is a
// plain Reset with no ambient state left behind.
//
// Mutations never reshape cached lists locally. The server pushes the full
// recomputed view after every mutation, and ApplyPush is the only writer of
// cache content besides the initial fetch. Fetches are not cancellable, so
// every fetch completion re-checks the current key before rendering; a slow
// response from an abandoned navigation still lands in the cache but never
// touches the screen.
type State struct {
	mu sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc

	fetcher  Fetcher
	renderer Renderer
	cache    *ViewCache

	currentSection    view.Section
	currentNotebookId uuid.UUID // uuid.Nil at list level
	currentView       CurrentView
	unlocked          bool
}

func NewState(fetcher Fetcher, renderer Renderer) *State {
	ctx, cancel := context.WithCancel(context.Background())
	return &State{
		ctx:      ctx,
		cancel:   cancel,
		fetcher:  fetcher,
		renderer: renderer,
		cache:    NewViewCache(),
	}
}

// Cache exposes the underlying view cache, mainly for tests and debugging.
func (s *State) Cache() *ViewCache {
	return s.cache
}

// context returns the lifecycle context for network calls. Reset swaps it,
// so callers grab it under the lock.
func (s *State) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

// Section returns the section currently navigated to.
func (s *State) Section() view.Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentSection
}

// View returns the current screen kind.
func (s *State) View() CurrentView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentView
}

// currentKeyLocked resolves the view key for the current position.
// Callers must hold s.mu.
func (s *State) currentKeyLocked() view.Key {
	if s.currentNotebookId != uuid.Nil {
		return view.NotesKey(s.currentSection, s.currentNotebookId)
	}
	return view.NotebookListKey(s.currentSection)
}

// isCurrent reports whether key is what the user is looking at right now.
// The locked view additionally requires the gate to be open.
func (s *State) isCurrent(key view.Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key != s.currentKeyLocked() {
		return false
	}
	if key.Section == view.SectionLocked && !s.unlocked {
		return false
	}
	return true
}

// Navigate moves to a section's top-level view. The transition itself is
// synchronous; only missing data goes to the network.
func (s *State) Navigate(section view.Section) {
	s.mu.Lock()
	s.currentSection = section
	s.currentNotebookId = uuid.Nil
	if section.HasNotebooks() {
		s.currentView = ViewNotebooks
	} else {
		s.currentView = ViewNotes
	}
	gated := section == view.SectionLocked && !s.unlocked
	s.mu.Unlock()

	if gated {
		go s.resolveLockGate()
		return
	}

	s.showKey(view.NotebookListKey(section))
}

// OpenNotebook descends into one notebook's note list.
func (s *State) OpenNotebook(notebook view.Notebook) {
	s.mu.Lock()
	s.currentSection = notebook.Section
	s.currentNotebookId = notebook.Id
	if notebook.Section == view.SectionChecklist {
		s.currentView = ViewChecklist
	} else {
		s.currentView = ViewNotes
	}
	s.mu.Unlock()

	s.showKey(view.NotesKey(notebook.Section, notebook.Id))
}

// GoBack returns to the notebook list of the current section. The list was
// necessarily loaded to get here, so this renders from cache; the fetch path
// only runs if the entry has somehow gone stale or missing.
func (s *State) GoBack() {
	s.mu.Lock()
	s.currentNotebookId = uuid.Nil
	s.currentView = ViewNotebooks
	section := s.currentSection
	s.mu.Unlock()

	s.showKey(view.NotebookListKey(section))
}

// showKey serves the key from cache when loaded, otherwise shows a loading
// placeholder and fetches.
func (s *State) showKey(key view.Key) {
	entry, fresh := s.cache.Get(key)
	if fresh == FreshLoaded {
		s.renderEntry(key, entry)
		return
	}

	s.renderer.RenderLoading(key)
	go s.load(key)
}

func (s *State) renderEntry(key view.Key, entry *Entry) {
	if key.NotebookId == uuid.Nil && key.Section.HasNotebooks() {
		s.renderer.RenderNotebooks(key.Section, entry.Notebooks)
		return
	}
	s.renderer.RenderNotes(key, entry.Notes)
}

// load fetches one view and stores it. A failed fetch stores nothing, so the
// key stays in the must-fetch state and the error surface replaces content.
func (s *State) load(key view.Key) {
	if key.NotebookId == uuid.Nil && key.Section.HasNotebooks() {
		notebooks, err := s.fetcher.FetchNotebooks(s.context(), key.Section)
		if err != nil {
			if s.isCurrent(key) {
				s.renderer.RenderLoadError(key, err)
			}
			return
		}
		s.cache.StoreNotebooks(key, notebooks)
		if s.isCurrent(key) {
			s.renderer.RenderNotebooks(key.Section, notebooks)
		}
		return
	}

	notes, err := s.fetcher.FetchNotes(s.context(), key)
	if err != nil {
		if s.isCurrent(key) {
			s.renderer.RenderLoadError(key, err)
		}
		return
	}
	s.cache.StoreNotes(key, notes)
	if s.isCurrent(key) {
		s.renderer.RenderNotes(key, notes)
	}
}

// Invalidate marks keys stale so the next navigation re-fetches them.
func (s *State) Invalidate(keys ...view.Key) {
	s.cache.Invalidate(keys...)
}

// ApplyPush overwrites the cache for the pushed view and re-renders when the
// user is looking at it. This is the only path by which another device's
// edits (or this device's own, echoed back) become visible.
func (s *State) ApplyPush(event string, data json.RawMessage) error {
	switch event {
	case view.EventNotebooksUpdated:
		var payload view.NotebooksUpdated
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}
		key := view.NotebookListKey(payload.Section)
		s.cache.StoreNotebooks(key, payload.Notebooks)
		if s.isCurrent(key) {
			s.renderer.RenderNotebooks(payload.Section, payload.Notebooks)
		}
		return nil

	case view.EventNotesUpdated:
		var payload view.NotesUpdated
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}
		key := payload.Key()
		s.cache.StoreNotes(key, payload.Notes)
		if s.isCurrent(key) {
			s.renderer.RenderNotes(key, payload.Notes)
		}
		return nil
	}

	return fmt.Errorf("unknown push event %q", event)
}

// Mutations. None of them touch the cache; the server's push supplies the
// corrected view shortly after. A failure therefore needs no rollback, the
// screen simply keeps the last confirmed state.

func (s *State) CreateNotebook(name string, section view.Section) error {
	return s.reportMutation(s.fetcher.CreateNotebook(s.context(), name, section))
}

func (s *State) DeleteNotebook(id uuid.UUID) error {
	return s.reportMutation(s.fetcher.DeleteNotebook(s.context(), id))
}

func (s *State) CreateNote(draft NoteDraft) error {
	return s.reportMutation(s.fetcher.CreateNote(s.context(), draft))
}

func (s *State) UpdateNote(id uuid.UUID, patch NotePatch) error {
	return s.reportMutation(s.fetcher.UpdateNote(s.context(), id, patch))
}

func (s *State) DeleteNote(id uuid.UUID) error {
	return s.reportMutation(s.fetcher.DeleteNote(s.context(), id))
}

func (s *State) ToggleFavorite(id uuid.UUID) error {
	return s.reportMutation(s.fetcher.ToggleFavorite(s.context(), id))
}

// ToggleChecklistItem flips a checklist note's checked flag to the given
// value. It rides the same partial-update path as any other note edit.
func (s *State) ToggleChecklistItem(id uuid.UUID, checked bool) error {
	return s.reportMutation(s.fetcher.UpdateNote(s.context(), id, NotePatch{IsChecked: &checked}))
}

func (s *State) reportMutation(err error) error {
	if err != nil {
		s.renderer.RenderMutationError(err)
	}
	return err
}

// Lock gate. Three sub-states: no passphrase configured (setup prompt),
// configured but not yet unlocked this session (unlock prompt), unlocked
// (content).

func (s *State) resolveLockGate() {
	hasPassword, err := s.fetcher.CheckLockSetup(s.context())

	s.mu.Lock()
	stillGated := s.currentSection == view.SectionLocked && !s.unlocked
	s.mu.Unlock()
	if !stillGated {
		return
	}

	if err != nil {
		s.renderer.RenderLoadError(view.NotebookListKey(view.SectionLocked), err)
		return
	}
	if hasPassword {
		s.renderer.RenderLockPrompt()
	} else {
		s.renderer.RenderLockSetup()
	}
}

// SetupLock sets the passphrase for a user who had none, then opens the gate.
func (s *State) SetupLock(password string) error {
	if err := s.fetcher.SetLockPassword(s.context(), password); err != nil {
		s.renderer.RenderMutationError(err)
		return err
	}
	s.openLockGate()
	return nil
}

// Unlock verifies the passphrase and opens the gate on success.
func (s *State) Unlock(password string) error {
	ok, err := s.fetcher.VerifyLockPassword(s.context(), password)
	if err != nil {
		s.renderer.RenderMutationError(err)
		return err
	}
	if !ok {
		return ErrWrongPassphrase
	}
	s.openLockGate()
	return nil
}

func (s *State) openLockGate() {
	s.mu.Lock()
	s.unlocked = true
	showLocked := s.currentSection == view.SectionLocked
	s.mu.Unlock()

	if showLocked {
		s.showKey(view.NotebookListKey(view.SectionLocked))
	}
}

// Reset tears the session state down: in-flight fetches are released, the
// cache is emptied, and the lock gate closes again.
func (s *State) Reset() {
	s.mu.Lock()
	s.cancel()
	s.currentSection = ""
	s.currentNotebookId = uuid.Nil
	s.currentView = ""
	s.unlocked = false
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.mu.Unlock()

	s.cache.Reset()
}
