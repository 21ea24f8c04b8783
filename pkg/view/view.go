package view

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Section is the top-level categorization of content. Regular and checklist
// are storage partitions with notebooks underneath; favorites and locked are
// cross-cutting projections over notes.
type Section string

const (
	SectionRegular   Section = "regular"
	SectionChecklist Section = "checklist"
	SectionFavorites Section = "favorites"
	SectionLocked    Section = "locked"
)

// MaxViewItems caps every recomputed view. Pushes always carry the full list,
// so the cap bounds payload size.
const MaxViewItems = 100

// HasNotebooks reports whether the section organizes notes into notebooks.
func (s Section) HasNotebooks() bool {
	return s == SectionRegular || s == SectionChecklist
}

// ValidNoteSection reports whether s is a storable note section.
// Favorites is a view, never a stored section.
func ValidNoteSection(s Section) bool {
	return s == SectionRegular || s == SectionChecklist || s == SectionLocked
}

// ValidNotebookSection reports whether notebooks can exist in s.
func ValidNotebookSection(s Section) bool {
	return s.HasNotebooks()
}

// Key identifies one cacheable, pushable unit of UI data: a section's
// notebook list (NotebookId == uuid.Nil) or one notebook's note list.
// Keys are comparable and used directly as map keys.
type Key struct {
	Section    Section
	NotebookId uuid.UUID
}

// NotebookListKey is the key for a section's notebook list, or for the
// favorites/locked note views which are keyed by section alone.
func NotebookListKey(section Section) Key {
	return Key{Section: section}
}

// NotesKey is the key for one notebook's note list.
func NotesKey(section Section, notebookId uuid.UUID) Key {
	return Key{Section: section, NotebookId: notebookId}
}

func (k Key) String() string {
	if k.NotebookId == uuid.Nil {
		return string(k.Section)
	}
	return fmt.Sprintf("%s/%s", k.Section, k.NotebookId)
}

// Notebook is the wire shape of one notebook row in a notebook-list view.
// Field names follow the legacy client contract.
type Notebook struct {
	Id        uuid.UUID `json:"_id"`
	Name      string    `json:"name"`
	Section   Section   `json:"section"`
	NoteCount int64     `json:"noteCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotebookRef is the populated parent-notebook reference attached to notes,
// used by the favorites view to show where a note came from.
type NotebookRef struct {
	Id   uuid.UUID `json:"_id"`
	Name string    `json:"name"`
}

// Note is the wire shape of one note row in a note-list view.
type Note struct {
	Id         uuid.UUID    `json:"_id"`
	Notebook   *NotebookRef `json:"notebookId"`
	Section    Section      `json:"section"`
	Content    string       `json:"content"`
	IsChecked  bool         `json:"isChecked"`
	IsFavorite bool         `json:"isFavorite"`
	IsLocked   bool         `json:"isLocked"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// Push event names on the server->client channel.
const (
	EventNotebooksUpdated = "notebooks_updated"
	EventNotesUpdated     = "notes_updated"
)

// Envelope frames every server->client push message.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// NotebooksUpdated is the payload of a recomputed notebook-list view.
type NotebooksUpdated struct {
	Section   Section    `json:"section"`
	Notebooks []Notebook `json:"notebooks"`
}

// NotesUpdated is the payload of a recomputed note-list view.
// NotebookId is nil for the favorites and locked views.
type NotesUpdated struct {
	Section    Section    `json:"section"`
	NotebookId *uuid.UUID `json:"notebookId,omitempty"`
	Notes      []Note     `json:"notes"`
}

// Key resolves the view key this payload replaces.
func (n NotesUpdated) Key() Key {
	if n.NotebookId != nil {
		return NotesKey(n.Section, *n.NotebookId)
	}
	return NotebookListKey(n.Section)
}

// AuthenticateFrame is the first client->server frame on the push channel,
// binding the connection to a user via a short-lived signed ticket.
type AuthenticateFrame struct {
	Type   string `json:"type"`
	Ticket string `json:"ticket"`
}
