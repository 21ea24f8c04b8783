package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"notesync/internal/entity"
	"notesync/pkg/view"
)

func TestNoteViewKeys(t *testing.T) {
	notebookId := uuid.New()

	tests := []struct {
		name string
		note entity.Note
		want []view.Key
	}{
		{
			name: "plain note inside a notebook",
			note: entity.Note{Section: view.SectionRegular, NotebookId: &notebookId},
			want: []view.Key{
				view.NotesKey(view.SectionRegular, notebookId),
				view.NotebookListKey(view.SectionRegular),
			},
		},
		{
			name: "locked note without a notebook",
			note: entity.Note{Section: view.SectionLocked, IsLocked: true},
			want: []view.Key{
				view.NotebookListKey(view.SectionLocked),
			},
		},
		{
			name: "favorited checklist note touches three views",
			note: entity.Note{Section: view.SectionChecklist, NotebookId: &notebookId, IsFavorite: true},
			want: []view.Key{
				view.NotesKey(view.SectionChecklist, notebookId),
				view.NotebookListKey(view.SectionChecklist),
				view.NotebookListKey(view.SectionFavorites),
			},
		},
		{
			name: "favorited and locked",
			note: entity.Note{Section: view.SectionRegular, NotebookId: &notebookId, IsFavorite: true, IsLocked: true},
			want: []view.Key{
				view.NotesKey(view.SectionRegular, notebookId),
				view.NotebookListKey(view.SectionRegular),
				view.NotebookListKey(view.SectionFavorites),
				view.NotebookListKey(view.SectionLocked),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, noteViewKeys(&tt.note))
		})
	}
}

func TestMergeKeysDeduplicates(t *testing.T) {
	notebookId := uuid.New()
	before := entity.Note{Section: view.SectionRegular, NotebookId: &notebookId}
	after := before
	after.IsFavorite = true

	merged := mergeKeys(noteViewKeys(&before), noteViewKeys(&after))

	assert.Equal(t, []view.Key{
		view.NotesKey(view.SectionRegular, notebookId),
		view.NotebookListKey(view.SectionRegular),
		view.NotebookListKey(view.SectionFavorites),
	}, merged)
}

func TestMergeKeysCoversUnfavoriteTransition(t *testing.T) {
	notebookId := uuid.New()
	before := entity.Note{Section: view.SectionChecklist, NotebookId: &notebookId, IsFavorite: true}
	after := before
	after.IsFavorite = false

	merged := mergeKeys(noteViewKeys(&before), noteViewKeys(&after))

	// The favorites view must still refresh so the note disappears from it.
	assert.Contains(t, merged, view.NotebookListKey(view.SectionFavorites))
}
