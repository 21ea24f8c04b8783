package view

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionClassification(t *testing.T) {
	tests := []struct {
		section          Section
		hasNotebooks     bool
		validForNote     bool
		validForNotebook bool
	}{
		{SectionRegular, true, true, true},
		{SectionChecklist, true, true, true},
		{SectionLocked, false, true, false},
		{SectionFavorites, false, false, false},
		{Section("bogus"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.section), func(t *testing.T) {
			assert.Equal(t, tt.hasNotebooks, tt.section.HasNotebooks())
			assert.Equal(t, tt.validForNote, ValidNoteSection(tt.section))
			assert.Equal(t, tt.validForNotebook, ValidNotebookSection(tt.section))
		})
	}
}

func TestKeyIdentity(t *testing.T) {
	notebookId := uuid.New()

	assert.Equal(t, NotebookListKey(SectionRegular), NotebookListKey(SectionRegular))
	assert.NotEqual(t, NotebookListKey(SectionRegular), NotebookListKey(SectionChecklist))
	assert.NotEqual(t, NotebookListKey(SectionRegular), NotesKey(SectionRegular, notebookId))
	assert.Equal(t, NotesKey(SectionRegular, notebookId), NotesKey(SectionRegular, notebookId))
}

func TestKeyString(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	assert.Equal(t, "favorites", NotebookListKey(SectionFavorites).String())
	assert.Equal(t, "regular/6ba7b810-9dad-11d1-80b4-00c04fd430c8", NotesKey(SectionRegular, id).String())
}

func TestNotesUpdatedKeyResolution(t *testing.T) {
	notebookId := uuid.New()

	withNotebook := NotesUpdated{Section: SectionRegular, NotebookId: &notebookId}
	assert.Equal(t, NotesKey(SectionRegular, notebookId), withNotebook.Key())

	favorites := NotesUpdated{Section: SectionFavorites}
	assert.Equal(t, NotebookListKey(SectionFavorites), favorites.Key())
}

func TestLegacyWireFieldNames(t *testing.T) {
	note := Note{
		Id:       uuid.New(),
		Notebook: &NotebookRef{Id: uuid.New(), Name: "Work"},
		Section:  SectionRegular,
		Content:  "milk",
	}

	raw, err := json.Marshal(note)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// The web client predates this server and reads Mongo-style names.
	assert.Contains(t, decoded, "_id")
	assert.Contains(t, decoded, "notebookId")
	assert.Contains(t, decoded, "isFavorite")
	assert.NotContains(t, decoded, "Id")

	var ref map[string]any
	require.NoError(t, json.Unmarshal(decoded["notebookId"], &ref))
	assert.Equal(t, "Work", ref["name"])
}
