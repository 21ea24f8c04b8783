package entity

import (
	"time"

	"notesync/pkg/view"

	"github.com/google/uuid"
)

// Note belongs to one user and, for regular/checklist sections, to one
// notebook. Locked notes have no notebook. IsFavorite and IsLocked are
// orthogonal projections; Section decides which notebook-scoped list the
// note appears in.
type Note struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	NotebookId *uuid.UUID
	Section    view.Section
	Content    string
	IsChecked  bool
	IsFavorite bool
	IsLocked   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
