package dto

import (
	"github.com/google/uuid"

	"notesync/pkg/view"
)

type CreateNoteRequest struct {
	Content    string       `json:"content" validate:"required"`
	Section    view.Section `json:"section" validate:"required"`
	NotebookId *uuid.UUID   `json:"notebookId"`
	IsChecked  bool         `json:"isChecked"`
	IsLocked   bool         `json:"isLocked"`
}

// UpdateNoteRequest carries only the fields the client sent. Nil pointers
// leave the stored value untouched.
type UpdateNoteRequest struct {
	Id         uuid.UUID
	Content    *string `json:"content"`
	IsChecked  *bool   `json:"isChecked"`
	IsFavorite *bool   `json:"isFavorite"`
	IsLocked   *bool   `json:"isLocked"`
}
