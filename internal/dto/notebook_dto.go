package dto

import "notesync/pkg/view"

type CreateNotebookRequest struct {
	Name    string       `json:"name" validate:"required,max=128"`
	Section view.Section `json:"section" validate:"required"`
}
