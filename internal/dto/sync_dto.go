package dto

import (
	"github.com/google/uuid"

	"notesync/pkg/view"
)

// ViewRefresh asks the sync pipeline to recompute a set of views for a user
// and broadcast the fresh lists to every connected device.
type ViewRefresh struct {
	UserId uuid.UUID  `json:"userId"`
	Keys   []view.Key `json:"keys"`
}

type ActivityResponse struct {
	Id        uuid.UUID              `json:"_id"`
	Type      string                 `json:"type"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt string                 `json:"createdAt"`
}
