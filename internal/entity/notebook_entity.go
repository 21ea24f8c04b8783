package entity

import (
	"time"

	"notesync/pkg/view"

	"github.com/google/uuid"
)

type Notebook struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Name      string
	Section   view.Section
	CreatedAt time.Time
}
