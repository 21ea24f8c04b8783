package entity

import (
	"time"

	"github.com/google/uuid"
)

// LockSettings holds the per-user passphrase gating the locked view.
// Absence of a row means the locked view shows the setup prompt.
type LockSettings struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	PassphraseHash string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
