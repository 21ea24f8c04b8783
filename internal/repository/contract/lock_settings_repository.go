package contract

import (
	"context"

	"github.com/google/uuid"

	"notesync/internal/entity"
)

type LockSettingsRepository interface {
	Upsert(ctx context.Context, settings *entity.LockSettings) error
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.LockSettings, error)
}
