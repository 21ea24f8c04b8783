package contract

import (
	"context"

	"notesync/internal/entity"
	"notesync/internal/repository/specification"
)

type ActivityEventRepository interface {
	Create(ctx context.Context, event *entity.ActivityEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActivityEvent, error)
}
