package contract

import (
	"context"

	"github.com/google/uuid"

	"notesync/internal/entity"
	"notesync/internal/repository/specification"
)

type NotebookRepository interface {
	Create(ctx context.Context, notebook *entity.Notebook) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Notebook, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notebook, error)
}
