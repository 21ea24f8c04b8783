package contract

import (
	"context"

	"github.com/google/uuid"

	"notesync/internal/entity"
	"notesync/internal/repository/specification"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByNotebookId(ctx context.Context, userId, notebookId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountByNotebook(ctx context.Context, userId uuid.UUID, notebookIds []uuid.UUID) (map[uuid.UUID]int64, error)
}
