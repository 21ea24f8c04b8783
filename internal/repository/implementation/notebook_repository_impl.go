package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"notesync/internal/entity"
	"notesync/internal/mapper"
	"notesync/internal/model"
	"notesync/internal/repository/contract"
	"notesync/internal/repository/specification"
)

type NotebookRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NotebookMapper
}

func NewNotebookRepository(db *gorm.DB) contract.NotebookRepository {
	return &NotebookRepositoryImpl{
		db:     db,
		mapper: mapper.NewNotebookMapper(),
	}
}

func (r *NotebookRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NotebookRepositoryImpl) Create(ctx context.Context, notebook *entity.Notebook) error {
	m := r.mapper.ToModel(notebook)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*notebook = *r.mapper.ToEntity(m)
	return nil
}

func (r *NotebookRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Notebook{}, id).Error
}

func (r *NotebookRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Notebook, error) {
	var m model.Notebook
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NotebookRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notebook, error) {
	var models []*model.Notebook
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
