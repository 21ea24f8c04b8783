package implementation

import (
	"context"

	"gorm.io/gorm"

	"notesync/internal/entity"
	"notesync/internal/mapper"
	"notesync/internal/model"
	"notesync/internal/repository/contract"
	"notesync/internal/repository/specification"
)

type ActivityEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ActivityEventMapper
}

func NewActivityEventRepository(db *gorm.DB) contract.ActivityEventRepository {
	return &ActivityEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewActivityEventMapper(),
	}
}

func (r *ActivityEventRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ActivityEventRepositoryImpl) Create(ctx context.Context, event *entity.ActivityEvent) error {
	m := r.mapper.ToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.ToEntity(m)
	return nil
}

func (r *ActivityEventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActivityEvent, error) {
	var models []*model.ActivityEvent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
