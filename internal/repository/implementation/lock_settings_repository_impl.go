package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"notesync/internal/entity"
	"notesync/internal/mapper"
	"notesync/internal/model"
	"notesync/internal/repository/contract"
)

type LockSettingsRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LockSettingsMapper
}

func NewLockSettingsRepository(db *gorm.DB) contract.LockSettingsRepository {
	return &LockSettingsRepositoryImpl{
		db:     db,
		mapper: mapper.NewLockSettingsMapper(),
	}
}

func (r *LockSettingsRepositoryImpl) Upsert(ctx context.Context, settings *entity.LockSettings) error {
	m := r.mapper.ToModel(settings)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"passphrase_hash", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*settings = *r.mapper.ToEntity(m)
	return nil
}

func (r *LockSettingsRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.LockSettings, error) {
	var m model.LockSettings
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
