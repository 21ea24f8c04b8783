package mapper

import (
	"notesync/internal/entity"
	"notesync/internal/model"
)

type LockSettingsMapper struct{}

func NewLockSettingsMapper() *LockSettingsMapper {
	return &LockSettingsMapper{}
}

func (m *LockSettingsMapper) ToEntity(s *model.LockSettings) *entity.LockSettings {
	if s == nil {
		return nil
	}

	return &entity.LockSettings{
		Id:             s.Id,
		UserId:         s.UserId,
		PassphraseHash: s.PassphraseHash,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (m *LockSettingsMapper) ToModel(s *entity.LockSettings) *model.LockSettings {
	if s == nil {
		return nil
	}

	return &model.LockSettings{
		Id:             s.Id,
		UserId:         s.UserId,
		PassphraseHash: s.PassphraseHash,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
