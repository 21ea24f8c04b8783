package model

import (
	"time"

	"github.com/google/uuid"
)

type LockSettings struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	PassphraseHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (LockSettings) TableName() string {
	return "lock_settings"
}
