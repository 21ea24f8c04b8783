package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID  `gorm:"type:uuid;not null;index"`
	NotebookId *uuid.UUID `gorm:"type:uuid;index"`
	Section    string     `gorm:"type:varchar(16);not null;index"`
	Content    string     `gorm:"type:text;not null"`
	IsChecked  bool       `gorm:"not null;default:false"`
	IsFavorite bool       `gorm:"not null;default:false;index"`
	IsLocked   bool       `gorm:"not null;default:false;index"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
