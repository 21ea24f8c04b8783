package model

import (
	"time"

	"github.com/google/uuid"
)

type Notebook struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Section   string    `gorm:"type:varchar(16);not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Notebook) TableName() string {
	return "notebooks"
}
