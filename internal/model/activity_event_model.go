package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ActivityEvent struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	TypeCode  string         `gorm:"type:varchar(64);not null;index"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
}

func (ActivityEvent) TableName() string {
	return "activity_events"
}
