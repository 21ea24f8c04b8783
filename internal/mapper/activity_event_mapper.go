package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"notesync/internal/entity"
	"notesync/internal/model"
)

type ActivityEventMapper struct{}

func NewActivityEventMapper() *ActivityEventMapper {
	return &ActivityEventMapper{}
}

func (m *ActivityEventMapper) ToEntity(e *model.ActivityEvent) *entity.ActivityEvent {
	if e == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(e.Metadata) > 0 {
		_ = json.Unmarshal(e.Metadata, &metadata)
	}

	return &entity.ActivityEvent{
		Id:        e.Id,
		UserId:    e.UserId,
		TypeCode:  e.TypeCode,
		Metadata:  metadata,
		CreatedAt: e.CreatedAt,
	}
}

func (m *ActivityEventMapper) ToModel(e *entity.ActivityEvent) *model.ActivityEvent {
	if e == nil {
		return nil
	}

	var metadata datatypes.JSON
	if e.Metadata != nil {
		raw, err := json.Marshal(e.Metadata)
		if err == nil {
			metadata = raw
		}
	}

	return &model.ActivityEvent{
		Id:        e.Id,
		UserId:    e.UserId,
		TypeCode:  e.TypeCode,
		Metadata:  metadata,
		CreatedAt: e.CreatedAt,
	}
}

func (m *ActivityEventMapper) ToEntities(events []*model.ActivityEvent) []*entity.ActivityEvent {
	entities := make([]*entity.ActivityEvent, len(events))
	for i, e := range events {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
