package mapper

import (
	"notesync/internal/entity"
	"notesync/internal/model"
	"notesync/pkg/view"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	return &entity.Note{
		Id:         n.Id,
		UserId:     n.UserId,
		NotebookId: n.NotebookId,
		Section:    view.Section(n.Section),
		Content:    n.Content,
		IsChecked:  n.IsChecked,
		IsFavorite: n.IsFavorite,
		IsLocked:   n.IsLocked,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	return &model.Note{
		Id:         n.Id,
		UserId:     n.UserId,
		NotebookId: n.NotebookId,
		Section:    string(n.Section),
		Content:    n.Content,
		IsChecked:  n.IsChecked,
		IsFavorite: n.IsFavorite,
		IsLocked:   n.IsLocked,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
