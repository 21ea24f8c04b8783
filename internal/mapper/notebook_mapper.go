package mapper

import (
	"notesync/internal/entity"
	"notesync/internal/model"
	"notesync/pkg/view"
)

type NotebookMapper struct{}

func NewNotebookMapper() *NotebookMapper {
	return &NotebookMapper{}
}

func (m *NotebookMapper) ToEntity(n *model.Notebook) *entity.Notebook {
	if n == nil {
		return nil
	}

	return &entity.Notebook{
		Id:        n.Id,
		UserId:    n.UserId,
		Name:      n.Name,
		Section:   view.Section(n.Section),
		CreatedAt: n.CreatedAt,
	}
}

func (m *NotebookMapper) ToModel(n *entity.Notebook) *model.Notebook {
	if n == nil {
		return nil
	}

	return &model.Notebook{
		Id:        n.Id,
		UserId:    n.UserId,
		Name:      n.Name,
		Section:   string(n.Section),
		CreatedAt: n.CreatedAt,
	}
}

func (m *NotebookMapper) ToEntities(notebooks []*model.Notebook) []*entity.Notebook {
	entities := make([]*entity.Notebook, len(notebooks))
	for i, n := range notebooks {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
