package service

import (
	"context"

	"github.com/google/uuid"

	"notesync/internal/entity"
	"notesync/internal/repository/specification"
	"notesync/internal/repository/unitofwork"
	"notesync/pkg/view"
)

// IViewService computes the list payloads the client renders. The same
// builders serve HTTP reads and the push pipeline so both always agree.
type IViewService interface {
	ComputeNotebooks(ctx context.Context, userId uuid.UUID, section view.Section) ([]*view.Notebook, error)
	ComputeNotes(ctx context.Context, userId uuid.UUID, key view.Key) ([]*view.Note, error)
}

type viewService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewViewService(uowFactory unitofwork.RepositoryFactory) IViewService {
	return &viewService{
		uowFactory: uowFactory,
	}
}

func (s *viewService) ComputeNotebooks(ctx context.Context, userId uuid.UUID, section view.Section) ([]*view.Notebook, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebooks, err := uow.NotebookRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.BySection{Section: section},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{Limit: view.MaxViewItems},
	)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(notebooks))
	for i, nb := range notebooks {
		ids[i] = nb.Id
	}
	counts, err := uow.NoteRepository().CountByNotebook(ctx, userId, ids)
	if err != nil {
		return nil, err
	}

	result := make([]*view.Notebook, len(notebooks))
	for i, nb := range notebooks {
		result[i] = &view.Notebook{
			Id:        nb.Id,
			Name:      nb.Name,
			Section:   nb.Section,
			NoteCount: counts[nb.Id],
			CreatedAt: nb.CreatedAt,
		}
	}
	return result, nil
}

func (s *viewService) ComputeNotes(ctx context.Context, userId uuid.UUID, key view.Key) ([]*view.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Limit{Limit: view.MaxViewItems},
	}

	switch {
	case key.Section == view.SectionFavorites:
		specs = append(specs, specification.IsFavorite{})
	case key.Section == view.SectionLocked:
		specs = append(specs, specification.IsLocked{})
	case key.NotebookId != uuid.Nil:
		specs = append(specs,
			specification.BySection{Section: key.Section},
			specification.ByNotebookID{NotebookID: key.NotebookId},
		)
	default:
		specs = append(specs,
			specification.BySection{Section: key.Section},
			specification.WithoutNotebook{},
		)
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	return s.resolveNotebookRefs(ctx, uow, userId, notes)
}

// resolveNotebookRefs populates each note's notebook reference with its name,
// matching the shape the web client has always consumed.
func (s *viewService) resolveNotebookRefs(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, notes []*entity.Note) ([]*view.Note, error) {
	names := make(map[uuid.UUID]string)
	for _, n := range notes {
		if n.NotebookId == nil {
			continue
		}
		if _, seen := names[*n.NotebookId]; seen {
			continue
		}
		nb, err := uow.NotebookRepository().FindOne(ctx,
			specification.ByID{ID: *n.NotebookId},
			specification.OwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if nb != nil {
			names[*n.NotebookId] = nb.Name
		}
	}

	result := make([]*view.Note, len(notes))
	for i, n := range notes {
		var ref *view.NotebookRef
		if n.NotebookId != nil {
			if name, ok := names[*n.NotebookId]; ok {
				ref = &view.NotebookRef{Id: *n.NotebookId, Name: name}
			}
		}
		result[i] = &view.Note{
			Id:         n.Id,
			Notebook:   ref,
			Section:    n.Section,
			Content:    n.Content,
			IsChecked:  n.IsChecked,
			IsFavorite: n.IsFavorite,
			IsLocked:   n.IsLocked,
			CreatedAt:  n.CreatedAt,
			UpdatedAt:  n.UpdatedAt,
		}
	}
	return result, nil
}
