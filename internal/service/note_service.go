package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"notesync/internal/dto"
	"notesync/internal/entity"
	"notesync/internal/pkg/serverutils"
	"notesync/internal/repository/specification"
	"notesync/internal/repository/unitofwork"
	"notesync/pkg/view"
)

type INoteService interface {
	List(ctx context.Context, userId uuid.UUID, section view.Section, notebookId *uuid.UUID) ([]*view.Note, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*view.Note, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*view.Note, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	ToggleFavorite(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*view.Note, error)
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	viewService      IViewService
	publisherService IPublisherService
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	viewService IViewService,
	publisherService IPublisherService,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		viewService:      viewService,
		publisherService: publisherService,
	}
}

// noteViewKeys lists every view a note currently appears in, plus the
// notebook list whose counts it contributes to.
func noteViewKeys(n *entity.Note) []view.Key {
	keys := make([]view.Key, 0, 4)
	if n.NotebookId != nil {
		keys = append(keys,
			view.NotesKey(n.Section, *n.NotebookId),
			view.NotebookListKey(n.Section),
		)
	} else {
		keys = append(keys, view.NotebookListKey(n.Section))
	}
	if n.IsFavorite {
		keys = append(keys, view.NotebookListKey(view.SectionFavorites))
	}
	if n.IsLocked {
		keys = append(keys, view.NotebookListKey(view.SectionLocked))
	}
	// A locked-section note's home view and its locked projection coincide.
	return mergeKeys(keys)
}

func mergeKeys(groups ...[]view.Key) []view.Key {
	seen := make(map[view.Key]struct{})
	merged := make([]view.Key, 0)
	for _, group := range groups {
		for _, key := range group {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, key)
		}
	}
	return merged
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID, section view.Section, notebookId *uuid.UUID) ([]*view.Note, error) {
	key := view.NotebookListKey(section)
	if notebookId != nil {
		if !section.HasNotebooks() {
			return nil, serverutils.BadRequest("Invalid section")
		}
		key = view.NotesKey(section, *notebookId)
	} else if section != view.SectionFavorites && section != view.SectionLocked {
		return nil, serverutils.BadRequest("Invalid section")
	}
	return s.viewService.ComputeNotes(ctx, userId, key)
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*view.Note, error) {
	if !view.ValidNoteSection(req.Section) {
		return nil, serverutils.BadRequest("Invalid section")
	}
	if req.NotebookId == nil && req.Section.HasNotebooks() {
		return nil, serverutils.BadRequest("A notebook is required for this section")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.NotebookId != nil {
		notebook, err := uow.NotebookRepository().FindOne(ctx,
			specification.ByID{ID: *req.NotebookId},
			specification.OwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if notebook == nil {
			return nil, serverutils.NotFound("Notebook not found")
		}
		if notebook.Section != req.Section {
			return nil, serverutils.BadRequest("Notebook belongs to a different section")
		}
	}

	now := time.Now()
	note := entity.Note{
		Id:         uuid.New(),
		UserId:     userId,
		NotebookId: req.NotebookId,
		Section:    req.Section,
		Content:    req.Content,
		IsChecked:  req.IsChecked,
		IsLocked:   req.IsLocked || req.Section == view.SectionLocked,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	_ = s.publisherService.PublishViewRefresh(userId, noteViewKeys(&note)...)

	return s.present(ctx, uow, userId, &note)
}

func (s *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*view.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, serverutils.NotFound("Note not found")
	}

	before := *note
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.IsChecked != nil {
		note.IsChecked = *req.IsChecked
	}
	if req.IsFavorite != nil {
		note.IsFavorite = *req.IsFavorite
	}
	if req.IsLocked != nil {
		note.IsLocked = *req.IsLocked
	}
	note.UpdatedAt = time.Now()

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	_ = s.publisherService.PublishViewRefresh(userId,
		mergeKeys(noteViewKeys(&before), noteViewKeys(note))...)

	return s.present(ctx, uow, userId, note)
}

func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return serverutils.NotFound("Note not found")
	}

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return err
	}

	_ = s.publisherService.PublishViewRefresh(userId, noteViewKeys(note)...)
	return nil
}

func (s *noteService) ToggleFavorite(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*view.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, serverutils.NotFound("Note not found")
	}

	before := *note
	note.IsFavorite = !note.IsFavorite
	note.UpdatedAt = time.Now()
	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	// The favorites view changes on both directions of the toggle.
	_ = s.publisherService.PublishViewRefresh(userId,
		mergeKeys(noteViewKeys(&before), noteViewKeys(note),
			[]view.Key{view.NotebookListKey(view.SectionFavorites)})...)

	return s.present(ctx, uow, userId, note)
}

func (s *noteService) present(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, note *entity.Note) (*view.Note, error) {
	var ref *view.NotebookRef
	if note.NotebookId != nil {
		notebook, err := uow.NotebookRepository().FindOne(ctx,
			specification.ByID{ID: *note.NotebookId},
			specification.OwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if notebook != nil {
			ref = &view.NotebookRef{Id: notebook.Id, Name: notebook.Name}
		}
	}

	return &view.Note{
		Id:         note.Id,
		Notebook:   ref,
		Section:    note.Section,
		Content:    note.Content,
		IsChecked:  note.IsChecked,
		IsFavorite: note.IsFavorite,
		IsLocked:   note.IsLocked,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}, nil
}
