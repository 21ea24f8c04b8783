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
	"notesync/pkg/events"
	pkgNats "notesync/pkg/nats"
	"notesync/pkg/view"
)

type INotebookService interface {
	GetAll(ctx context.Context, userId uuid.UUID, section view.Section) ([]*view.Notebook, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNotebookRequest) (*view.Notebook, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type notebookService struct {
	uowFactory       unitofwork.RepositoryFactory
	viewService      IViewService
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
}

func NewNotebookService(
	uowFactory unitofwork.RepositoryFactory,
	viewService IViewService,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
) INotebookService {
	return &notebookService{
		uowFactory:       uowFactory,
		viewService:      viewService,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (s *notebookService) GetAll(ctx context.Context, userId uuid.UUID, section view.Section) ([]*view.Notebook, error) {
	if !view.ValidNotebookSection(section) {
		return nil, serverutils.BadRequest("Invalid section")
	}
	return s.viewService.ComputeNotebooks(ctx, userId, section)
}

func (s *notebookService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNotebookRequest) (*view.Notebook, error) {
	if !view.ValidNotebookSection(req.Section) {
		return nil, serverutils.BadRequest("Invalid section")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	notebook := entity.Notebook{
		Id:        uuid.New(),
		UserId:    userId,
		Name:      req.Name,
		Section:   req.Section,
		CreatedAt: time.Now(),
	}
	if err := uow.NotebookRepository().Create(ctx, &notebook); err != nil {
		return nil, err
	}

	_ = s.publisherService.PublishViewRefresh(userId, view.NotebookListKey(req.Section))

	return &view.Notebook{
		Id:        notebook.Id,
		Name:      notebook.Name,
		Section:   notebook.Section,
		NoteCount: 0,
		CreatedAt: notebook.CreatedAt,
	}, nil
}

// Delete removes a notebook and all of its notes in one transaction, then
// refreshes every view the cascade can touch.
func (s *notebookService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if notebook == nil {
		return serverutils.NotFound("Notebook not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.NoteRepository().DeleteAllByNotebookId(ctx, userId, id); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.NotebookRepository().Delete(ctx, id); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	// Deleted notes may have appeared in the favorites and locked views.
	_ = s.publisherService.PublishViewRefresh(userId,
		view.NotebookListKey(notebook.Section),
		view.NotesKey(notebook.Section, id),
		view.NotebookListKey(view.SectionFavorites),
		view.NotebookListKey(view.SectionLocked),
	)

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, events.NewBaseEvent(events.TypeNotebookDeleted, map[string]interface{}{
			"userId":   userId.String(),
			"name":     notebook.Name,
			"section":  string(notebook.Section),
			"notebook": notebook.Id.String(),
		}))
	}

	return nil
}
