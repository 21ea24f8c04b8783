package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"notesync/internal/dto"
	"notesync/internal/entity"
	"notesync/internal/repository/unitofwork"
	"notesync/pkg/events"
	pkgNats "notesync/pkg/nats"
)

type ILockService interface {
	SetPassword(ctx context.Context, userId uuid.UUID, req *dto.SetLockPasswordRequest) error
	VerifyPassword(ctx context.Context, userId uuid.UUID, req *dto.VerifyLockPasswordRequest) (*dto.VerifyLockPasswordResponse, error)
	CheckSetup(ctx context.Context, userId uuid.UUID) (*dto.LockSetupResponse, error)
}

type lockService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pkgNats.Publisher
}

func NewLockService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pkgNats.Publisher) ILockService {
	return &lockService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *lockService) SetPassword(ctx context.Context, userId uuid.UUID, req *dto.SetLockPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	settings := &entity.LockSettings{
		Id:             uuid.New(),
		UserId:         userId,
		PassphraseHash: string(hash),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uow.LockSettingsRepository().Upsert(ctx, settings); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, events.NewBaseEvent(events.TypeLockConfigured, map[string]interface{}{
			"userId": userId.String(),
		}))
	}

	return nil
}

func (s *lockService) VerifyPassword(ctx context.Context, userId uuid.UUID, req *dto.VerifyLockPasswordRequest) (*dto.VerifyLockPasswordResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.LockSettingsRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &dto.VerifyLockPasswordResponse{Success: false}, nil
	}

	err = bcrypt.CompareHashAndPassword([]byte(settings.PassphraseHash), []byte(req.Password))
	return &dto.VerifyLockPasswordResponse{Success: err == nil}, nil
}

func (s *lockService) CheckSetup(ctx context.Context, userId uuid.UUID) (*dto.LockSetupResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.LockSettingsRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &dto.LockSetupResponse{HasPassword: settings != nil}, nil
}
