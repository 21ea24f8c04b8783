package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"notesync/internal/dto"
	"notesync/internal/entity"
	"notesync/internal/pkg/logger"
	"notesync/internal/repository/specification"
	"notesync/internal/repository/unitofwork"
	"notesync/pkg/events"
	pkgNats "notesync/pkg/nats"
)

const activityFeedLimit = 50

// IActivityService records the audit trail of account-level events flowing
// over the NATS bus and serves the recent-activity feed.
type IActivityService interface {
	Start(subscriber *pkgNats.Subscriber) error
	GetRecent(ctx context.Context, userId uuid.UUID) ([]*dto.ActivityResponse, error)
}

type activityService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewActivityService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IActivityService {
	return &activityService{
		uowFactory: uowFactory,
		log:        log,
	}
}

func (s *activityService) Start(subscriber *pkgNats.Subscriber) error {
	return subscriber.Subscribe("activity.>", "activity-recorder", s.handleEvent)
}

func (s *activityService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	rawUserId, _ := payload["userId"].(string)
	userId, err := uuid.Parse(rawUserId)
	if err != nil {
		// Events without a parseable user are dropped, retrying cannot fix them.
		s.log.Warn("activity", "Dropping event without user id", map[string]interface{}{
			"type": event.EventType(),
		})
		return nil
	}

	metadata := make(map[string]interface{}, len(payload))
	for k, v := range payload {
		if k == "userId" {
			continue
		}
		metadata[k] = v
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	record := &entity.ActivityEvent{
		Id:        uuid.New(),
		UserId:    userId,
		TypeCode:  event.EventType(),
		Metadata:  metadata,
		CreatedAt: event.Timestamp(),
	}
	if err := uow.ActivityEventRepository().Create(ctx, record); err != nil {
		return err
	}

	s.log.Info("activity", "Recorded event", map[string]interface{}{
		"type": event.EventType(),
		"user": userId.String(),
	})
	return nil
}

func (s *activityService) GetRecent(ctx context.Context, userId uuid.UUID) ([]*dto.ActivityResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	records, err := uow.ActivityEventRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{Limit: activityFeedLimit},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ActivityResponse, len(records))
	for i, rec := range records {
		result[i] = &dto.ActivityResponse{
			Id:        rec.Id,
			Type:      rec.TypeCode,
			Metadata:  rec.Metadata,
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		}
	}
	return result, nil
}
