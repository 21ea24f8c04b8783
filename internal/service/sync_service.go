package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"notesync/internal/dto"
	"notesync/internal/pkg/logger"
	"notesync/pkg/view"
)

// Broadcaster delivers a push payload to every connection a user has open.
type Broadcaster interface {
	Send(userId uuid.UUID, payload []byte)
}

// ISyncService drains the view-refresh queue: for every key it recomputes the
// full list from the database and broadcasts it. Clients never patch lists
// locally; this pipeline is the single source of list state.
type ISyncService interface {
	Consume(ctx context.Context) error
}

type syncService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	viewService IViewService
	broadcaster Broadcaster
	log         logger.ILogger
}

func NewSyncService(
	pubSub *gochannel.GoChannel,
	topicName string,
	viewService IViewService,
	broadcaster Broadcaster,
	log logger.ILogger,
) ISyncService {
	return &syncService{
		pubSub:      pubSub,
		topicName:   topicName,
		viewService: viewService,
		broadcaster: broadcaster,
		log:         log,
	}
}

func (s *syncService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *syncService) processMessage(ctx context.Context, msg *message.Message) {
	var refresh dto.ViewRefresh
	if err := json.Unmarshal(msg.Payload, &refresh); err != nil {
		s.log.Error("sync", "Failed to unmarshal view refresh", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	for _, key := range refresh.Keys {
		if err := s.refreshView(ctx, refresh.UserId, key); err != nil {
			s.log.Error("sync", "Failed to refresh view", map[string]interface{}{
				"key":   key.String(),
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}

func (s *syncService) refreshView(ctx context.Context, userId uuid.UUID, key view.Key) error {
	var envelope view.Envelope

	if key.Section.HasNotebooks() && key.NotebookId == uuid.Nil {
		notebooks, err := s.viewService.ComputeNotebooks(ctx, userId, key.Section)
		if err != nil {
			return err
		}
		payload := view.NotebooksUpdated{
			Section:   key.Section,
			Notebooks: make([]view.Notebook, len(notebooks)),
		}
		for i, nb := range notebooks {
			payload.Notebooks[i] = *nb
		}
		envelope = view.Envelope{Event: view.EventNotebooksUpdated, Data: payload}
	} else {
		notes, err := s.viewService.ComputeNotes(ctx, userId, key)
		if err != nil {
			return err
		}
		payload := view.NotesUpdated{
			Section: key.Section,
			Notes:   make([]view.Note, len(notes)),
		}
		if key.NotebookId != uuid.Nil {
			id := key.NotebookId
			payload.NotebookId = &id
		}
		for i, n := range notes {
			payload.Notes[i] = *n
		}
		envelope = view.Envelope{Event: view.EventNotesUpdated, Data: payload}
	}

	raw, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	s.broadcaster.Send(userId, raw)
	return nil
}
