package service

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"notesync/internal/dto"
	"notesync/pkg/view"
)

type IPublisherService interface {
	PublishViewRefresh(userId uuid.UUID, keys ...view.Key) error
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewPublisherService(pubSub *gochannel.GoChannel, topicName string) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (s *publisherService) PublishViewRefresh(userId uuid.UUID, keys ...view.Key) error {
	if len(keys) == 0 {
		return nil
	}

	payload, err := json.Marshal(&dto.ViewRefresh{
		UserId: userId,
		Keys:   keys,
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return s.pubSub.Publish(s.topicName, msg)
}
