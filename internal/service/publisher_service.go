package service

import (
	"context"
	"encoding/json"

	"ai-style-review-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	PublishAcceptedSuggestion(ctx context.Context, msg dto.PublishAcceptedSuggestionMessage) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (ps *publisherService) PublishAcceptedSuggestion(ctx context.Context, msg dto.PublishAcceptedSuggestionMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	m := message.NewMessage(watermill.NewUUID(), payload)
	m.SetContext(ctx)
	return ps.publisher.Publish(ps.topicName, m)
}
