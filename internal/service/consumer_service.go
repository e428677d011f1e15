package service

import (
	"context"
	"encoding/json"
	"errors"

	"ai-style-review-be/internal/dto"
	"ai-style-review-be/internal/pkg/logger"
	"ai-style-review-be/pkg/retrieval"
	"ai-style-review-be/pkg/rules"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService indexes accepted suggestions into the reference store.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	indexer    retrieval.Indexer
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	indexer retrieval.Indexer,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		indexer:    indexer,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// AcceptedExample turns an accepted rewrite into a reference: the original
// sentence is what future queries match, the revision is the answer.
func AcceptedExample(payload dto.PublishAcceptedSuggestionMessage) retrieval.Example {
	guidance := payload.Guidance
	if guidance == "" {
		guidance = "Accepted rewrite: " + payload.Revised
	}
	return retrieval.Example{
		Category:    rules.Category(payload.Category),
		Replacement: payload.Revised,
		Example:     payload.Original,
		Guidance:    guidance,
	}
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishAcceptedSuggestionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal accepted suggestion", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // a malformed payload never becomes valid
		return
	}

	err := cs.indexer.Index(ctx, AcceptedExample(payload))
	if errors.Is(err, retrieval.ErrInvalidExample) {
		cs.logger.Warn("CONSUMER", "Skipping invalid accepted suggestion", map[string]interface{}{
			"message_id": msg.UUID,
			"category":   payload.Category,
		})
		msg.Ack()
		return
	}
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to index accepted suggestion", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("CONSUMER", "Indexed accepted suggestion", map[string]interface{}{
		"message_id": msg.UUID,
		"category":   payload.Category,
	})
	msg.Ack()
}
