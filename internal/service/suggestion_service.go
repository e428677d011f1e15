package service

import (
	"context"
	"fmt"
	"time"

	"ai-style-review-be/internal/dto"
	"ai-style-review-be/internal/pkg/logger"
	"ai-style-review-be/pkg/events"
	"ai-style-review-be/pkg/quota"
	"ai-style-review-be/pkg/suggestion"
)

type ISuggestionService interface {
	Suggest(ctx context.Context, req *dto.SuggestionRequest) *dto.SuggestionResponse
	Accept(ctx context.Context, req *dto.AcceptSuggestionRequest) error
	Quota(ctx context.Context) (*dto.QuotaResponse, error)
}

type suggestionService struct {
	resolver         *suggestion.Resolver
	tracker          quota.Tracker
	publisherService IPublisherService
	eventPublisher   events.Publisher // optional
	logger           logger.ILogger
}

func NewSuggestionService(
	resolver *suggestion.Resolver,
	tracker quota.Tracker,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	log logger.ILogger,
) ISuggestionService {
	return &suggestionService{
		resolver:         resolver,
		tracker:          tracker,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

// Suggest never fails; degraded tiers show up in the method field.
func (s *suggestionService) Suggest(ctx context.Context, req *dto.SuggestionRequest) *dto.SuggestionResponse {
	res := s.resolver.Resolve(ctx, req.Sentence.ToSentence(), req.Issue.ToIssue())
	return &res
}

func (s *suggestionService) Accept(ctx context.Context, req *dto.AcceptSuggestionRequest) error {
	msg := dto.PublishAcceptedSuggestionMessage{
		Category: req.Category,
		Original: req.Original,
		Revised:  req.Revised,
		Guidance: req.Guidance,
	}
	if err := s.publisherService.PublishAcceptedSuggestion(ctx, msg); err != nil {
		return fmt.Errorf("publish accepted suggestion: %w", err)
	}

	if s.eventPublisher != nil {
		event := events.SuggestionAcceptedEvent(req.Category, req.Original, req.Revised, req.Guidance, time.Now())
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("SUGGESTION", "Failed to publish accepted event", map[string]interface{}{
				"category": req.Category,
				"error":    err.Error(),
			})
		}
	}
	return nil
}

func (s *suggestionService) Quota(ctx context.Context) (*dto.QuotaResponse, error) {
	state, err := s.tracker.State(ctx)
	if err != nil {
		return nil, fmt.Errorf("read quota: %w", err)
	}
	return &state, nil
}
