package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-style-review-be/internal/dto"
	"ai-style-review-be/internal/pkg/logger"
	"ai-style-review-be/pkg/events"
	"ai-style-review-be/pkg/quota"
	"ai-style-review-be/pkg/retrieval"
	"ai-style-review-be/pkg/rules"
	"ai-style-review-be/pkg/suggestion"
)

const acceptedTopic = "ACCEPTED_SUGGESTION_TEST"

type capturingPublisher struct {
	events []events.Event
	err    error
}

func (p *capturingPublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return p.err
}

type failingPublisherService struct{}

func (failingPublisherService) PublishAcceptedSuggestion(context.Context, dto.PublishAcceptedSuggestionMessage) error {
	return errors.New("bus closed")
}

func newPubSub(t *testing.T) *gochannel.GoChannel {
	t.Helper()
	ps := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = ps.Close() })
	return ps
}

func TestSuggestionService_Suggest(t *testing.T) {
	resolver := suggestion.NewResolver(suggestion.Options{})
	svc := NewSuggestionService(resolver, quota.NewMemoryTracker(5, nil), nil, nil, logger.NewNopLogger())

	res := svc.Suggest(context.Background(), &dto.SuggestionRequest{
		Sentence: dto.SentenceRequest{Index: 3, PlainText: "The report was written by the team."},
		Issue: dto.IssueRequest{
			SentenceIndex: 3,
			RuleId:        rules.PassiveVoiceID,
			Message:       rules.PassiveVoiceMessage("was written"),
		},
	})

	require.NotNil(t, res)
	assert.Equal(t, suggestion.MethodRuleBased, res.Method)
	assert.Contains(t, res.RewrittenText, "team wrote")
	assert.Equal(t, 3, res.Issue.SentenceIndex)
}

func TestSuggestionService_Quota(t *testing.T) {
	tracker := quota.NewMemoryTracker(5, nil)
	require.True(t, tracker.TryConsume(context.Background()))
	svc := NewSuggestionService(suggestion.NewResolver(suggestion.Options{}), tracker, nil, nil, logger.NewNopLogger())

	state, err := svc.Quota(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, state.Used)
	assert.Equal(t, 5, state.Capacity)
}

func TestSuggestionService_AcceptIndexesReference(t *testing.T) {
	ps := newPubSub(t)
	store := retrieval.NewMemoryStore()
	log := logger.NewNopLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, NewConsumerService(ps, acceptedTopic, store, log).Consume(ctx))

	analytics := &capturingPublisher{}
	svc := NewSuggestionService(
		suggestion.NewResolver(suggestion.Options{Retriever: store}),
		quota.NewMemoryTracker(5, nil),
		NewPublisherService(acceptedTopic, ps),
		analytics,
		log,
	)

	err := svc.Accept(ctx, &dto.AcceptSuggestionRequest{
		Category: string(rules.CategoryPassiveVoice),
		Original: "The invoice was approved by finance.",
		Revised:  "Finance approved the invoice.",
		Guidance: "Lead with the team that acted.",
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return store.Len() == 1 }, time.Second, 10*time.Millisecond)
	require.Len(t, analytics.events, 1)
	assert.Equal(t, "SUGGESTION_ACCEPTED", analytics.events[0].EventType())

	snippets, err := store.Retrieve(ctx, retrieval.Query{
		Category: rules.CategoryPassiveVoice,
		Text:     "The budget was approved by finance.",
	})
	require.NoError(t, err)
	require.Len(t, snippets, 1)
	assert.Equal(t, "Lead with the team that acted.", snippets[0].Guidance)
}

func TestSuggestionService_AcceptPublishFailure(t *testing.T) {
	svc := NewSuggestionService(
		suggestion.NewResolver(suggestion.Options{}),
		quota.NewMemoryTracker(5, nil),
		failingPublisherService{},
		nil,
		logger.NewNopLogger(),
	)

	err := svc.Accept(context.Background(), &dto.AcceptSuggestionRequest{
		Category: "wordiness", Original: "in order to", Revised: "to",
	})
	assert.ErrorContains(t, err, "bus closed")
}

func TestAcceptedExample(t *testing.T) {
	ex := AcceptedExample(dto.PublishAcceptedSuggestionMessage{
		Category: "wordiness",
		Original: "We met in order to plan.",
		Revised:  "We met to plan.",
	})

	assert.NoError(t, ex.Validate())
	assert.Equal(t, rules.CategoryWordiness, ex.Category)
	assert.Equal(t, "We met in order to plan.", ex.Example)
	assert.Equal(t, "Accepted rewrite: We met to plan.", ex.Guidance)
}
