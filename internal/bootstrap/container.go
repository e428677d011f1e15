package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	"ai-style-review-be/internal/config"
	"ai-style-review-be/internal/controller"
	"ai-style-review-be/internal/pkg/logger"
	"ai-style-review-be/internal/repository/implementation"
	"ai-style-review-be/internal/service"
	"ai-style-review-be/internal/websocket"
	"ai-style-review-be/pkg/database"
	"ai-style-review-be/pkg/embedding"
	"ai-style-review-be/pkg/events"
	"ai-style-review-be/pkg/llm/factory"
	"ai-style-review-be/pkg/metrics"
	pktNats "ai-style-review-be/pkg/nats"
	"ai-style-review-be/pkg/quota"
	"ai-style-review-be/pkg/retrieval"
	"ai-style-review-be/pkg/rules"
	"ai-style-review-be/pkg/segmenter"
	"ai-style-review-be/pkg/suggestion"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	Logger  logger.ILogger
	Metrics *metrics.Metrics
	RuleIDs []string

	AnalysisController controller.IAnalysisController
	LiveHandler        *websocket.Handler
	Hub                *websocket.Hub

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	closers []func() error
}

func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{}
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	c.Logger = sysLogger
	c.Metrics = metrics.New("style")

	// 1. Rules
	engine, err := NewRuleEngine(cfg.Rules, sysLogger, c.Metrics.RuleFailed)
	if err != nil {
		return nil, err
	}
	c.RuleIDs = engine.RuleIDs()

	// 2. Quota
	tracker := c.newQuotaTracker(cfg)

	// 3. Remote generation
	generator, err := factory.NewLLMProvider(LLMParams(cfg))
	if err != nil {
		return nil, fmt.Errorf("init llm provider: %w", err)
	}
	if generator == nil {
		sysLogger.Info("BOOTSTRAP", "Remote generation disabled", nil)
	} else {
		sysLogger.Info("BOOTSTRAP", "Using LLM provider", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
			"model":    cfg.Ai.LLMModel,
		})
	}

	// 4. Reference store
	store, err := c.newReferenceStore(cfg)
	if err != nil {
		return nil, err
	}

	// 5. Event bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, pubSub.Close)

	var notifier suggestion.Notifier
	var eventPublisher events.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS, suggestion events disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			notifier = events.NewSuggestionNotifier(natsPub, sysLogger)
			eventPublisher = natsPub
			c.closers = append(c.closers, func() error { natsPub.Close(); return nil })
		}
	}

	// 6. Services
	resolver := suggestion.NewResolver(suggestion.Options{
		Generator: generator,
		Retriever: store,
		Quota:     tracker,
		Notifier:  notifier,
		Metrics:   c.Metrics,
		Logger:    sysLogger,
		Timeout:   cfg.Ai.Timeout,
		TopK:      cfg.Retrieval.TopK,
	})

	publisherService := service.NewPublisherService(cfg.Retrieval.AcceptedTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Retrieval.AcceptedTopic, store, sysLogger)

	analysisService := service.NewAnalysisService(
		segmenter.New(segmenter.Options{}),
		engine,
		c.Metrics,
		sysLogger,
		cfg.App.MaxConcurrentBlock,
	)
	suggestionService := service.NewSuggestionService(resolver, tracker, publisherService, eventPublisher, sysLogger)

	// 7. Controllers
	c.AnalysisController = controller.NewAnalysisController(analysisService, suggestionService)

	// 8. Live sessions end when the container closes.
	liveCtx, stopLive := context.WithCancel(context.Background())
	c.Hub = websocket.NewHub(c.Metrics, sysLogger)
	go c.Hub.Run(liveCtx)
	c.LiveHandler = websocket.NewHandler(liveCtx, c.Hub, analysisService, suggestionService, sysLogger)
	c.closers = append(c.closers, func() error { stopLive(); return nil })
	return c, nil
}

// NewRuleEngine builds the configured rule set; the CLI shares it.
func NewRuleEngine(cfg config.RulesConfig, log logger.ILogger, onFailure rules.FailureHook) (*rules.Engine, error) {
	var glossary *rules.Glossary
	if cfg.GlossaryPath != "" {
		g, err := rules.LoadGlossary(cfg.GlossaryPath)
		if err != nil {
			return nil, fmt.Errorf("load glossary: %w", err)
		}
		glossary = g
	}
	registry, err := rules.NewRegistryFromConfig(cfg.Enabled, rules.Settings{
		MaxSentenceWords: cfg.MaxSentenceWords,
		Glossary:         glossary,
	})
	if err != nil {
		return nil, fmt.Errorf("register rules: %w", err)
	}
	return rules.NewEngine(registry, log, onFailure), nil
}

func LLMParams(cfg *config.Config) factory.Params {
	p := factory.Params{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.Ai.LLMBaseURL,
		Timeout:  cfg.Ai.Timeout,
	}
	switch cfg.Ai.LLMProvider {
	case factory.ProviderHuggingFace:
		p.APIKey = cfg.Keys.HuggingFace
	case factory.ProviderGemini:
		p.APIKey = cfg.Keys.GoogleGemini
	case factory.ProviderAnthropic:
		p.APIKey = cfg.Keys.Anthropic
	case factory.ProviderOllama:
		if p.BaseURL == "" {
			p.BaseURL = cfg.Ai.OllamaBaseURL
		}
	}
	return p
}

func EmbeddingParams(cfg *config.Config) embedding.Params {
	p := embedding.Params{Provider: cfg.Ai.EmbeddingProvider}
	switch cfg.Ai.EmbeddingProvider {
	case embedding.ProviderOllama:
		p.BaseURL = cfg.Ai.OllamaBaseURL
		p.Model = cfg.Ai.OllamaModel
	case embedding.ProviderGemini:
		p.APIKey = cfg.Keys.GoogleGemini
	case embedding.ProviderJina:
		p.APIKey = cfg.Keys.Jina
	}
	return p
}

func (c *Container) newQuotaTracker(cfg *config.Config) quota.Tracker {
	if cfg.Quota.Backend != "redis" {
		return quota.NewMemoryTracker(cfg.Quota.DailyCapacity, nil)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		c.Logger.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{
			"error": err.Error(),
		})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		// The tracker fails closed, so generation stays off until Redis answers.
		c.Logger.Warn("BOOTSTRAP", "Failed to connect to Redis", map[string]interface{}{
			"error": err.Error(),
		})
	}
	c.closers = append(c.closers, rdb.Close)
	return quota.NewRedisTracker(rdb, cfg.Quota.DailyCapacity, cfg.Quota.KeyPrefix, nil, c.Logger)
}

func (c *Container) newReferenceStore(cfg *config.Config) (retrieval.Store, error) {
	if cfg.Retrieval.Backend == "pgvector" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			return nil, fmt.Errorf("connect reference database: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			c.closers = append(c.closers, sqlDB.Close)
		}
		embedder, err := embedding.NewEmbeddingProvider(EmbeddingParams(cfg))
		if err != nil {
			return nil, fmt.Errorf("init embedding provider: %w", err)
		}
		repo := implementation.NewReferenceExampleRepository(db)
		return retrieval.NewVectorStore(repo, embedder, cfg.Retrieval.MinScore), nil
	}

	examples, err := retrieval.LoadSeed(cfg.Retrieval.SeedPath)
	if errors.Is(err, os.ErrNotExist) {
		c.Logger.Warn("BOOTSTRAP", "Reference seed file not found, starting empty", map[string]interface{}{
			"path": cfg.Retrieval.SeedPath,
		})
	} else if err != nil {
		return nil, fmt.Errorf("load reference seed: %w", err)
	}
	c.Logger.Info("BOOTSTRAP", "Using in-memory reference store", map[string]interface{}{
		"examples": len(examples),
	})
	return retrieval.NewMemoryStore(examples...), nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	errs = append(errs, c.Logger.Sync())
	return errors.Join(errs...)
}
