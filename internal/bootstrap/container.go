package bootstrap

import (
	"context"
	"log"

	"parts-assist-be/internal/config"
	"parts-assist-be/internal/controller"
	"parts-assist-be/internal/pkg/logger"
	"parts-assist-be/internal/repository/contract"
	"parts-assist-be/internal/repository/memory"
	"parts-assist-be/internal/repository/redisrepo"
	"parts-assist-be/internal/repository/unitofwork"
	"parts-assist-be/internal/service"
	"parts-assist-be/pkg/embedding"
	"parts-assist-be/pkg/events"
	"parts-assist-be/pkg/llm/factory"

	pktNats "parts-assist-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	CatalogController controller.ICatalogController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbeddingModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// Initialize LLM Provider based on Config
	llmBaseURL := cfg.Ai.LLMBaseURL
	if cfg.Ai.LLMProvider == "ollama" && llmBaseURL == "" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		cfg.Ai.LLMApiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Session Context Store: in-process cache by default, Redis for
	// multi-instance deployments.
	var sessionRepo contract.SessionContextRepository
	if cfg.Session.Store == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionRepo = redisrepo.NewSessionContextRepository(rdb, cfg.Session.ContextTTL)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		sessionRepo = memory.NewSessionContextRepository(cfg.Session.ContextTTL)
		log.Printf("[INFO] Using Session Store: MEMORY (TTL %s)", cfg.Session.ContextTTL)
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedCatalogTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedCatalogTopic,
		uowFactory,
		embeddingProvider,
	)

	resolverService := service.NewContextResolverService(sessionRepo)

	var eventPublisher service.IOrderEventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	chatService := service.NewChatService(
		uowFactory,
		sessionRepo,
		resolverService,
		embeddingProvider,
		llmProvider,
		eventPublisher,
		sysLogger,
		cfg.Ai.RetrievalTopK,
		cfg.Session.HistoryDepth,
	)

	catalogService := service.NewCatalogService(uowFactory, publisherService)

	// Order event audit trail: everything on the bus lands in the log.
	if natsSub != nil {
		err := natsSub.Subscribe("events.>", "parts-assist-order-audit", func(ctx context.Context, event events.Event) error {
			sysLogger.Info("events", "order event received", map[string]interface{}{
				"type":    event.EventType(),
				"payload": event.Payload(),
			})
			return nil
		})
		if err != nil {
			log.Printf("[WARN] Failed to subscribe to order events: %v", err)
		}
	}

	// 5. Controllers
	return &Container{
		ChatController:    controller.NewChatController(chatService, sysLogger),
		CatalogController: controller.NewCatalogController(catalogService),

		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
