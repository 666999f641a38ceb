package bootstrap

import (
	"context"
	"log"
	"time"

	"mentorlink-be/internal/config"
	"mentorlink-be/internal/controller"
	"mentorlink-be/internal/handler"
	"mentorlink-be/internal/pkg/logger"
	"mentorlink-be/internal/pkg/mailer"
	"mentorlink-be/internal/repository/implementation"
	"mentorlink-be/internal/repository/memory"
	"mentorlink-be/internal/repository/unitofwork"
	"mentorlink-be/internal/service"
	"mentorlink-be/internal/websocket"
	"mentorlink-be/pkg/embedding"
	"mentorlink-be/pkg/gist"
	"mentorlink-be/pkg/llm/factory"

	pktNats "mentorlink-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	MatchController   controller.IMatchController
	SessionController controller.ISessionController

	// Background Services (Exposed for main.go to run)
	PipelineService service.IPipelineService

	// WebSockets & Signaling
	SignalingHandler *handler.SignalingHandler
	WebSocketHub     *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// LLM Provider for transcript summarization
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	summarizer := gist.NewSummarizer(llmProvider)

	// In-process embedding cache fronting the durable pgvector store
	embeddingCache := memory.NewEmbeddingCache(time.Duration(cfg.Matching.EmbeddingCacheMin) * time.Minute)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
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

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/signaling.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.SessionEndTopic)
	pipelineService := service.NewPipelineService(
		pubSub,
		cfg.Keys.SessionEndTopic,
		implementation.NewSessionRepository(db),
		implementation.NewSessionRequestRepository(db),
		implementation.NewMessageRepository(db),
		summarizer,
	)

	matchService := service.NewMatchService(
		uowFactory,
		embeddingProvider,
		embeddingCache,
		emailService,
		sysLogger,
		cfg.Matching.TopN,
	)
	sessionService := service.NewSessionService(uowFactory, publisherService, natsPub, sysLogger)

	// Session-ended fan-out back to connected peers
	notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}

	signalingHandler := handler.NewSignalingHandler(wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		MatchController:   controller.NewMatchController(matchService),
		SessionController: controller.NewSessionController(sessionService),
		PipelineService:   pipelineService,
		SignalingHandler:  signalingHandler,
		WebSocketHub:      wsHub,
	}
}
