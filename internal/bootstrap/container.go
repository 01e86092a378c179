package bootstrap

import (
	"context"
	"log"
	"time"

	"sales-intel-be/internal/config"
	"sales-intel-be/internal/controller"
	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/memory"
	"sales-intel-be/internal/repository/unitofwork"
	"sales-intel-be/internal/service"
	"sales-intel-be/pkg/agent/fetch"
	"sales-intel-be/pkg/agent/invoke"
	"sales-intel-be/pkg/agent/loader"
	"sales-intel-be/pkg/agent/mode"
	"sales-intel-be/pkg/agent/runlog"
	"sales-intel-be/pkg/cache"
	"sales-intel-be/pkg/embedding"
	"sales-intel-be/pkg/llm/factory"
	pkgNats "sales-intel-be/pkg/nats"
	"sales-intel-be/pkg/usage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AgentController controller.IAgentController

	// Background workers, exposed for main.go to run
	RunRecorder *runlog.Recorder

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// NATS is optional infrastructure: run without it and lose only the
	// cross-service events.
	var eventPub *pkgNats.Publisher
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPub = natsPub
	}
	var runEventPub runlog.EventPublisher
	var usageEventPub usage.EventPublisher
	if eventPub != nil {
		runEventPub = eventPub
		usageEventPub = eventPub
	}

	// 3. Context cache
	cacheTTL := time.Duration(cfg.Agent.ContextCacheTTLSecs) * time.Second
	var contextCache cache.Store
	if cfg.Agent.ContextCacheBackend == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		contextCache = cache.NewRedis(rdb, cacheTTL)
		log.Printf("[INFO] Using context cache: REDIS")
	} else {
		contextCache = cache.NewMemory(cacheTTL, cfg.Agent.ContextCacheCapacity)
		log.Printf("[INFO] Using context cache: MEMORY (ttl=%s cap=%d)", cacheTTL, cfg.Agent.ContextCacheCapacity)
	}

	// 4. AI providers
	embeddingProvider := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	log.Printf("[INFO] Using Embedding Provider: %s (%s)", cfg.Ai.EmbeddingProvider, cfg.Ai.EmbeddingModel)

	llmProvider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.OllamaBaseURL)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 5. Context pipeline
	callFetcher := fetch.NewCallFetcher(uowFactory, contextCache, sysLogger)
	companyFetcher := fetch.NewCompanyFetcher(uowFactory, contextCache, sysLogger)
	historyFetcher := fetch.NewHistoryFetcher(uowFactory, sysLogger)
	profileFetcher := fetch.NewProfileFetcher(uowFactory, sysLogger)
	enrichmentFetcher := fetch.NewEnrichmentFetcher(uowFactory, sysLogger)
	pageFetcher := fetch.NewPageFetcher(uowFactory, callFetcher, companyFetcher, sysLogger)
	semanticFetcher := fetch.NewSemanticFetcher(uowFactory, embeddingProvider, sysLogger)

	contextLoader := loader.New(
		callFetcher,
		companyFetcher,
		historyFetcher,
		profileFetcher,
		enrichmentFetcher,
		pageFetcher,
		semanticFetcher,
		sysLogger,
	)

	dispatcher := mode.NewDispatcher()
	invoker := invoke.New(llmProvider, time.Duration(cfg.Agent.RequestBudgetSecs)*time.Second, sysLogger)

	// 6. Run logging and usage metering
	runLogger := runlog.NewLogger(pubSub, cfg.Agent.RunLogTopic, sysLogger)
	runRecorder := runlog.NewRecorder(pubSub, cfg.Agent.RunLogTopic, uowFactory, runEventPub, sysLogger)
	meter := usage.NewMeter(uowFactory, usageEventPub, sysLogger)

	sessionRepo := memory.NewSessionRepository()

	// 7. Services and controllers
	agentService := service.NewAgentService(
		dispatcher,
		contextLoader,
		invoker,
		runLogger,
		meter,
		sessionRepo,
		uowFactory,
		cfg.Ai.LLMModel,
		sysLogger,
	)

	return &Container{
		AgentController: controller.NewAgentController(agentService, sysLogger),
		RunRecorder:     runRecorder,
		Logger:          sysLogger,
	}
}
