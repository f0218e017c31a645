package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lsp-search-service/config"
	"lsp-search-service/internal/cache"
	"lsp-search-service/internal/creds"
	"lsp-search-service/internal/draftorders"
	"lsp-search-service/internal/marketplace"
	"lsp-search-service/internal/orchestrator"
	"lsp-search-service/internal/server"
	"lsp-search-service/internal/service"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

var (
	cfgPath = "config/config.yaml"
)

func main() {
	logger := initializeLogger()
	defer func() {
		_ = logger.Sync()
	}()

	cfg := loadConfig(cfgPath, logger)

	appCache := initializeCache(cfg, logger)
	defer closeCache(appCache, logger)

	draftOrderService := initializeDraftOrders(cfg, appCache, logger)

	producer := initializeProducer(cfg, logger)
	defer closeProducer(producer, logger)

	orch := initializeOrchestrator(cfg, draftOrderService, producer, logger)

	httpServer := initializeController(cfg, orch, draftOrderService, logger)
	startServer(httpServer, logger)

	// Канал для системных сигналов
	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, os.Interrupt, syscall.SIGTERM)

	<-sigchan
	logger.Info("Received signal, shutting down...")

	orch.Reset()
	_ = httpServer.Shutdown()

	logger.Info("Application shut down gracefully")
}

func startServer(srv *server.Server, logger *zap.Logger) {
	go func() {
		if err := srv.Launch(); err != nil {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully")
}

func initializeLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return logger
}

func loadConfig(cfgPath string, logger *zap.Logger) *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	logger.Info("Configuration loaded successfully")
	return cfg
}

func initializeCache(cfg *config.Config, logger *zap.Logger) cache.Cache {
	appCache, err := cache.New(cfg.Cache.ToCacheConfig())
	if err != nil {
		logger.Fatal("Failed to initialize cache", zap.Error(err))
	}

	logger.Info("Cache initialized successfully",
		zap.String("cache_type", string(cfg.Cache.Type)))
	return appCache
}

func closeCache(appCache cache.Cache, logger *zap.Logger) {
	if err := appCache.Close(); err != nil {
		logger.Error("Error closing cache", zap.Error(err))
	} else {
		logger.Info("Cache closed successfully")
	}
}

func initializeDraftOrders(cfg *config.Config, appCache cache.Cache, logger *zap.Logger) *draftorders.Service {
	client, err := draftorders.NewClient(
		cfg.Backend.BaseURL,
		cfg.Backend.GetTimeout(),
		creds.NewStaticCredentials(cfg.Backend.Token),
	)
	if err != nil {
		logger.Fatal("Failed to initialize backend client", zap.Error(err))
	}

	draftOrderService, err := draftorders.NewService(client, appCache, logger)
	if err != nil {
		logger.Fatal("Failed to initialize draft order service", zap.Error(err))
	}

	logger.Info("Draft order service initialized successfully",
		zap.String("base_url", cfg.Backend.BaseURL))
	return draftOrderService
}

func initializeProducer(cfg *config.Config, logger *zap.Logger) sarama.SyncProducer {
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, createProducerConfig())
	if err != nil {
		logger.Fatal("Failed to connect to Kafka", zap.Error(err))
	}

	logger.Info("Kafka producer initialized successfully",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("booking_topic", cfg.Kafka.BookingTopic))
	return producer
}

func closeProducer(producer sarama.SyncProducer, logger *zap.Logger) {
	if err := producer.Close(); err != nil {
		logger.Error("Error closing Kafka producer", zap.Error(err))
	} else {
		logger.Info("Kafka producer closed successfully")
	}
}

func initializeOrchestrator(
	cfg *config.Config,
	draftOrderService *draftorders.Service,
	producer sarama.SyncProducer,
	logger *zap.Logger,
) *orchestrator.Orchestrator {
	marketplaceClient, err := marketplace.NewClient(
		cfg.Marketplace.SearchURL,
		cfg.Marketplace.GetTimeout(),
		creds.NewStaticCredentials(cfg.Marketplace.Token),
	)
	if err != nil {
		logger.Fatal("Failed to initialize marketplace client", zap.Error(err))
	}

	builder := service.NewRequestBuilderWithDefaults(
		cfg.Marketplace.Defaults.StartGPS,
		cfg.Marketplace.Defaults.StartAreaCode,
		cfg.Marketplace.Defaults.EndGPS,
	)

	orch, err := orchestrator.New(
		draftOrderService,
		marketplaceClient,
		builder,
		service.NewQuoteAggregator(),
		service.NewBookingProducer(producer, cfg.Kafka.BookingTopic),
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to initialize orchestrator", zap.Error(err))
	}

	logger.Info("Orchestrator initialized successfully",
		zap.String("search_url", cfg.Marketplace.SearchURL))
	return orch
}

func initializeController(
	cfg *config.Config,
	orch *orchestrator.Orchestrator,
	draftOrderService *draftorders.Service,
	logger *zap.Logger,
) *server.Server {
	httpServer, err := server.New(cfg, orch, draftOrderService, logger)
	if err != nil {
		logger.Fatal("Controller initialization error", zap.Error(err))
	}
	logger.Info("Controller initialized successfully")
	return httpServer
}

func createProducerConfig() *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V2_8_1_0
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	return saramaConfig
}
