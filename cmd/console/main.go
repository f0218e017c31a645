package main

import (
	"bufio"
	"log"
	"os"
	"time"

	"lsp-search-service/cmd/ui/menu"
	"lsp-search-service/config"
	"lsp-search-service/internal/cache"
	"lsp-search-service/internal/creds"
	"lsp-search-service/internal/draftorders"
	"lsp-search-service/internal/marketplace"
	"lsp-search-service/internal/orchestrator"
	"lsp-search-service/internal/service"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

var (
	cfgPath = "config/config.yaml"
)

func main() {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Кэш черновиков
	appCache, err := cache.New(cfg.Cache.ToCacheConfig())
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	defer appCache.Close()

	// Клиент Backend API
	backendClient, err := draftorders.NewClient(
		cfg.Backend.BaseURL,
		cfg.Backend.GetTimeout(),
		creds.NewStaticCredentials(cfg.Backend.Token),
	)
	if err != nil {
		log.Fatalf("Failed to initialize backend client: %v", err)
	}

	draftOrderService, err := draftorders.NewService(backendClient, appCache, logger)
	if err != nil {
		log.Fatalf("Failed to initialize draft order service: %v", err)
	}

	// Клиент маркетплейса
	marketplaceClient, err := marketplace.NewClient(
		cfg.Marketplace.SearchURL,
		cfg.Marketplace.GetTimeout(),
		creds.NewStaticCredentials(cfg.Marketplace.Token),
	)
	if err != nil {
		log.Fatalf("Failed to initialize marketplace client: %v", err)
	}

	// Продюсер бронирований
	producer, err := connectProducer(cfg.Kafka.Brokers)
	if err != nil {
		log.Fatalf("Failed to connect to Kafka: %v", err)
	}
	defer producer.Close()

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
		log.Fatalf("Failed to initialize orchestrator: %v", err)
	}

	log.Println("LSP search console is launched!")
	log.Printf("Marketplace: %s", cfg.Marketplace.SearchURL)
	log.Printf("Backend: %s", cfg.Backend.BaseURL)

	menuInstance := menu.NewMenu(orch, draftOrderService)
	menuInstance.SetReader(bufio.NewReader(os.Stdin)) // stdin
	menuInstance.Run()
}

// connectProducer создает надежного продюсера Kafka
func connectProducer(brokers []string) (sarama.SyncProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V2_8_1_0
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	return sarama.NewSyncProducer(brokers, saramaConfig)
}
