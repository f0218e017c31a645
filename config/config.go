package config

import (
	"fmt"
	"os"
	"time"

	"lsp-search-service/internal/cache"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config полная конфигурация приложения
type Config struct {
	App         ConfigApp         `yaml:"app"`
	Marketplace ConfigMarketplace `yaml:"marketplace"`
	Backend     ConfigBackend     `yaml:"backend"`
	Kafka       KafkaConfig       `yaml:"kafka"`
	Cache       CacheConfig       `yaml:"cache,omitempty"`
}

// ConfigApp конфигурация HTTP сервера
type ConfigApp struct {
	Host string `yaml:"host" env:"APP_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"APP_PORT" env-default:"8080"`
}

// ConfigMarketplace конфигурация клиента логистического маркетплейса
type ConfigMarketplace struct {
	SearchURL string `yaml:"search_url" env:"MARKETPLACE_SEARCH_URL" env-default:"http://localhost:9090/logistics/search"`
	// Таймаут исходящего запроса поиска; эндпоинт внешний, дефолт транспорта не подходит
	Timeout  string           `yaml:"timeout" env:"MARKETPLACE_TIMEOUT" env-default:"15s"`
	Token    string           `yaml:"token" env:"MARKETPLACE_TOKEN" env-default:""`
	Defaults RequestDefaults  `yaml:"request_defaults"`
}

// RequestDefaults значения-подстановки для построителя запроса поиска.
// Исторические дефолты протокола: менять их — значит менять семантику
// запроса, уходящего на сторонний маркетплейс.
type RequestDefaults struct {
	StartGPS      string `yaml:"start_gps" env:"DEFAULT_START_GPS" env-default:"12.9423572,77.696726"`
	StartAreaCode string `yaml:"start_area_code" env:"DEFAULT_START_AREA_CODE" env-default:"560103"`
	EndGPS        string `yaml:"end_gps" env:"DEFAULT_END_GPS" env-default:"12.9394125,77.68924140000001"`
}

// ConfigBackend конфигурация Backend API (хранилище черновиков заказов)
type ConfigBackend struct {
	BaseURL string `yaml:"base_url" env:"BACKEND_BASE_URL" env-default:"http://localhost:9090"`
	Token   string `yaml:"token" env:"BACKEND_TOKEN" env-default:""`
	Timeout string `yaml:"timeout" env:"BACKEND_TIMEOUT" env-default:"15s"`
}

// KafkaConfig конфигурация Kafka
type KafkaConfig struct {
	Brokers      []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:"," env-default:"localhost:9092"`
	BookingTopic string   `yaml:"booking_topic" env:"KAFKA_BOOKING_TOPIC" env-default:"bookings.initiated"`
}

// CacheConfig конфигурация кэша черновиков заказов
type CacheConfig struct {
	Type     cache.CacheType `yaml:"type" env:"CACHE_TYPE" env-default:"inmemory"`
	Host     string          `yaml:"host" env:"CACHE_HOST" env-default:"localhost"`
	Port     string          `yaml:"port" env:"CACHE_PORT" env-default:"6379"`
	Password string          `yaml:"password" env:"CACHE_PASSWORD" env-default:""`
	DB       int             `yaml:"db" env:"CACHE_DB" env-default:"0"`
	Capacity int             `yaml:"capacity" env:"CACHE_CAPACITY" env-default:"1000"`
	TTL      string          `yaml:"ttl" env:"CACHE_TTL" env-default:"30m"`
}

// Load загружает конфигурацию из файла
func Load(cfgPath string) (*Config, error) {
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", cfgPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(cfgPath, &cfg); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Валидация обязательных полей
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv загружает конфигурацию из переменных окружения
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("error reading config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.App.Host == "" {
		return fmt.Errorf("app.host is required")
	}
	if c.App.Port == "" {
		return fmt.Errorf("app.port is required")
	}
	if c.Marketplace.SearchURL == "" {
		return fmt.Errorf("marketplace.search_url is required")
	}
	if c.Marketplace.Timeout != "" {
		if _, err := time.ParseDuration(c.Marketplace.Timeout); err != nil {
			return fmt.Errorf("invalid marketplace.timeout format: %w", err)
		}
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if c.Backend.Timeout != "" {
		if _, err := time.ParseDuration(c.Backend.Timeout); err != nil {
			return fmt.Errorf("invalid backend.timeout format: %w", err)
		}
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required")
	}
	if c.Kafka.BookingTopic == "" {
		return fmt.Errorf("kafka.booking_topic is required")
	}

	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache validation failed: %w", err)
	}

	return nil
}

// Validate проверяет корректность конфигурации кэша
func (c *CacheConfig) Validate() error {
	switch c.Type {
	case cache.CacheTypeRedis:
		if c.Host == "" {
			return fmt.Errorf("cache.host is required for redis cache")
		}
		if c.Port == "" {
			return fmt.Errorf("cache.port is required for redis cache")
		}
	case cache.CacheTypeInMemory:
		if c.Capacity <= 0 {
			return fmt.Errorf("cache.capacity must be positive for in-memory cache")
		}
		// Проверяем, что TTL парсится
		if c.TTL != "" {
			if _, err := time.ParseDuration(c.TTL); err != nil {
				return fmt.Errorf("invalid cache.ttl format: %w", err)
			}
		}
	default:
		return fmt.Errorf("unknown cache type: %s", c.Type)
	}
	return nil
}

// GetAppAddress возвращает адрес приложения в формате host:port
func (c *ConfigApp) GetAppAddress() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// GetTimeout возвращает таймаут клиента маркетплейса
func (c *ConfigMarketplace) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 15 * time.Second
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// GetTimeout возвращает таймаут клиента Backend API
func (c *ConfigBackend) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 15 * time.Second
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// GetCacheAddress возвращает адрес кэша в формате host:port (только для Redis)
func (c *CacheConfig) GetCacheAddress() string {
	if c.Type != cache.CacheTypeRedis {
		return ""
	}
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ToCacheConfig преобразует в конфиг для фабрики кэша
func (c *CacheConfig) ToCacheConfig() (cache.Config, error) {
	var ttl time.Duration
	var err error

	if c.TTL != "" {
		ttl, err = time.ParseDuration(c.TTL)
		if err != nil {
			return cache.Config{}, fmt.Errorf("invalid cache.ttl format: %w", err)
		}
	} else {
		// Значение по умолчанию, если TTL пустой (хотя env-default задан)
		ttl = 30 * time.Minute
	}

	return cache.Config{
		Type: c.Type,
		Redis: cache.RedisConfig{
			Addr:     c.GetCacheAddress(),
			Password: c.Password,
			DB:       c.DB,
		},
		Capacity: c.Capacity,
		TTL:      ttl,
	}, nil
}
