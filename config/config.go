package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type HTTP struct {
	Addr              string        `default:":8080" envconfig:"ADDR"`
	GinMode           string        `default:"debug" envconfig:"GIN_MODE"`
	ReadTimeout       time.Duration `default:"10s" envconfig:"READ_TIMEOUT"`
	WriteTimeout      time.Duration `default:"10s" envconfig:"WRITE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `default:"60s" envconfig:"IDLE_TIMEOUT"`
	GracefulTimeout   time.Duration `default:"5s" envconfig:"GRACEFUL_TIMEOUT"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"OTEL_ENABLED"`
	ServiceName string  `default:"rushbuy-catalog" envconfig:"OTEL_SERVICE_NAME"`
	Endpoint    string  `default:"jaeger:4318" envconfig:"OTEL_ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"OTEL_SAMPLE_RATIO"`
}

// Postgres — хранилище кэша. Пустой DSN означает запуск на in-memory
// хранилище (локальная разработка и тесты).
type Postgres struct {
	DSN      string `default:"" envconfig:"DSN"`
	MaxConns int32  `default:"10" envconfig:"MAX_CONNS"`
}

// Remote — удалённый каталог товаров.
type Remote struct {
	BaseURL string        `default:"https://dummyjson.com" envconfig:"BASE_URL"`
	Timeout time.Duration `default:"10s" envconfig:"TIMEOUT"`
}

// Paging — параметры постраничной выдачи.
type Paging struct {
	PageSize             int           `default:"10" envconfig:"PAGE_SIZE"`
	SearchDebounce       time.Duration `default:"300ms" envconfig:"SEARCH_DEBOUNCE"`
	CategoryRefreshLimit int           `default:"100" envconfig:"CATEGORY_REFRESH_LIMIT"`
}

type Kafka struct {
	Enabled      bool          `default:"false" envconfig:"ENABLED"`
	Brokers      []string      `default:"kafka:9092" envconfig:"BROKERS"`
	Topic        string        `default:"catalog.product-added" envconfig:"TOPIC"`
	BatchTimeout time.Duration `default:"50ms" envconfig:"BATCH_TIMEOUT"`
}

type Logger struct {
	IsProd bool `default:"false" envconfig:"IS_PROD"`
}

type Config struct {
	HTTP     HTTP
	Tracing  Tracing
	Postgres Postgres
	Remote   Remote
	Paging   Paging
	Kafka    Kafka
	Logger   Logger
}

// Load — чтение конфигурации из окружения с префиксом RUSHBUY.
func Load() (Config, error) {
	return LoadWithPrefix("RUSHBUY")
}

// LoadWithPrefix — то же с произвольным префиксом (для изоляции в тестах).
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config

	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}

	return c, nil
}
