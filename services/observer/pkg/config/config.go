package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/orderbook-observer/pkg/questdb"
	"github.com/muhammadchandra19/orderbook-observer/pkg/redis"
)

// Config represents the application configuration.
type Config struct {
	App     AppConfig     `envPrefix:"APP_"`
	Venue   VenueConfig   `envPrefix:"VENUE_"`
	Cache   CacheConfig   `envPrefix:"CACHE_"`
	Engine  EngineConfig  `envPrefix:"ENGINE_"`
	Archive ArchiveConfig `envPrefix:"ARCHIVE_"`
	QuestDB QuestDBConfig `envPrefix:"QUESTDB_"`
	Kafka   KafkaConfig   `envPrefix:"KAFKA_"`
	Redis   RedisConfig   `envPrefix:"REDIS_"`
	Sync    SyncConfig    `envPrefix:"SYNC_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"orderbook-observer"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// VenueConfig locates the files written by the matching engine.
type VenueConfig struct {
	WorkDir      string `env:"WORK_DIR" envDefault:"."`
	LogFile      string `env:"LOG_FILE" envDefault:"all_info.csv"`
	BuyBookFile  string `env:"BUY_BOOK_FILE" envDefault:"buy book.txt"`
	SellBookFile string `env:"SELL_BOOK_FILE" envDefault:"sell book.txt"`
	CommandFile  string `env:"COMMAND_FILE" envDefault:"command.txt"`
	ConsoleFile  string `env:"CONSOLE_FILE" envDefault:"console_output.txt"`
	// TimeLocation is the zone the engine writes its naive timestamps in.
	TimeLocation string `env:"TIME_LOCATION" envDefault:"Local"`
}

// Path resolves name against WorkDir unless it is already absolute.
func (v VenueConfig) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(v.WorkDir, name)
}

// Location loads TimeLocation.
func (v VenueConfig) Location() (*time.Location, error) {
	return time.LoadLocation(v.TimeLocation)
}

// CacheConfig holds the log cache staleness window.
type CacheConfig struct {
	TTL time.Duration `env:"TTL" envDefault:"5s"`
}

// EngineConfig describes how the matching engine is built and run.
type EngineConfig struct {
	Binary       string        `env:"BINARY" envDefault:"./orderbook"`
	BuildCommand string        `env:"BUILD_COMMAND" envDefault:"g++ main.cpp -o orderbook"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"10s"`
	BuildTimeout time.Duration `env:"BUILD_TIMEOUT" envDefault:"2m"`
	AdminSecret  string        `env:"ADMIN_SECRET"`
}

// ArchiveConfig holds export settings.
type ArchiveConfig struct {
	FontSize     float64       `env:"FONT_SIZE" envDefault:"10"`
	CacheEnabled bool          `env:"CACHE_ENABLED" envDefault:"false"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"1m"`
}

// QuestDBConfig enables the historical sink.
type QuestDBConfig struct {
	Enabled        bool   `env:"ENABLED" envDefault:"false"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"services/observer/migrations"`
	questdb.Config
}

// KafkaConfig enables publishing of reconstructed records.
type KafkaConfig struct {
	Enabled      bool          `env:"ENABLED" envDefault:"false"`
	Brokers      []string      `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic        string        `env:"TOPIC" envDefault:"venue-records"`
	BatchTimeout time.Duration `env:"BATCH_TIMEOUT" envDefault:"50ms"`
}

// RedisConfig enables the archive cache and change notifications.
type RedisConfig struct {
	Enabled bool `env:"ENABLED" envDefault:"false"`
	redis.Config
}

// SyncConfig tunes the sink synchronisation.
type SyncConfig struct {
	BatchSize int           `env:"BATCH_SIZE" envDefault:"500"`
	Debounce  time.Duration `env:"DEBOUNCE" envDefault:"500ms"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if _, err := cfg.Venue.Location(); err != nil {
		return nil, fmt.Errorf("invalid VENUE_TIME_LOCATION: %w", err)
	}

	return cfg, nil
}
