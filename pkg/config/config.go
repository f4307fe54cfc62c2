// Package config loads application configuration from YAML files with
// environment-variable overrides. It provides typed structs for every
// subsystem (Server, Index, Builder, Search, Redis, Kafka, Postgres, etc.).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Index    IndexConfig    `yaml:"index"`
	Builder  BuilderConfig  `yaml:"builder"`
	Search   SearchConfig   `yaml:"search"`
	Postgres PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	RateLimitRPS    float64       `yaml:"rateLimitRPS"`
	RateLimitBurst  int           `yaml:"rateLimitBurst"`
	CORSOrigins     []string      `yaml:"corsOrigins"`
}

// IndexConfig locates the persisted index artifacts.
type IndexConfig struct {
	DataDir      string `yaml:"dataDir"`
	ForwardFile  string `yaml:"forwardFile"`
	InvertedFile string `yaml:"invertedFile"`
}

// BuilderConfig controls the offline index build.
type BuilderConfig struct {
	Source      string        `yaml:"source"`
	InputDir    string        `yaml:"inputDir"`
	URLPrefix   string        `yaml:"urlPrefix"`
	Workers     int           `yaml:"workers"`
	TitleWeight int           `yaml:"titleWeight"`
	Stem        bool          `yaml:"stem"`
	IdleTimeout time.Duration `yaml:"idleTimeout"`
}

// SearchConfig controls query execution.
type SearchConfig struct {
	StopwordFile string `yaml:"stopwordFile"`
	DefaultLimit int    `yaml:"defaultLimit"`
	MaxResults   int    `yaml:"maxResults"`
	CacheEnabled bool   `yaml:"cacheEnabled"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Database        string        `yaml:"database"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslMode"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// KafkaConfig holds Kafka broker and topic settings.
type KafkaConfig struct {
	Enabled       bool        `yaml:"enabled"`
	Brokers       []string    `yaml:"brokers"`
	ConsumerGroup string      `yaml:"consumerGroup"`
	Topics        KafkaTopics `yaml:"topics"`
}

// KafkaTopics maps logical topic names to their Kafka topic strings.
type KafkaTopics struct {
	Documents       string `yaml:"documents"`
	AnalyticsEvents string `yaml:"analyticsEvents"`
}

// RedisConfig holds Redis connection and caching parameters.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	PoolSize int           `yaml:"poolSize"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a Config suitable for local development.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			RateLimitRPS:    50,
			RateLimitBurst:  100,
		},
		Index: IndexConfig{
			DataDir:      "data/index",
			ForwardFile:  "forward.json",
			InvertedFile: "inverted.json",
		},
		Builder: BuilderConfig{
			Source:      "dir",
			InputDir:    "docs/api",
			URLPrefix:   "https://docs.oracle.com/javase/8/docs/api/",
			Workers:     8,
			TitleWeight: 10,
			IdleTimeout: 10 * time.Second,
		},
		Search: SearchConfig{
			DefaultLimit: 20,
			MaxResults:   200,
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            5432,
			Database:        "docsearch",
			User:            "docsearch",
			Password:        "localdev",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers:       []string{"localhost:9092"},
			ConsumerGroup: "docsearch-builder",
			Topics: KafkaTopics{
				Documents:       "docsearch.documents",
				AnalyticsEvents: "docsearch.search-events",
			},
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PoolSize: 10,
			CacheTTL: 5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    9090,
		},
	}
}

// Validate rejects values the build and search pipelines cannot run with.
func (c *Config) Validate() error {
	if c.Index.DataDir == "" {
		return fmt.Errorf("index.dataDir must be set")
	}
	if c.Index.ForwardFile == "" || c.Index.InvertedFile == "" {
		return fmt.Errorf("index.forwardFile and index.invertedFile must be set")
	}
	if c.Index.ForwardFile == c.Index.InvertedFile {
		return fmt.Errorf("index.forwardFile and index.invertedFile must differ")
	}
	if c.Server.RateLimitRPS < 0 {
		return fmt.Errorf("server.rateLimitRPS must not be negative, got %v", c.Server.RateLimitRPS)
	}
	if c.Builder.Workers < 1 {
		return fmt.Errorf("builder.workers must be at least 1, got %d", c.Builder.Workers)
	}
	if c.Builder.TitleWeight < 0 {
		return fmt.Errorf("builder.titleWeight must not be negative, got %d", c.Builder.TitleWeight)
	}
	switch c.Builder.Source {
	case "dir", "kafka", "postgres":
	default:
		return fmt.Errorf("builder.source must be one of dir, kafka, postgres; got %q", c.Builder.Source)
	}
	return nil
}

// LoadEnvFile exports the KEY=value pairs of a dotenv file so the DS_*
// overrides can come from it. Variables already set win. A missing file is
// not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides reads DS_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DS_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DS_SERVER_RATE_LIMIT_RPS"); v != "" {
		if rps, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Server.RateLimitRPS = rps
		}
	}
	if v := os.Getenv("DS_SERVER_CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("DS_INDEX_DATA_DIR"); v != "" {
		cfg.Index.DataDir = v
	}
	if v := os.Getenv("DS_BUILDER_SOURCE"); v != "" {
		cfg.Builder.Source = v
	}
	if v := os.Getenv("DS_BUILDER_INPUT_DIR"); v != "" {
		cfg.Builder.InputDir = v
	}
	if v := os.Getenv("DS_BUILDER_URL_PREFIX"); v != "" {
		cfg.Builder.URLPrefix = v
	}
	if v := os.Getenv("DS_BUILDER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Builder.Workers = n
		}
	}
	if v := os.Getenv("DS_SEARCH_STOPWORD_FILE"); v != "" {
		cfg.Search.StopwordFile = v
	}
	if v := os.Getenv("DS_SEARCH_CACHE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Search.CacheEnabled = b
		}
	}
	if v := os.Getenv("DS_POSTGRES_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("DS_POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("DS_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("DS_KAFKA_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Kafka.Enabled = b
		}
	}
	if v := os.Getenv("DS_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("DS_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("DS_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("DS_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
