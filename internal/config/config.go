package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Bot         BotConfig
	Database    DatabaseConfig
	Translator  TranslatorConfig
	Terminology TerminologyConfig
	Batch       BatchConfig
	Queue       QueueConfig
}

// BotConfig holds Telegram bot settings
type BotConfig struct {
	Token    string
	Password string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// TranslatorConfig selects and tunes the external translation provider
type TranslatorConfig struct {
	Provider      string
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiKey     string
	GeminiModel   string

	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration

	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
}

// TerminologyConfig holds terminology source settings
type TerminologyConfig struct {
	Dir            string
	UseBuiltin     bool
	SourceLanguage string
}

// BatchConfig holds batch translation limits
type BatchConfig struct {
	Concurrency int
	Delay       time.Duration
}

// QueueConfig holds RabbitMQ settings of the batch worker
type QueueConfig struct {
	URL           string
	CommandQueue  string
	ResultQueue   string
	PrefetchCount int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	p := &parser{}

	cfg := &Config{
		Bot: BotConfig{
			Token:    os.Getenv("BOT_TOKEN"),
			Password: os.Getenv("BOT_PASSWORD"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "nkrane"),
			User:     getEnv("DB_USER", "nkrane"),
			Password: os.Getenv("DB_PASSWORD"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Translator: TranslatorConfig{
			Provider:           strings.ToLower(getEnv("TRANSLATOR_PROVIDER", "openai")),
			OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			OpenAIBaseURL:      os.Getenv("OPENAI_BASE_URL"),
			GeminiKey:          os.Getenv("GEMINI_API_KEY"),
			GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout:            p.duration("TRANSLATE_TIMEOUT", 30*time.Second),
			MaxRetries:         p.int("TRANSLATE_MAX_RETRIES", 2),
			RetryBackoff:       p.duration("TRANSLATE_RETRY_BACKOFF", 500*time.Millisecond),
			BreakerMaxFailures: uint32(p.int("BREAKER_MAX_FAILURES", 5)),
			BreakerTimeout:     p.duration("BREAKER_TIMEOUT", 30*time.Second),
		},
		Terminology: TerminologyConfig{
			Dir:            os.Getenv("TERMINOLOGY_DIR"),
			UseBuiltin:     p.bool("USE_BUILTIN", true),
			SourceLanguage: strings.ToLower(getEnv("SOURCE_LANG", "en")),
		},
		Batch: BatchConfig{
			Concurrency: p.int("BATCH_CONCURRENCY", 4),
			Delay:       p.duration("BATCH_DELAY", 100*time.Millisecond),
		},
		Queue: QueueConfig{
			URL:           os.Getenv("AMQP_URL"),
			CommandQueue:  getEnv("QUEUE_COMMANDS", "nkrane.translate.cmd"),
			ResultQueue:   getEnv("QUEUE_RESULTS", "nkrane.translate.result"),
			PrefetchCount: p.int("QUEUE_PREFETCH", 1),
		},
	}

	if p.err != nil {
		return nil, p.err
	}

	if cfg.Translator.MaxRetries < 0 {
		return nil, fmt.Errorf("TRANSLATE_MAX_RETRIES must not be negative")
	}
	if cfg.Batch.Concurrency < 1 {
		return nil, fmt.Errorf("BATCH_CONCURRENCY must be at least 1")
	}

	return cfg, nil
}

// RequireBot validates settings needed by the Telegram bot
func (c *Config) RequireBot() error {
	if c.Bot.Token == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.Bot.Password == "" {
		return fmt.Errorf("BOT_PASSWORD is required")
	}
	return nil
}

// RequireDatabase validates settings needed to reach PostgreSQL
func (c *Config) RequireDatabase() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	return nil
}

// RequireQueue validates settings needed by the queue worker
func (c *Config) RequireQueue() error {
	if c.Queue.URL == "" {
		return fmt.Errorf("AMQP_URL is required")
	}
	return nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parser keeps the first malformed variable so Load can report it
type parser struct {
	err error
}

func (p *parser) int(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, raw)
		return defaultValue
	}
	return v
}

func (p *parser) duration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, raw)
		return defaultValue
	}
	return v
}

func (p *parser) bool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, raw)
		return defaultValue
	}
	return v
}

func (p *parser) fail(key, raw string) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid value %q for %s", raw, key)
	}
}
