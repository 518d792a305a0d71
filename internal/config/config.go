package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Поддерживаемые провайдеры суммаризации
const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
)

// Поддерживаемые бэкенды временного хранения загрузок
const (
	StagingLocal = "local"
	StagingS3    = "s3"
)

type Config struct {
	Server     ServerConfig
	Summarizer SummarizerConfig
	Staging    StagingConfig
	S3         S3Config
	Frontend   FrontendConfig
	Log        LogConfig
}

type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" envDefault:"5000"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"90s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxUploadSize   int64         `env:"SERVER_MAX_UPLOAD_SIZE" envDefault:"10485760"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SummarizerConfig настройки внешнего провайдера суммаризации.
// APIKey намеренно не обязателен: ошибка всплывёт при первом запросе.
type SummarizerConfig struct {
	Provider       string        `env:"SUMMARIZER_PROVIDER" envDefault:"huggingface"`
	APIKey         string        `env:"HF_API_KEY"`
	Model          string        `env:"HF_MODEL" envDefault:"philschmid/bart-large-cnn-samsum"`
	BaseURL        string        `env:"HF_API_URL" envDefault:"https://api-inference.huggingface.co/models"`
	RequestTimeout time.Duration `env:"SUMMARIZER_REQUEST_TIMEOUT" envDefault:"60s"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-5-mini"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
}

type StagingConfig struct {
	// local или s3
	Backend string `env:"STAGING_BACKEND" envDefault:"local"`
	Dir     string `env:"STAGING_DIR" envDefault:"uploads"`
}

type S3Config struct {
	Endpoint  string `env:"S3_ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"S3_ACCESS_KEY" envDefault:"minioadmin"`
	SecretKey string `env:"S3_SECRET_KEY" envDefault:"minioadmin"`
	Bucket    string `env:"S3_BUCKET" envDefault:"report-staging"`
	UseSSL    bool   `env:"S3_USE_SSL" envDefault:"false"`
	// Срок жизни брошенных объектов, при 0 правило не ставится
	StagingTTLDays int `env:"S3_STAGING_TTL_DAYS" envDefault:"1"`
}

type FrontendConfig struct {
	Enabled bool `env:"FRONTEND_ENABLED" envDefault:"true"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	// json или console
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Summarizer.Provider {
	case ProviderHuggingFace, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown summarizer provider %q", c.Summarizer.Provider)
	}

	switch c.Staging.Backend {
	case StagingLocal, StagingS3:
	default:
		return fmt.Errorf("unknown staging backend %q", c.Staging.Backend)
	}

	if c.Summarizer.RequestTimeout <= 0 {
		return fmt.Errorf("summarizer request timeout must be positive")
	}

	return nil
}
