package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"devis/internal/adapters/out/redisnotify"
	"devis/internal/adapters/out/s3store"
	"devis/internal/core/application/usecases/commands"
	"devis/internal/jobs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string `env:"HTTP_PORT" envDefault:"8080"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"devis"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	RedisAddr           string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword       string `env:"REDIS_PASSWORD"`
	RedisDB             int    `env:"REDIS_DB" envDefault:"0"`
	NotificationChannel string `env:"NOTIFICATION_CHANNEL" envDefault:"devis.notifications"`

	S3Region          string `env:"S3_REGION" envDefault:"eu-west-3"`
	S3Bucket          string `env:"S3_BUCKET" envDefault:"devis-documents"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`

	RendererURL      string        `env:"PDF_RENDERER_URL"`
	RendererTemplate string        `env:"PDF_RENDERER_TEMPLATE" envDefault:"quote"`
	RendererTimeout  time.Duration `env:"PDF_RENDERER_TIMEOUT" envDefault:"30s"`

	EmitterName    string `env:"EMITTER_NAME" envDefault:"Service commercial"`
	EmitterEmail   string `env:"EMITTER_EMAIL"`
	EmitterPhone   string `env:"EMITTER_PHONE"`
	EmitterCompany string `env:"EMITTER_COMPANY"`

	QuoteValidityDays int `env:"QUOTE_VALIDITY_DAYS" envDefault:"7"`
	MaxClientAbsences int `env:"MAX_CLIENT_ABSENCES" envDefault:"3"`
	ConflictAttempts  int `env:"CONFLICT_ATTEMPTS" envDefault:"3"`

	RecoverySchedule  string        `env:"RECOVERY_SCHEDULE" envDefault:"0 */5 * * * *"`
	RecoveryGrace     time.Duration `env:"RECOVERY_GRACE" envDefault:"10m"`
	RecoveryBatchSize int           `env:"RECOVERY_BATCH_SIZE" envDefault:"50"`

	// ValidationURLBase is the client page a quote links to, the request id is appended.
	ValidationURLBase string `env:"VALIDATION_URL_BASE"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// LoadConfig reads the existing env files, then the environment.
// Variables already set in the environment win over the files.
func LoadConfig(envFiles ...string) (Config, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return Config{}, fmt.Errorf("load env files: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errList []error
	if c.QuoteValidityDays <= 0 {
		errList = append(errList, fmt.Errorf("QUOTE_VALIDITY_DAYS must be positive, got %d", c.QuoteValidityDays))
	}
	if c.MaxClientAbsences < 0 {
		errList = append(errList, fmt.Errorf("MAX_CLIENT_ABSENCES must not be negative, got %d", c.MaxClientAbsences))
	}
	if c.ConflictAttempts < 1 {
		errList = append(errList, fmt.Errorf("CONFLICT_ATTEMPTS must be at least 1, got %d", c.ConflictAttempts))
	}
	if c.RecoveryGrace < 0 {
		errList = append(errList, fmt.Errorf("RECOVERY_GRACE must not be negative, got %s", c.RecoveryGrace))
	}
	return errors.Join(errList...)
}

// ValidateServing checks the settings only the serve command needs.
func (c Config) ValidateServing() error {
	var errList []error
	if c.S3PublicBaseURL == "" {
		errList = append(errList, errors.New("S3_PUBLIC_BASE_URL is required"))
	}
	if c.RendererURL == "" {
		errList = append(errList, errors.New("PDF_RENDERER_URL is required"))
	}
	return errors.Join(errList...)
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) Policy() commands.Policy {
	return commands.Policy{
		QuoteValidity:     time.Duration(c.QuoteValidityDays) * 24 * time.Hour,
		MaxClientAbsences: c.MaxClientAbsences,
		ConflictAttempts:  c.ConflictAttempts,
		ValidationURLBase: c.ValidationURLBase,
	}
}

func (c Config) Redis() redisnotify.Config {
	return redisnotify.Config{Addr: c.RedisAddr, Password: c.RedisPassword, DB: c.RedisDB}
}

func (c Config) S3() s3store.Config {
	return s3store.Config{
		Region:          c.S3Region,
		Bucket:          c.S3Bucket,
		Endpoint:        c.S3Endpoint,
		AccessKeyID:     c.S3AccessKeyID,
		SecretAccessKey: c.S3SecretAccessKey,
		PublicBaseURL:   c.S3PublicBaseURL,
	}
}

func (c Config) Recovery() jobs.RecoveryConfig {
	return jobs.RecoveryConfig{
		Schedule:  c.RecoverySchedule,
		Grace:     c.RecoveryGrace,
		BatchSize: c.RecoveryBatchSize,
	}
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c Config) NewLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.LogFormat, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
