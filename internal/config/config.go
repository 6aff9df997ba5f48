// Package config собирает настройки сервера из окружения и .env файлов.
package config

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	MediaBackendLocal = "local"
	MediaBackendMinio = "minio"
)

type Config struct {
	Port     string
	LogLevel slog.Level

	Database DatabaseConfig
	RedisURL string

	JWTSecret string
	JWTTTL    time.Duration

	Assistant AssistantConfig
	Media     MediaConfig
}

type DatabaseConfig struct {
	Driver string
	DSN    string
}

type AssistantConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

type MediaConfig struct {
	Backend   string
	UploadDir string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// Load читает .env.local, затем .env, затем переменные окружения
func Load() (*Config, error) {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			slog.Info(".env not found, using environment variables")
		}
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		RedisURL: os.Getenv("REDIS_URL"),
		Database: DatabaseConfig{
			Driver: strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			DSN:    os.Getenv("DATABASE_URL"),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		Assistant: AssistantConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
			Model:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		},
		Media: MediaConfig{
			Backend:        strings.ToLower(getEnv("MEDIA_BACKEND", MediaBackendLocal)),
			UploadDir:      getEnv("UPLOAD_DIR", "static/uploads"),
			MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
			MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
			MinioBucket:    getEnv("MINIO_BUCKET", "everchat-media"),
		},
	}

	var err error
	if cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	if cfg.JWTTTL, err = time.ParseDuration(getEnv("JWT_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if cfg.Assistant.MaxTokens, err = strconv.Atoi(getEnv("ASSISTANT_MAX_TOKENS", "500")); err != nil {
		return nil, fmt.Errorf("invalid ASSISTANT_MAX_TOKENS: %w", err)
	}
	temperature, err := strconv.ParseFloat(getEnv("ASSISTANT_TEMPERATURE", "0.7"), 32)
	if err != nil {
		return nil, fmt.Errorf("invalid ASSISTANT_TEMPERATURE: %w", err)
	}
	cfg.Assistant.Temperature = float32(temperature)
	if cfg.Assistant.Timeout, err = time.ParseDuration(getEnv("ASSISTANT_TIMEOUT", "30s")); err != nil {
		return nil, fmt.Errorf("invalid ASSISTANT_TIMEOUT: %w", err)
	}
	if cfg.Media.MinioUseSSL, err = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false")); err != nil {
		return nil, fmt.Errorf("invalid MINIO_USE_SSL: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver))
	}
	if c.RedisURL == "" {
		errs = append(errs, errors.New("REDIS_URL is not set"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	switch c.Media.Backend {
	case MediaBackendLocal:
	case MediaBackendMinio:
		if c.Media.MinioEndpoint == "" {
			errs = append(errs, errors.New("MINIO_ENDPOINT is required for minio media backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported MEDIA_BACKEND %q", c.Media.Backend))
	}
	return errors.Join(errs...)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
