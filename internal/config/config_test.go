package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/everchat")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_SECRET", "secret")
}

func TestFromEnvDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Errorf("jwt ttl = %v", cfg.JWTTTL)
	}
	if cfg.Assistant.Model != "gpt-3.5-turbo" || cfg.Assistant.MaxTokens != 500 {
		t.Errorf("assistant = %+v", cfg.Assistant)
	}
	if cfg.Assistant.Timeout != 30*time.Second {
		t.Errorf("assistant timeout = %v", cfg.Assistant.Timeout)
	}
	if cfg.Media.Backend != MediaBackendLocal || cfg.Media.UploadDir != "static/uploads" {
		t.Errorf("media = %+v", cfg.Media)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("log level = %v", cfg.LogLevel)
	}
}

func TestFromEnvMissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, err := FromEnv()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, key := range []string{"DATABASE_URL", "REDIS_URL", "JWT_SECRET"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q does not mention %s", err, key)
		}
	}
}

func TestFromEnvMinioNeedsEndpoint(t *testing.T) {
	setRequired(t)
	t.Setenv("MEDIA_BACKEND", "MinIO")
	t.Setenv("MINIO_ENDPOINT", "")

	if _, err := FromEnv(); err == nil || !strings.Contains(err.Error(), "MINIO_ENDPOINT") {
		t.Fatalf("err = %v", err)
	}
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"JWT_TTL":               "forever",
		"ASSISTANT_TEMPERATURE": "hot",
		"DB_DRIVER":             "oracle",
		"LOG_LEVEL":             "loud",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, value)
			if _, err := FromEnv(); err == nil {
				t.Fatalf("%s=%s accepted", key, value)
			}
		})
	}
}
