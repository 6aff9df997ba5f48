package main

import (
	"context"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/thereayou/everchat/internal/assistant"
	"github.com/thereayou/everchat/internal/config"
	"github.com/thereayou/everchat/internal/database"
	"github.com/thereayou/everchat/internal/handlers"
	"github.com/thereayou/everchat/internal/media"
	"github.com/thereayou/everchat/pkg/auth"
	"log/slog"
	"os"
	"time"
)

const startupTimeout = 15 * time.Second

type Server struct {
	Config     *config.Config
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
}

func NewServer() (*Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connect failed: %w", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connect failed: %w", err)
	}

	store, err := newMediaStore(ctx, cfg.Media)
	if err != nil {
		return nil, err
	}
	ingestor := media.NewIngestor(store)

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	revocations := auth.NewRedisRevocations(rdb)
	gateway := assistant.NewGateway(assistant.NewOpenAIClient(cfg.Assistant), cfg.Assistant)

	router := gin.Default()
	APIEndpoints(router, jwtMgr, revocations, Handlers{
		Auth:      handlers.NewAuthHandler(db, jwtMgr, revocations),
		User:      handlers.NewUserHandler(db, ingestor),
		Post:      handlers.NewPostHandler(db, ingestor),
		Message:   handlers.NewMessageHandler(db),
		Assistant: handlers.NewAssistantHandler(db, gateway),
		Safety:    handlers.NewSafetyHandler(db),
		Media:     handlers.NewMediaHandler(ingestor),
	})

	return &Server{
		Config:     cfg,
		Router:     router,
		DB:         db,
		Redis:      rdb,
		JWTManager: jwtMgr,
	}, nil
}

func newMediaStore(ctx context.Context, cfg config.MediaConfig) (media.Store, error) {
	if cfg.Backend == config.MediaBackendMinio {
		store, err := media.NewMinioStore(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("minio store: %w", err)
		}
		return store, nil
	}
	store, err := media.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("local store: %w", err)
	}
	return store, nil
}

func (s *Server) Run() error {
	slog.Info("server starting", "component", "server", "port", s.Config.Port)
	return s.Router.Run(":" + s.Config.Port)
}

func (s *Server) Close() {
	if err := s.Redis.Close(); err != nil {
		slog.Warn("redis close failed", "component", "server", "error", err)
	}
	if err := s.DB.Close(); err != nil {
		slog.Warn("database close failed", "component", "server", "error", err)
	}
}
