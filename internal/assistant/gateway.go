// Package assistant отправляет реплики пользователя во внешний chat-completion API.
package assistant

import (
	"context"
	"errors"
	openai "github.com/sashabaranov/go-openai"
	"github.com/thereayou/everchat/internal/config"
	"log/slog"
	"strings"
	"time"
)

var errEmptyCompletion = errors.New("completion has no content")

// Completer реализуется *openai.Client
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Reply struct {
	OK   bool
	Text string
}

type Gateway struct {
	client      Completer
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
	logger      *slog.Logger
}

func NewGateway(client Completer, cfg config.AssistantConfig) *Gateway {
	return &Gateway{
		client:      client,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		logger:      slog.Default().With("component", "assistant"),
	}
}

// NewOpenAIClient создаётся один раз при старте и разделяется всеми запросами
func NewOpenAIClient(cfg config.AssistantConfig) *openai.Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(clientCfg)
}

// Converse никогда не возвращает ошибку: любой сбой превращается в fallback режима
func (g *Gateway) Converse(ctx context.Context, mode Mode, userText string) Reply {
	mode = ParseMode(string(mode))

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	text, err := g.complete(ctx, mode, userText)
	if err != nil {
		g.logger.Warn("completion failed", "mode", mode, "error", err)
		return Reply{OK: false, Text: mode.Fallback()}
	}
	return Reply{OK: true, Text: text}
}

func (g *Gateway) complete(ctx context.Context, mode Mode, userText string) (string, error) {
	if g.client == nil {
		return "", errors.New("completion client is not configured")
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: mode.SystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: userText},
		},
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyCompletion
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errEmptyCompletion
	}
	return text, nil
}
