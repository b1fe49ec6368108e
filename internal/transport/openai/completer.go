package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/docvoice/docvoice/internal/metrics"
)

// Completer is a role-scoped text completion stage: fixed instructions and
// model, varying input. Roles are tagged configuration, not types.
type Completer struct {
	client       *openai.Client
	role         string
	instructions string
	model        string
	logger       *zap.Logger
}

// CompleterConfig holds one completion role's settings.
type CompleterConfig struct {
	APIKey       string
	BaseURL      string
	Role         string
	Instructions string
	Model        string
	Logger       *zap.Logger
}

// NewCompleter creates a role-scoped completion stage.
func NewCompleter(cfg *CompleterConfig) *Completer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Completer{
		client:       openai.NewClientWithConfig(clientCfg),
		role:         cfg.Role,
		instructions: cfg.Instructions,
		model:        cfg.Model,
		logger:       cfg.Logger,
	}
}

// Complete runs one completion: role instructions as the system message,
// the caller's input as the user message.
func (c *Completer) Complete(ctx context.Context, input string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.instructions},
			{Role: openai.ChatMessageRoleUser, Content: input},
		},
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)

	if err != nil {
		metrics.CompletionRequestsTotal.WithLabelValues(c.role, c.model, "error").Inc()
		return "", fmt.Errorf("%s completion: %w", c.role, err)
	}

	if len(resp.Choices) == 0 {
		metrics.CompletionRequestsTotal.WithLabelValues(c.role, c.model, "error").Inc()
		return "", fmt.Errorf("%s completion returned no choices", c.role)
	}

	metrics.CompletionRequestsTotal.WithLabelValues(c.role, c.model, "success").Inc()
	metrics.CompletionRequestDuration.WithLabelValues(c.role, c.model).
		Observe(time.Since(start).Seconds())

	c.logger.Debug("Completion finished",
		zap.String("role", c.role),
		zap.String("model", c.model),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return resp.Choices[0].Message.Content, nil
}
