package openai

import (
	"context"
	"fmt"
	"io"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/docvoice/docvoice/internal/metrics"
)

// Speech renders text to mp3 audio via the speech synthesis API.
type Speech struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// SpeechConfig holds the speech synthesis settings.
type SpeechConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewSpeech creates a speech renderer.
func NewSpeech(cfg *SpeechConfig) *Speech {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Speech{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// Render synthesizes text with the given voice and delivery instructions,
// returning the raw mp3 bytes.
func (s *Speech) Render(ctx context.Context, text, voice, instructions string) ([]byte, error) {
	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          text,
		Voice:          openai.SpeechVoice(voice),
		Instructions:   instructions,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}

	start := time.Now()

	resp, err := s.client.CreateSpeech(ctx, req)
	if err != nil {
		metrics.SpeechRequestsTotal.WithLabelValues(s.model, "error").Inc()
		return nil, fmt.Errorf("create speech: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		metrics.SpeechRequestsTotal.WithLabelValues(s.model, "error").Inc()
		return nil, fmt.Errorf("read speech response: %w", err)
	}

	metrics.SpeechRequestsTotal.WithLabelValues(s.model, "success").Inc()

	s.logger.Debug("Speech rendered",
		zap.String("model", s.model),
		zap.String("voice", voice),
		zap.Int("bytes", len(audio)),
		zap.Duration("took", time.Since(start)),
	)

	return audio, nil
}
