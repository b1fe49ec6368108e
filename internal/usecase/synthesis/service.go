// Package synthesis produces the final answer: a text response, voice
// delivery directions, and a rendered mp3, from a grounding prompt.
package synthesis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docvoice/docvoice/internal/domain"
)

// Answer is the synthesizer output for one query.
type Answer struct {
	Text       string
	Directions string
	AudioPath  string
}

// Service runs the two completion stages and the speech renderer in order.
type Service struct {
	answer    Completer
	direction Completer
	renderer  Renderer
	voice     string
	audioDir  string
	logger    *zap.Logger
}

// Config wires the synthesizer stages.
type Config struct {
	Answer    Completer
	Direction Completer
	Renderer  Renderer
	// Voice used for rendering; DefaultVoice when empty.
	Voice string
	// AudioDir receives response_<uuid>.mp3 files; os.TempDir when empty.
	AudioDir string
	Logger   *zap.Logger
}

// New creates a synthesis service.
func New(cfg Config) *Service {
	voice := cfg.Voice
	if voice == "" {
		voice = DefaultVoice
	}
	audioDir := cfg.AudioDir
	if audioDir == "" {
		audioDir = os.TempDir()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		answer:    cfg.Answer,
		direction: cfg.Direction,
		renderer:  cfg.Renderer,
		voice:     voice,
		audioDir:  audioDir,
		logger:    logger,
	}
}

// Voice returns the voice the service renders with.
func (s *Service) Voice() string { return s.voice }

// Synthesize answers prompt in three stages: text answer, delivery
// directions, then audio rendering with the configured voice. Failures in
// any stage are reported as domain.ErrSynthesis; the failed stage shows up
// only in logs.
func (s *Service) Synthesize(ctx context.Context, prompt string) (*Answer, error) {
	text, err := s.answer.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("answer stage failed", zap.Error(err))
		return nil, domain.ErrSynthesis
	}

	directions, err := s.direction.Complete(ctx, text)
	if err != nil {
		s.logger.Error("direction stage failed", zap.Error(err))
		return nil, domain.ErrSynthesis
	}

	audio, err := s.renderer.Render(ctx, text, s.voice, directions)
	if err != nil {
		s.logger.Error("speech stage failed", zap.Error(err), zap.String("voice", s.voice))
		return nil, domain.ErrSynthesis
	}

	audioPath, err := s.saveAudio(audio)
	if err != nil {
		s.logger.Error("audio write failed", zap.Error(err))
		return nil, domain.ErrSynthesis
	}

	s.logger.Info("answer synthesized",
		zap.String("voice", s.voice),
		zap.String("audio_path", audioPath),
		zap.Int("audio_bytes", len(audio)))

	return &Answer{Text: text, Directions: directions, AudioPath: audioPath}, nil
}

func (s *Service) saveAudio(audio []byte) (string, error) {
	name := fmt.Sprintf("response_%s.mp3", uuid.NewString())
	path := filepath.Join(s.audioDir, name)

	if err := os.WriteFile(path, audio, 0o600); err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}
	return path, nil
}
