package synthesis

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docvoice/docvoice/internal/domain"
)

func TestSynthesize_RunsStagesInOrder(t *testing.T) {
	var stages []string
	answer := &mockCompleter{
		completeFn: func(_ context.Context, input string) (string, error) {
			stages = append(stages, "answer")
			if input != "the prompt" {
				t.Errorf("answer input: got %q", input)
			}
			return "spoken answer", nil
		},
	}
	direction := &mockCompleter{
		completeFn: func(_ context.Context, input string) (string, error) {
			stages = append(stages, "direction")
			if input != "spoken answer" {
				t.Errorf("direction input: got %q", input)
			}
			return "warm, steady pace", nil
		},
	}
	renderer := &mockRenderer{
		renderFn: func(_ context.Context, text, voice, instructions string) ([]byte, error) {
			stages = append(stages, "render")
			if text != "spoken answer" || voice != "coral" || instructions != "warm, steady pace" {
				t.Errorf("render args: text=%q voice=%q instructions=%q", text, voice, instructions)
			}
			return []byte("audio"), nil
		},
	}

	svc := newTestService(t, answer, direction, renderer, "")

	out, err := svc.Synthesize(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	if strings.Join(stages, ",") != "answer,direction,render" {
		t.Errorf("stage order: %v", stages)
	}
	if out.Text != "spoken answer" || out.Directions != "warm, steady pace" {
		t.Errorf("answer: %+v", out)
	}

	base := filepath.Base(out.AudioPath)
	if !strings.HasPrefix(base, "response_") || !strings.HasSuffix(base, ".mp3") {
		t.Errorf("audio file name: %q", base)
	}
	body, err := os.ReadFile(out.AudioPath)
	if err != nil {
		t.Fatalf("read audio: %v", err)
	}
	if string(body) != "audio" {
		t.Errorf("audio content: %q", body)
	}
}

func TestSynthesize_DistinctVoicesProduceDistinctFiles(t *testing.T) {
	render := func(_ context.Context, text, voice, _ string) ([]byte, error) {
		return []byte("mp3:" + voice), nil
	}

	coral := newTestService(t, &mockCompleter{}, &mockCompleter{}, &mockRenderer{renderFn: render}, "coral")
	onyx := newTestService(t, &mockCompleter{}, &mockCompleter{}, &mockRenderer{renderFn: render}, "onyx")

	a, err := coral.Synthesize(context.Background(), "p")
	if err != nil {
		t.Fatalf("Synthesize coral: %v", err)
	}
	b, err := onyx.Synthesize(context.Background(), "p")
	if err != nil {
		t.Fatalf("Synthesize onyx: %v", err)
	}

	if a.AudioPath == b.AudioPath {
		t.Error("audio paths must be distinct")
	}

	bodyA, _ := os.ReadFile(a.AudioPath)
	bodyB, _ := os.ReadFile(b.AudioPath)
	if len(bodyA) == 0 || len(bodyB) == 0 {
		t.Fatal("audio files must be non-empty")
	}
	if string(bodyA) == string(bodyB) {
		t.Error("different voices should yield different audio")
	}
}

func TestSynthesize_StageFailuresReportGenericError(t *testing.T) {
	boom := errors.New("upstream down")

	tests := []struct {
		name      string
		answer    *mockCompleter
		direction *mockCompleter
		renderer  *mockRenderer
	}{
		{
			name: "answer stage",
			answer: &mockCompleter{completeFn: func(context.Context, string) (string, error) {
				return "", boom
			}},
			direction: &mockCompleter{},
			renderer:  &mockRenderer{},
		},
		{
			name:   "direction stage",
			answer: &mockCompleter{},
			direction: &mockCompleter{completeFn: func(context.Context, string) (string, error) {
				return "", boom
			}},
			renderer: &mockRenderer{},
		},
		{
			name:      "render stage",
			answer:    &mockCompleter{},
			direction: &mockCompleter{},
			renderer: &mockRenderer{renderFn: func(context.Context, string, string, string) ([]byte, error) {
				return nil, boom
			}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(t, tc.answer, tc.direction, tc.renderer, "coral")

			_, err := svc.Synthesize(context.Background(), "p")
			if !errors.Is(err, domain.ErrSynthesis) {
				t.Errorf("got %v, want ErrSynthesis", err)
			}
			if err != nil && strings.Contains(err.Error(), "upstream down") {
				t.Errorf("stage detail must not leak: %v", err)
			}
		})
	}
}

func TestValidVoice(t *testing.T) {
	if !ValidVoice("coral") || !ValidVoice("alloy") {
		t.Error("known voices rejected")
	}
	if ValidVoice("hal9000") {
		t.Error("unknown voice accepted")
	}
}
