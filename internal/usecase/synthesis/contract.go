package synthesis

import "context"

// Completer runs one chat completion stage under a fixed role.
type Completer interface {
	Complete(ctx context.Context, input string) (string, error)
}

// Renderer converts text into spoken audio bytes.
type Renderer interface {
	Render(ctx context.Context, text, voice, instructions string) ([]byte, error)
}
