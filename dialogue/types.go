package dialogue

import "context"

// Phraser turns a structured hint context into one sentence for the user.
type Phraser interface {
	Phrase(ctx context.Context, instruction, content string) (string, error)
}

type PhraserFunc func(ctx context.Context, instruction, content string) (string, error)

func (f PhraserFunc) Phrase(ctx context.Context, instruction, content string) (string, error) {
	return f(ctx, instruction, content)
}
