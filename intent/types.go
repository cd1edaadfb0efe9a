package intent

import "context"

// Classifier picks one label out of a closed, ordered candidate list.
// ok is false when the collaborator answered with nothing it was offered;
// that is a normal outcome, not an error.
type Classifier interface {
	Classify(ctx context.Context, labels []string, text string) (label string, ok bool, err error)
}

type ClassifierFunc func(ctx context.Context, labels []string, text string) (string, bool, error)

func (f ClassifierFunc) Classify(ctx context.Context, labels []string, text string) (string, bool, error) {
	return f(ctx, labels, text)
}
