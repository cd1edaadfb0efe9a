package intent

import (
	"context"
	"strings"
)

// LocalClassifier picks the first candidate label whose keywords occur in
// the text. A label with no configured keywords matches on its own text.
type LocalClassifier struct {
	Keywords map[string][]string
}

func NewLocalClassifier(keywords map[string][]string) *LocalClassifier {
	return &LocalClassifier{Keywords: keywords}
}

func (c *LocalClassifier) Classify(ctx context.Context, labels []string, text string) (string, bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return "", false, nil
	}
	for _, label := range labels {
		keywords, ok := c.Keywords[label]
		if !ok {
			keywords = []string{label}
		}
		for _, kw := range keywords {
			if kw != "" && strings.Contains(normalized, strings.ToLower(kw)) {
				return label, true, nil
			}
		}
	}
	return "", false, nil
}

// FailbackClassifier returns the answer of the first classifier that does
// not fail, including "no match". Later classifiers run only after an error.
type FailbackClassifier struct {
	classifiers []Classifier
}

func NewFailbackClassifier(classifiers ...Classifier) *FailbackClassifier {
	return &FailbackClassifier{classifiers: classifiers}
}

func (c *FailbackClassifier) Classify(ctx context.Context, labels []string, text string) (string, bool, error) {
	var lastErr error
	for _, classifier := range c.classifiers {
		label, ok, err := classifier.Classify(ctx, labels, text)
		if err == nil {
			return label, ok, nil
		}
		lastErr = err
	}
	return "", false, lastErr
}
