package intent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// MaxLabels bounds a candidate list to the letters A-Z.
const MaxLabels = 26

var (
	ErrTooManyLabels = errors.New("too many candidate labels")
	ErrNoLabels      = errors.New("no candidate labels")
)

// Choices assigns the letters A-Z to labels in list order.
type Choices struct {
	labels []string
}

func NewChoices(labels []string) (*Choices, error) {
	if len(labels) == 0 {
		return nil, ErrNoLabels
	}
	if len(labels) > MaxLabels {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyLabels, len(labels), MaxLabels)
	}
	return &Choices{labels: append([]string(nil), labels...)}, nil
}

func (c *Choices) Letter(i int) string {
	return string(rune('A' + i))
}

// TagList renders {"A": label, ...} for the prompt.
func (c *Choices) TagList() (string, error) {
	tags := make(map[string]string, len(c.labels))
	for i, l := range c.labels {
		tags[c.Letter(i)] = l
	}
	s, err := sonic.ConfigStd.MarshalToString(tags)
	if err != nil {
		return "", fmt.Errorf("marshal tag list: %w", err)
	}
	return s, nil
}

// Decode maps a reply back to its label. Only a bare assigned letter counts.
func (c *Choices) Decode(reply string) (string, bool) {
	reply = strings.TrimSpace(reply)
	if len(reply) != 1 {
		return "", false
	}
	i := int(reply[0]) - 'A'
	if i < 0 || i >= len(c.labels) {
		return "", false
	}
	return c.labels[i], true
}
