package dialogue

import (
	"context"
	"errors"
	"strings"
)

const DefaultLocalPrefix = "请核对以下信息："

// LocalPhraser shows the hint context as is, behind a fixed prefix.
type LocalPhraser struct {
	Prefix string
}

func (p *LocalPhraser) Phrase(ctx context.Context, instruction, content string) (string, error) {
	prefix := p.Prefix
	if prefix == "" {
		prefix = DefaultLocalPrefix
	}
	return prefix + "\n\n" + content, nil
}

type FailbackPhraser struct {
	Phrasers []Phraser
}

func NewFailbackPhraser(phrasers ...Phraser) *FailbackPhraser {
	return &FailbackPhraser{Phrasers: phrasers}
}

// Phrase returns the first non-empty phrasing.
func (p *FailbackPhraser) Phrase(ctx context.Context, instruction, content string) (string, error) {
	var errs []error
	for _, phraser := range p.Phrasers {
		out, err := phraser.Phrase(ctx, instruction, content)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if strings.TrimSpace(out) != "" {
			return out, nil
		}
	}
	return "", errors.Join(errs...)
}
