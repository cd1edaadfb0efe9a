package dialogue

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tbxark/intentagent/types"
)

const DefaultInstruction = "你是一个助手，请用户核对参数，用一句有礼貌提示语，说人话，有一说一，不要凭空编造。"

// Composer builds the hint shown after an extraction. A failing phraser
// yields an empty hint, never an error.
type Composer struct {
	phraser     Phraser
	instruction string
}

type ComposerOption func(*Composer)

func WithInstruction(instruction string) ComposerOption {
	return func(c *Composer) {
		c.instruction = instruction
	}
}

func NewComposer(phraser Phraser, opts ...ComposerOption) *Composer {
	c := &Composer{phraser: phraser, instruction: DefaultInstruction}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Composer) Compose(ctx context.Context, label string, report types.Report) string {
	if c.phraser == nil {
		return ""
	}
	content := types.FormatHintContext(label, report)
	out, err := c.phraser.Phrase(ctx, c.instruction, content)
	if err != nil {
		slog.Warn("phrase hint failed", "intent", label, "err", err)
		return ""
	}
	return strings.TrimSpace(out)
}
