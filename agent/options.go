package agent

import (
	"time"

	"github.com/tbxark/intentagent/retry"
)

type routerOptions struct {
	reconfirm   bool
	mergeArgs   bool
	retry       retry.Policy
	now         func() time.Time
	labels      Labels
	instruction string
}

type Option func(*routerOptions)

// WithCallbackReconfirm re-classifies a [callback] turn against the catalog
// and continues only when the bound intent is picked again.
func WithCallbackReconfirm(enabled bool) Option {
	return func(o *routerOptions) {
		o.reconfirm = enabled
	}
}

// WithArgumentMerge keeps previously filled slots when a re-extraction
// leaves them empty.
func WithArgumentMerge(enabled bool) Option {
	return func(o *routerOptions) {
		o.mergeArgs = enabled
	}
}

func WithRetry(p retry.Policy) Option {
	return func(o *routerOptions) {
		o.retry = p
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *routerOptions) {
		if now != nil {
			o.now = now
		}
	}
}

func WithLabels(labels Labels) Option {
	return func(o *routerOptions) {
		o.labels = labels
	}
}

// WithHintInstruction overrides the system instruction sent to the phraser.
func WithHintInstruction(instruction string) Option {
	return func(o *routerOptions) {
		o.instruction = instruction
	}
}
