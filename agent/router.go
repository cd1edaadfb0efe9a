package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cloudwego/eino/callbacks"
	"github.com/tbxark/intentagent/catalog"
	"github.com/tbxark/intentagent/dialogue"
	"github.com/tbxark/intentagent/extract"
	"github.com/tbxark/intentagent/intent"
	"github.com/tbxark/intentagent/merge"
	"github.com/tbxark/intentagent/retry"
	"github.com/tbxark/intentagent/slot"
	"github.com/tbxark/intentagent/types"
)

// Router is the per-turn dialogue state machine. It holds no conversation
// state: every turn reads the caller's memory and returns a new one.
type Router struct {
	catalog    *catalog.Catalog
	classifier intent.Classifier
	extractor  extract.Extractor
	composer   *dialogue.Composer
	opts       routerOptions
}

func NewRouter(
	cat *catalog.Catalog,
	classifier intent.Classifier,
	extractor extract.Extractor,
	phraser dialogue.Phraser,
	opts ...Option,
) (*Router, error) {
	if cat == nil {
		return nil, errors.New("router: catalog is required")
	}
	if classifier == nil {
		return nil, errors.New("router: classifier is required")
	}
	if extractor == nil {
		return nil, errors.New("router: extractor is required")
	}
	options := routerOptions{
		retry:       retry.Default(),
		now:         time.Now,
		labels:      DefaultLabels(),
		instruction: dialogue.DefaultInstruction,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if err := options.labels.validate(cat); err != nil {
		return nil, err
	}
	return &Router{
		catalog:    cat,
		classifier: classifier,
		extractor:  extractor,
		composer:   dialogue.NewComposer(phraser, dialogue.WithInstruction(options.instruction)),
		opts:       options,
	}, nil
}

// Resolve runs one turn over serialized memory. An empty blob starts a new conversation.
func (r *Router) Resolve(ctx context.Context, text string, blob []byte) ([]byte, error) {
	mem, err := types.DecodeMemory(blob)
	if err != nil {
		return nil, err
	}
	out, err := r.Step(ctx, text, mem)
	if err != nil {
		return nil, err
	}
	return types.EncodeMemory(out)
}

// Step runs one turn. It fails only on unrecognized memory or a cancelled
// context; collaborator failures are turned into a [stream] hand-off.
func (r *Router) Step(ctx context.Context, text string, mem *types.Memory) (*types.Memory, error) {
	if mem != nil && !mem.Flag.Valid() {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownFlag, mem.Flag)
	}
	ctx = callbacks.EnsureRunInfo(ctx, "IntentRouter", "Router")
	ctx = callbacks.OnStart(ctx, map[string]any{
		"input":  text,
		"memory": mem,
	})

	out, err := r.route(ctx, text, mem)
	if err != nil {
		callbacks.OnError(ctx, err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		out = r.handleError(err, text, mem)
	}

	callbacks.OnEnd(ctx, map[string]any{
		"memory": out,
		"flag":   string(out.Flag),
	})
	return out, nil
}

func (r *Router) route(ctx context.Context, text string, mem *types.Memory) (*types.Memory, error) {
	if mem == nil {
		return r.enter(ctx, text)
	}
	if mem.Flag.Terminal() {
		slog.Debug("terminal memory left unchanged", "flag", mem.Flag)
		return mem.Clone(), nil
	}
	if !mem.Bound() {
		return r.enter(ctx, text)
	}
	in, ok := r.catalog.Lookup(mem.Intent)
	if !ok {
		slog.Warn("memory intent not in catalog, starting over", "intent", mem.Intent, "err", types.ErrUnknownIntent)
		return r.enter(ctx, text)
	}

	var (
		out *types.Memory
		err error
	)
	switch mem.Flag {
	case types.FlagCallback:
		out, err = r.onCallback(ctx, text, mem, in)
	case types.FlagDoubt:
		out, err = r.onDoubt(ctx, text, mem, in)
	case types.FlagConfirm:
		out, err = r.onConfirm(ctx, text, mem, in)
	}
	if err != nil {
		return nil, err
	}
	if out == nil {
		slog.Debug("continuation fell through, starting over", "intent", mem.Intent, "flag", mem.Flag)
		return r.enter(ctx, text)
	}
	return out, nil
}

func (r *Router) enter(ctx context.Context, text string) (*types.Memory, error) {
	l := r.opts.labels
	mem := types.NewMemory(text)

	label, ok, err := r.classify(ctx, l.entry(r.catalog), text)
	if err != nil {
		return nil, err
	}
	switch {
	case !ok:
		mem.Flag = types.FlagStream
		return mem, nil
	case slices.Contains(l.Reject, label):
		mem.Hint = l.RejectText
		mem.Flag = types.FlagReject
		return mem, nil
	case label == l.ChitChat:
		mem.Hint = l.ChitChatText
		mem.Flag = types.FlagStream
		return mem, nil
	}
	guess, ok := r.catalog.Lookup(label)
	if !ok {
		mem.Flag = types.FlagStream
		return mem, nil
	}

	matched, ok := r.catalog.Match(text)
	if !ok {
		mem.Intent = guess.Label
		mem.Hint = l.doubtHint(guess.Tool)
		mem.Flag = types.FlagDoubt
		return mem, nil
	}
	in, _ := r.catalog.Lookup(matched)
	mem.Intent = in.Label
	call, err := r.extract(ctx, in, text+"\n"+in.HintAt(r.opts.now()))
	if err != nil {
		return nil, err
	}
	if call == nil {
		mem.Flag = types.FlagStream
		return mem, nil
	}
	r.accept(ctx, mem, in, *call)
	return mem, nil
}

func (r *Router) onCallback(ctx context.Context, text string, mem *types.Memory, in catalog.Intent) (*types.Memory, error) {
	if r.opts.reconfirm {
		label, ok, err := r.classify(ctx, r.opts.labels.reconfirm(r.catalog), text)
		if err != nil {
			return nil, err
		}
		if !ok || label != in.Label {
			slog.Debug("callback intent not re-confirmed", "intent", in.Label, "label", label)
			return nil, nil
		}
	}
	return r.continueExtraction(ctx, text, mem, in)
}

func (r *Router) onDoubt(ctx context.Context, text string, mem *types.Memory, in catalog.Intent) (*types.Memory, error) {
	d := r.opts.labels.doubt(in.Tool)
	label, ok, err := r.classify(ctx, d.labels, text)
	if err != nil {
		return nil, err
	}
	switch {
	case ok && d.isAccept(label):
		return r.continueExtraction(ctx, text, mem, in)
	case ok && d.isReject(label):
		next := mem.Clone()
		next.Flag = types.FlagStream
		return next, nil
	}
	return nil, nil
}

func (r *Router) onConfirm(ctx context.Context, text string, mem *types.Memory, in catalog.Intent) (*types.Memory, error) {
	d := r.opts.labels.confirm(in.Tool)
	label, ok, err := r.classify(ctx, d.labels, text)
	if err != nil {
		return nil, err
	}
	switch {
	case ok && d.isAccept(label):
		next := mem.Clone()
		next.Flag = types.FlagFunction
		return next, nil
	case ok && d.isReject(label):
		next := mem.Clone()
		next.Flag = types.FlagStream
		// A successful re-extraction overrides the hand-off.
		retried, err := r.continueExtraction(ctx, text, next, in)
		if err != nil {
			return nil, err
		}
		if retried != nil {
			return retried, nil
		}
		return next, nil
	}
	return nil, nil
}

// continueExtraction re-extracts over the accumulated question. A nil
// memory means nothing usable was extracted.
func (r *Router) continueExtraction(ctx context.Context, text string, mem *types.Memory, in catalog.Intent) (*types.Memory, error) {
	next := mem.Clone()
	next.Question = joinQuestion(mem.Question, text)
	call, err := r.extract(ctx, in, next.Question+"\n"+in.HintAt(r.opts.now()))
	if err != nil {
		return nil, err
	}
	if call == nil {
		return nil, nil
	}
	r.accept(ctx, next, in, *call)
	return next, nil
}

// accept stores a structured extraction and moves to [comfirm] or [callback].
// When the arguments did not change the previous slot hint is kept and the
// phraser is not called again.
func (r *Router) accept(ctx context.Context, mem *types.Memory, in catalog.Intent, call types.ToolCall) {
	if r.opts.mergeArgs && len(mem.Answer.Arguments) > 0 {
		call.Arguments = merge.DeepMerge(mem.Answer.Arguments, call.Arguments)
	}
	unchanged := (mem.Flag == types.FlagCallback || mem.Flag == types.FlagConfirm) &&
		mem.Hint != "" &&
		len(mem.Answer.Arguments) > 0 &&
		merge.Equal(call.Arguments, mem.Answer.Arguments)
	mem.Answer = call
	report := slot.Analyze(&call, in.Tool)
	if unchanged {
		slog.Debug("extraction unchanged, keeping hint", "intent", in.Label)
	} else {
		mem.Hint = r.composer.Compose(ctx, in.Label, report)
	}
	if report.AllRequiredFilled {
		mem.Flag = types.FlagConfirm
	} else {
		mem.Flag = types.FlagCallback
	}
	slog.Debug("slots analyzed", "intent", in.Label, "missing", report.MissingNames(), "flag", mem.Flag)
}

type classification struct {
	label string
	ok    bool
}

func (r *Router) classify(ctx context.Context, labels []string, text string) (string, bool, error) {
	c, err := retry.Do(ctx, r.opts.retry, "classify", func(ctx context.Context) (classification, error) {
		label, ok, err := r.classifier.Classify(ctx, labels, text)
		return classification{label: label, ok: ok}, err
	})
	if err != nil {
		return "", false, fmt.Errorf("classify: %w", err)
	}
	if c.ok && !slices.Contains(labels, c.label) {
		c.ok = false
	}
	slog.Debug("classified", "label", c.label, "ok", c.ok)
	return c.label, c.ok, nil
}

// extract returns nil when the extractor found no structured call.
func (r *Router) extract(ctx context.Context, in catalog.Intent, text string) (*types.ToolCall, error) {
	res, err := retry.Do(ctx, r.opts.retry, "extract", func(ctx context.Context) (*types.Extraction, error) {
		return r.extractor.Extract(ctx, &extract.Request{Tool: in.Tool, Text: text})
	})
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", in.Tool.Name, err)
	}
	call, ok := res.Structured()
	if !ok {
		kind := types.NoCall
		if res != nil {
			kind = res.Kind
		}
		slog.Debug("no structured extraction", "intent", in.Label, "kind", kind.String())
		return nil, nil
	}
	return call, nil
}

func (r *Router) handleError(err error, text string, mem *types.Memory) *types.Memory {
	slog.Warn("collaborator unavailable, handing off", "err", err)
	out := types.NewMemory(text)
	if mem.Bound() {
		out = mem.Clone()
	}
	out.Hint = r.opts.labels.UnavailableText
	out.Flag = types.FlagStream
	return out
}

func joinQuestion(question, text string) string {
	if question == "" {
		return text
	}
	return question + "\n" + text
}
