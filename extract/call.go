package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/intentagent/structured"
	"github.com/tbxark/intentagent/types"
)

// FunctionCallExtractor binds the tool natively and forces the model to call it.
type FunctionCallExtractor struct {
	chatModel            model.ToolCallingChatModel
	systemPromptTemplate string
}

func NewFunctionCallExtractor(chatModel model.ToolCallingChatModel, opts ...ExtractorOption) *FunctionCallExtractor {
	options := applyExtractorOptions(opts)
	return &FunctionCallExtractor{
		chatModel:            chatModel,
		systemPromptTemplate: options.systemPromptTemplate,
	}
}

func (e *FunctionCallExtractor) Extract(ctx context.Context, req *Request) (*types.Extraction, error) {
	chain := structured.NewChain[*Request](e.chatModel, e.buildPrompt, ToolInfo(req.Tool))
	call, err := chain.Generate(ctx, req)
	if errors.Is(err, structured.ErrNoToolCall) {
		slog.Debug("extracted", "tool", req.Tool.Name, "kind", types.NoCall.String())
		return types.NoToolCall(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("LLM call failed: %w", err)
	}

	var args map[string]any
	if err := sonic.UnmarshalString(call.Function.Arguments, &args); err != nil {
		slog.Debug("extracted", "tool", req.Tool.Name, "kind", types.RawFallback.String(), "err", err)
		return types.RawText(call.Function.Arguments), nil
	}
	if args == nil {
		args = map[string]any{}
	}
	return types.StructuredCall(types.ToolCall{Name: call.Function.Name, Arguments: args}), nil
}

func (e *FunctionCallExtractor) buildPrompt(ctx context.Context, req *Request) ([]*schema.Message, error) {
	toolJSON, err := ToolJSON(req.Tool)
	if err != nil {
		return nil, err
	}
	return []*schema.Message{
		schema.SystemMessage(fmt.Sprintf(e.systemPromptTemplate, toolJSON)),
		schema.UserMessage(req.Text),
	}, nil
}
