package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/intentagent/types"
)

// DefaultExtractSystemPromptTemplate receives the tool JSON in its "%s".
const DefaultExtractSystemPromptTemplate = `你是一个智能助手，你可以调用以下工具来回答用户的问题，工具的参数必须从用户的问题中提取，不能自己编造参数值：
%s
Response in NORMAL_MODE.`

type extractorOptions struct {
	systemPromptTemplate string
}

type ExtractorOption func(*extractorOptions)

func WithExtractSystemPromptTemplate(tpl string) ExtractorOption {
	return func(o *extractorOptions) {
		o.systemPromptTemplate = tpl
	}
}

func applyExtractorOptions(opts []ExtractorOption) extractorOptions {
	options := extractorOptions{systemPromptTemplate: DefaultExtractSystemPromptTemplate}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}

// TagExtractor describes the tool in the system prompt and reads the
// <tool_call> block the model writes back.
type TagExtractor struct {
	chatModel            model.BaseChatModel
	systemPromptTemplate string
}

func NewTagExtractor(chatModel model.BaseChatModel, opts ...ExtractorOption) *TagExtractor {
	options := applyExtractorOptions(opts)
	return &TagExtractor{
		chatModel:            chatModel,
		systemPromptTemplate: options.systemPromptTemplate,
	}
}

func (e *TagExtractor) Extract(ctx context.Context, req *Request) (*types.Extraction, error) {
	toolJSON, err := ToolJSON(req.Tool)
	if err != nil {
		return nil, err
	}
	messages := []*schema.Message{
		schema.SystemMessage(fmt.Sprintf(e.systemPromptTemplate, toolJSON)),
		schema.UserMessage(req.Text),
	}
	resp, err := e.chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("LLM call failed: %w", err)
	}
	result := ParseToolCallBlock(resp.Content)
	slog.Debug("extracted", "tool", req.Tool.Name, "kind", result.Kind.String())
	return result, nil
}
