package intent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// DefaultClassifySystemPromptTemplate is the system prompt of ToolBasedClassifier.
// The single "%s" placeholder receives the lettered tag list.
const DefaultClassifySystemPromptTemplate = `You are a helpful assistant.
You should choose one tag from the tag list:
%s
Just reply with the chosen tag.`

type classifierOptions struct {
	systemPromptTemplate string
}

type ClassifierOption func(*classifierOptions)

func WithClassifySystemPromptTemplate(tpl string) ClassifierOption {
	return func(o *classifierOptions) {
		o.systemPromptTemplate = tpl
	}
}

// ToolBasedClassifier asks a chat model to answer with the letter of one label.
type ToolBasedClassifier struct {
	chatModel            model.BaseChatModel
	systemPromptTemplate string
}

func NewToolBasedClassifier(chatModel model.BaseChatModel, opts ...ClassifierOption) *ToolBasedClassifier {
	options := classifierOptions{systemPromptTemplate: DefaultClassifySystemPromptTemplate}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return &ToolBasedClassifier{
		chatModel:            chatModel,
		systemPromptTemplate: options.systemPromptTemplate,
	}
}

func (c *ToolBasedClassifier) Classify(ctx context.Context, labels []string, text string) (string, bool, error) {
	choices, err := NewChoices(labels)
	if err != nil {
		return "", false, err
	}
	tags, err := choices.TagList()
	if err != nil {
		return "", false, err
	}
	messages := []*schema.Message{
		schema.SystemMessage(fmt.Sprintf(c.systemPromptTemplate, tags)),
		schema.UserMessage(text),
	}
	resp, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", false, fmt.Errorf("LLM call failed: %w", err)
	}
	label, ok := choices.Decode(resp.Content)
	slog.Debug("classified", "reply", resp.Content, "label", label, "ok", ok)
	return label, ok, nil
}
