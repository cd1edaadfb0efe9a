package dialogue

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

type ToolBasedPhraser struct {
	chatModel model.BaseChatModel
}

func NewToolBasedPhraser(chatModel model.BaseChatModel) *ToolBasedPhraser {
	return &ToolBasedPhraser{chatModel: chatModel}
}

func (p *ToolBasedPhraser) Phrase(ctx context.Context, instruction, content string) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(instruction),
		schema.UserMessage(content),
	}
	resp, err := p.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	return resp.Content, nil
}
