// Package modeltest provides a scripted chat model for tests.
package modeltest

import (
	"context"
	"errors"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

var ErrExhausted = errors.New("modeltest: no scripted reply left")

var _ model.ToolCallingChatModel = (*ChatModel)(nil)

// Call records one Generate or Stream invocation.
type Call struct {
	Messages []*schema.Message
	Options  *model.Options
}

// ChatModel replays scripted replies in order and records every call.
type ChatModel struct {
	mu      sync.Mutex
	replies []Reply
	calls   []Call
	tools   []*schema.ToolInfo
}

// Reply is either a message or an error returned for one call.
type Reply struct {
	Message *schema.Message
	Err     error
}

func New(replies ...Reply) *ChatModel {
	return &ChatModel{replies: replies}
}

func Text(content string) Reply {
	return Reply{Message: schema.AssistantMessage(content, nil)}
}

func ToolCall(name, arguments string) Reply {
	return Reply{Message: schema.AssistantMessage("", []schema.ToolCall{{
		ID:       "call_" + name,
		Function: schema.FunctionCall{Name: name, Arguments: arguments},
	}})}
}

func Fail(err error) Reply {
	return Reply{Err: err}
}

func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Messages: input, Options: model.GetCommonOptions(nil, opts...)})
	if len(m.replies) == 0 {
		return nil, ErrExhausted
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	return r.Message, r.Err
}

func (m *ChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (m *ChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tools = tools
	return m, nil
}

func (m *ChatModel) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// LastUserPrompt returns the content of the last user message of the last call.
func (m *ChatModel) LastUserPrompt() string {
	calls := m.Calls()
	if len(calls) == 0 {
		return ""
	}
	msgs := calls[len(calls)-1].Messages
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == schema.User {
			return msgs[i].Content
		}
	}
	return ""
}

// LastSystemPrompt returns the content of the first system message of the last call.
func (m *ChatModel) LastSystemPrompt() string {
	calls := m.Calls()
	if len(calls) == 0 {
		return ""
	}
	for _, msg := range calls[len(calls)-1].Messages {
		if msg.Role == schema.System {
			return msg.Content
		}
	}
	return ""
}
