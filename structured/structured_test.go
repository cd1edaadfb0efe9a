package structured

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/intentagent/modeltest"
)

var echoTool = &schema.ToolInfo{Name: "echo", Desc: "echo the input"}

func buildEchoPrompt(ctx context.Context, text string) ([]*schema.Message, error) {
	return []*schema.Message{schema.UserMessage(text)}, nil
}

func TestChainGenerate(t *testing.T) {
	chatModel := modeltest.New(modeltest.ToolCall("echo", `{"reply":"hi"}`))
	chain := NewChain[string](chatModel, buildEchoPrompt, echoTool)

	call, err := chain.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate 失败: %v", err)
	}
	if call.Function.Name != "echo" || call.Function.Arguments != `{"reply":"hi"}` {
		t.Errorf("工具调用不符: %+v", call.Function)
	}

	calls := chatModel.Calls()
	if len(calls) != 1 {
		t.Fatalf("期望 1 次模型调用，实际为 %d", len(calls))
	}
	opts := calls[0].Options
	if len(opts.Tools) != 1 || opts.Tools[0].Name != "echo" {
		t.Errorf("未绑定 echo 工具: %+v", opts.Tools)
	}
	if opts.ToolChoice == nil || *opts.ToolChoice != schema.ToolChoiceForced {
		t.Errorf("应强制调用工具: %v", opts.ToolChoice)
	}
}

func TestChainNoToolCall(t *testing.T) {
	chain := NewChain[string](modeltest.New(modeltest.Text("I refuse")), buildEchoPrompt, echoTool)
	if _, err := chain.Generate(context.Background(), "x"); !errors.Is(err, ErrNoToolCall) {
		t.Errorf("期望 ErrNoToolCall，实际为 %v", err)
	}

	chain = NewChain[string](modeltest.New(modeltest.ToolCall("other", `{}`)), buildEchoPrompt, echoTool)
	if _, err := chain.Generate(context.Background(), "x"); !errors.Is(err, ErrNoToolCall) {
		t.Errorf("调用了其他工具时期望 ErrNoToolCall，实际为 %v", err)
	}
}

func TestChainModelError(t *testing.T) {
	boom := errors.New("boom")
	chain := NewChain[string](modeltest.New(modeltest.Fail(boom)), buildEchoPrompt, echoTool)
	if _, err := chain.Generate(context.Background(), "x"); !errors.Is(err, boom) {
		t.Errorf("期望透传模型错误，实际为 %v", err)
	}
}
