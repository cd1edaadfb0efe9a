package testcases

import (
	"context"
	"testing"

	"github.com/tbxark/intentagent/agent"
	"github.com/tbxark/intentagent/types"
)

// TestChitChat 测试关于助手本身的闲聊
func TestChitChat(t *testing.T) {
	t.Parallel()
	r := NewTestRouter(t)

	mem, err := r.Step(context.Background(), "你是谁？", nil)
	if err != nil {
		t.Fatalf("对话失败: %v", err)
	}
	if mem.Flag != types.FlagStream {
		t.Errorf("期望 [stream]，实际为 %s", mem.Flag)
	}
	t.Logf("提示: %s", mem.Hint)
}

// TestNamingDoubtOrCallback 测试起名意图，缺少大部分必填信息
func TestNamingDoubtOrCallback(t *testing.T) {
	t.Parallel()
	r := NewTestRouter(t, WithRouterOptions(agent.WithArgumentMerge(true)))

	mem, err := r.Step(context.Background(), "我想给孩子起名，姓李，男孩", nil)
	if err != nil {
		t.Fatalf("对话失败: %v", err)
	}
	if mem.Intent != "起名" {
		t.Fatalf("期望意图为 '起名'，实际为 '%s'", mem.Intent)
	}
	if mem.Flag != types.FlagCallback {
		t.Errorf("期望 [callback]，实际为 %s", mem.Flag)
	}
	t.Logf("提示: %s", mem.Hint)
	t.Logf("参数: %+v", mem.Answer.Arguments)
}
