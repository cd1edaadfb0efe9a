package intent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tbxark/intentagent/modeltest"
)

func TestToolBasedClassifier(t *testing.T) {
	chatModel := modeltest.New(modeltest.Text("B"))
	c := NewToolBasedClassifier(chatModel)

	label, ok, err := c.Classify(context.Background(), []string{"否定", "订单", "其他"}, "查一下订单")
	if err != nil {
		t.Fatalf("分类失败: %v", err)
	}
	if !ok || label != "订单" {
		t.Errorf("期望 (订单, true)，实际为 (%q, %v)", label, ok)
	}
	system := chatModel.LastSystemPrompt()
	if !strings.Contains(system, `{"A":"否定","B":"订单","C":"其他"}`) {
		t.Errorf("系统提示词缺少标签列表: %s", system)
	}
	if chatModel.LastUserPrompt() != "查一下订单" {
		t.Errorf("用户消息应为原始文本，实际为 %q", chatModel.LastUserPrompt())
	}
}

func TestToolBasedClassifierUnknownLetter(t *testing.T) {
	c := NewToolBasedClassifier(modeltest.New(modeltest.Text("我觉得是订单")))
	_, ok, err := c.Classify(context.Background(), []string{"订单"}, "x")
	if err != nil {
		t.Fatalf("无法识别的回复不应返回错误: %v", err)
	}
	if ok {
		t.Error("无法识别的回复应视为未匹配")
	}
}

func TestToolBasedClassifierModelError(t *testing.T) {
	boom := errors.New("unavailable")
	c := NewToolBasedClassifier(modeltest.New(modeltest.Fail(boom)))
	if _, _, err := c.Classify(context.Background(), []string{"订单"}, "x"); !errors.Is(err, boom) {
		t.Errorf("期望透传模型错误，实际为 %v", err)
	}
}

func TestToolBasedClassifierCustomPrompt(t *testing.T) {
	chatModel := modeltest.New(modeltest.Text("A"))
	c := NewToolBasedClassifier(chatModel, WithClassifySystemPromptTemplate("tags=%s"))
	if _, _, err := c.Classify(context.Background(), []string{"x"}, "x"); err != nil {
		t.Fatalf("分类失败: %v", err)
	}
	if got := chatModel.LastSystemPrompt(); got != `tags={"A":"x"}` {
		t.Errorf("自定义提示词未生效: %s", got)
	}
}
