package dialogue

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tbxark/intentagent/modeltest"
	"github.com/tbxark/intentagent/types"
)

var orderReport = types.Report{
	HasValue:      []types.SlotValue{{Name: "开始时间", Value: "2025-01-01 00:00:00"}},
	MissingOrNone: []types.SlotValue{{Name: "结束时间", Value: "NONE"}},
}

func TestComposerWithModel(t *testing.T) {
	chatModel := modeltest.New(modeltest.Text("  请问您想查询到哪一天为止？\n"))
	c := NewComposer(NewToolBasedPhraser(chatModel))

	got := c.Compose(context.Background(), "订单", orderReport)
	if got != "请问您想查询到哪一天为止？" {
		t.Errorf("提示语未去除空白: %q", got)
	}
	if chatModel.LastSystemPrompt() != DefaultInstruction {
		t.Errorf("系统提示词不符: %q", chatModel.LastSystemPrompt())
	}
	user := chatModel.LastUserPrompt()
	for _, want := range []string{"用户的意图：订单", "开始时间", "2025-01-01 00:00:00", "需要补充：结束时间"} {
		if !strings.Contains(user, want) {
			t.Errorf("上下文缺少 %q:\n%s", want, user)
		}
	}
}

func TestComposerSwallowsErrors(t *testing.T) {
	c := NewComposer(NewToolBasedPhraser(modeltest.New(modeltest.Fail(errors.New("down")))))
	if got := c.Compose(context.Background(), "订单", orderReport); got != "" {
		t.Errorf("失败时应返回空提示，实际为 %q", got)
	}
	if got := NewComposer(nil).Compose(context.Background(), "订单", orderReport); got != "" {
		t.Errorf("无 phraser 时应返回空提示，实际为 %q", got)
	}
}

func TestComposerInstruction(t *testing.T) {
	var gotInstruction string
	c := NewComposer(PhraserFunc(func(ctx context.Context, instruction, content string) (string, error) {
		gotInstruction = instruction
		return "ok", nil
	}), WithInstruction("请简短"))
	c.Compose(context.Background(), "订单", types.Report{})
	if gotInstruction != "请简短" {
		t.Errorf("自定义指令未生效: %q", gotInstruction)
	}
}

func TestFailbackPhraser(t *testing.T) {
	down := PhraserFunc(func(ctx context.Context, instruction, content string) (string, error) {
		return "", errors.New("down")
	})
	blank := PhraserFunc(func(ctx context.Context, instruction, content string) (string, error) {
		return "  ", nil
	})
	p := NewFailbackPhraser(down, blank, &LocalPhraser{})

	got, err := p.Phrase(context.Background(), DefaultInstruction, "用户的意图：订单")
	if err != nil {
		t.Fatalf("Phrase 失败: %v", err)
	}
	if got != DefaultLocalPrefix+"\n\n用户的意图：订单" {
		t.Errorf("应回退到本地模板，实际为 %q", got)
	}

	if _, err := NewFailbackPhraser(down).Phrase(context.Background(), "", ""); err == nil {
		t.Error("全部失败时应返回错误")
	}
}
