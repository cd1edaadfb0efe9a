package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/intentagent/modeltest"
	"github.com/tbxark/intentagent/types"
)

func TestTagExtractor(t *testing.T) {
	chatModel := modeltest.New(modeltest.Text(`<tool_call>{"name":"get_order_data","arguments":{"开始时间":"NONE","结束时间":"NONE"}}</tool_call>`))
	e := NewTagExtractor(chatModel)

	got, err := e.Extract(context.Background(), &Request{Tool: orderTool, Text: "查询一下订单\n今年是2025年，本月是01月"})
	if err != nil {
		t.Fatalf("Extract 失败: %v", err)
	}
	call, ok := got.Structured()
	if !ok {
		t.Fatalf("期望结构化结果，实际为 %s", got.Kind)
	}
	if call.Name != "get_order_data" || call.Arguments["开始时间"] != "NONE" {
		t.Errorf("结果不符: %+v", call)
	}

	system := chatModel.LastSystemPrompt()
	if !strings.Contains(system, "不能自己编造参数值") || !strings.Contains(system, "get_order_data") {
		t.Errorf("系统提示词不符: %s", system)
	}
	if !strings.HasSuffix(system, "Response in NORMAL_MODE.") {
		t.Errorf("系统提示词结尾不符: %s", system)
	}
	if chatModel.LastUserPrompt() != "查询一下订单\n今年是2025年，本月是01月" {
		t.Errorf("用户提示词不符: %q", chatModel.LastUserPrompt())
	}
}

func TestTagExtractorNoCall(t *testing.T) {
	e := NewTagExtractor(modeltest.New(modeltest.Text("您好")))
	got, err := e.Extract(context.Background(), &Request{Tool: orderTool, Text: "你好"})
	if err != nil {
		t.Fatalf("Extract 失败: %v", err)
	}
	if got.Kind != types.NoCall {
		t.Errorf("期望 NoCall，实际为 %s", got.Kind)
	}
}

func TestTagExtractorModelError(t *testing.T) {
	boom := errors.New("boom")
	e := NewTagExtractor(modeltest.New(modeltest.Fail(boom)))
	if _, err := e.Extract(context.Background(), &Request{Tool: orderTool, Text: "x"}); !errors.Is(err, boom) {
		t.Errorf("期望包装 boom，实际为 %v", err)
	}
}

func TestTagExtractorCustomPrompt(t *testing.T) {
	chatModel := modeltest.New(modeltest.Text(""))
	e := NewTagExtractor(chatModel, WithExtractSystemPromptTemplate("tools: %s"))
	if _, err := e.Extract(context.Background(), &Request{Tool: orderTool, Text: "x"}); err != nil {
		t.Fatalf("Extract 失败: %v", err)
	}
	if !strings.HasPrefix(chatModel.LastSystemPrompt(), "tools: {") {
		t.Errorf("自定义提示词未生效: %s", chatModel.LastSystemPrompt())
	}
}

func TestFunctionCallExtractor(t *testing.T) {
	chatModel := modeltest.New(modeltest.ToolCall("get_order_data", `{"开始时间":"2025-01-01 00:00:00","结束时间":"2025-01-31 23:59:59"}`))
	e := NewFunctionCallExtractor(chatModel)

	got, err := e.Extract(context.Background(), &Request{Tool: orderTool, Text: "从1月1号到1月31号"})
	if err != nil {
		t.Fatalf("Extract 失败: %v", err)
	}
	call, ok := got.Structured()
	if !ok {
		t.Fatalf("期望结构化结果，实际为 %s", got.Kind)
	}
	if call.Arguments["结束时间"] != "2025-01-31 23:59:59" {
		t.Errorf("参数不符: %+v", call.Arguments)
	}

	opts := chatModel.Calls()[0].Options
	if len(opts.Tools) != 1 || opts.Tools[0].Name != "get_order_data" {
		t.Errorf("未绑定工具: %+v", opts.Tools)
	}
	if opts.ToolChoice == nil || *opts.ToolChoice != schema.ToolChoiceForced {
		t.Error("应强制调用工具")
	}
}

func TestFunctionCallExtractorFallbacks(t *testing.T) {
	e := NewFunctionCallExtractor(modeltest.New(
		modeltest.Text("我不知道"),
		modeltest.ToolCall("get_order_data", "not json"),
	))

	got, err := e.Extract(context.Background(), &Request{Tool: orderTool, Text: "x"})
	if err != nil {
		t.Fatalf("Extract 失败: %v", err)
	}
	if got.Kind != types.NoCall {
		t.Errorf("无工具调用时期望 NoCall，实际为 %s", got.Kind)
	}

	got, err = e.Extract(context.Background(), &Request{Tool: orderTool, Text: "x"})
	if err != nil {
		t.Fatalf("Extract 失败: %v", err)
	}
	if got.Kind != types.RawFallback || got.Raw != "not json" {
		t.Errorf("参数无法解析时期望 RawFallback，实际为 %+v", got)
	}
}
