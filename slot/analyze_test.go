package slot

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tbxark/intentagent/types"
)

func TestAnalyzeWithRequiredSet(t *testing.T) {
	tool := types.ToolDescriptor{
		Name:     "get_order_data",
		Slots:    []types.Slot{{Name: "start_date"}, {Name: "end_date"}, {Name: "note"}},
		Required: []string{"start_date", "end_date"},
	}
	call := &types.ToolCall{Name: "get_order_data", Arguments: map[string]any{
		"start_date": "2025-01-01",
		"end_date":   "NONE",
		"note":       "x",
	}}

	report := Analyze(call, tool)
	if report.AllRequiredFilled {
		t.Error("end_date 为 NONE，不应判定为已填写完整")
	}
	wantMissing := []types.SlotValue{{Name: "end_date", Value: "NONE"}}
	if diff := cmp.Diff(wantMissing, report.MissingOrNone); diff != "" {
		t.Errorf("missing_or_none 不符 (-want +got):\n%s", diff)
	}
	wantHas := []types.SlotValue{{Name: "start_date", Value: "2025-01-01"}, {Name: "note", Value: "x"}}
	if diff := cmp.Diff(wantHas, report.HasValue); diff != "" {
		t.Errorf("has_value 不符 (-want +got):\n%s", diff)
	}
}

func TestAnalyzeOptionalSlotNeverBlocks(t *testing.T) {
	tool := types.ToolDescriptor{
		Slots:    []types.Slot{{Name: "a"}, {Name: "b"}},
		Required: []string{"a"},
	}
	report := Analyze(&types.ToolCall{Arguments: map[string]any{"a": "1"}}, tool)
	if !report.AllRequiredFilled {
		t.Error("可选参数缺失不应阻止就绪")
	}
}

func TestAnalyzeWithoutRequiredSet(t *testing.T) {
	tool := types.ToolDescriptor{Slots: []types.Slot{{Name: "a"}}}

	if Analyze(&types.ToolCall{Arguments: map[string]any{"a": ""}}, tool).AllRequiredFilled {
		t.Error("空字符串不应视为已填写")
	}
	if !Analyze(&types.ToolCall{Arguments: map[string]any{"a": "v"}}, tool).AllRequiredFilled {
		t.Error("所有参数已填写，应判定为就绪")
	}
}

func TestAnalyzeZeroSlotToolNeverReady(t *testing.T) {
	tool := types.ToolDescriptor{Name: "ping"}
	for _, call := range []*types.ToolCall{nil, {}, {Arguments: map[string]any{"x": "y"}}} {
		if Analyze(call, tool).AllRequiredFilled {
			t.Errorf("无参数工具不应判定为就绪: %+v", call)
		}
	}
}

func TestAnalyzeAbsentAndPlaceholders(t *testing.T) {
	tool := types.ToolDescriptor{Slots: []types.Slot{
		{Name: "absent"}, {Name: "null"}, {Name: "blank"}, {Name: "lower"}, {Name: "number"},
	}}
	call := &types.ToolCall{Arguments: map[string]any{
		"null":   nil,
		"blank":  "   ",
		"lower":  " none ",
		"number": float64(3),
	}}
	report := Analyze(call, tool)
	want := []types.SlotValue{
		{Name: "absent", Value: nil},
		{Name: "null", Value: nil},
		{Name: "blank", Value: "   "},
		{Name: "lower", Value: " none "},
	}
	if diff := cmp.Diff(want, report.MissingOrNone); diff != "" {
		t.Errorf("missing_or_none 不符 (-want +got):\n%s", diff)
	}
	if len(report.HasValue) != 1 || report.HasValue[0].Name != "number" {
		t.Errorf("非字符串值应视为已填写: %+v", report.HasValue)
	}
}

func TestAnalyzeKeepsDeclarationOrder(t *testing.T) {
	tool := types.ToolDescriptor{Slots: []types.Slot{{Name: "z"}, {Name: "a"}, {Name: "m"}}}
	report := Analyze(nil, tool)
	got := report.MissingNames()
	if diff := cmp.Diff([]string{"z", "a", "m"}, got); diff != "" {
		t.Errorf("顺序不符 (-want +got):\n%s", diff)
	}
}

func TestAnalyzeRepeatedSlotStillReady(t *testing.T) {
	tool := types.ToolDescriptor{Name: "t", Slots: []types.Slot{{Name: "a"}, {Name: "a"}}}
	report := Analyze(&types.ToolCall{Arguments: map[string]any{"a": "v"}}, tool)
	if !report.AllRequiredFilled {
		t.Error("唯一的槽位已填写，应判定为完整")
	}
}
