package types

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
)

func formatValue(v any) string {
	if v == nil {
		return "NONE"
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func formatSlotTable(title string, slots []SlotValue) string {
	if len(slots) == 0 {
		return ""
	}
	var buf strings.Builder
	buf.WriteString(title)
	buf.WriteString("\n")
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header("参数", "值")
	for _, s := range slots {
		_ = table.Append(s.Name, formatValue(s.Value))
	}
	_ = table.Render()
	return strings.TrimRight(buf.String(), "\n")
}

// FormatHintContext renders the phrasing context: the intent, the confirmed
// slots and, when any, the slots still to be supplied.
func FormatHintContext(label string, report Report) string {
	sections := []string{fmt.Sprintf("用户的意图：%s", label)}
	if s := formatSlotTable("核对与确认：", report.HasValue); s != "" {
		sections = append(sections, s)
	} else {
		sections = append(sections, "核对与确认：无")
	}
	if len(report.MissingOrNone) > 0 {
		sections = append(sections, fmt.Sprintf("需要补充：%s", strings.Join(report.MissingNames(), "、")))
	}
	return strings.Join(sections, "\n\n")
}

// FormatSlots lists declared slots as a markdown table for extraction prompts.
func FormatSlots(tool ToolDescriptor) string {
	if len(tool.Slots) == 0 {
		return ""
	}
	var buf strings.Builder
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header("Slot", "Required", "Description")
	for _, s := range tool.Slots {
		required := "no"
		if len(tool.Required) == 0 || tool.IsRequired(s.Name) {
			required = "yes"
		}
		_ = table.Append(s.Name, required, s.Description)
	}
	_ = table.Render()
	return strings.TrimRight(buf.String(), "\n")
}
