package slot

import (
	"github.com/tbxark/intentagent/merge"
	"github.com/tbxark/intentagent/types"
)

// Sentinel is the placeholder extractors emit for a slot they could not fill.
const Sentinel = "NONE"

// IsPlaceholder reports whether v counts as "no value": nil, a blank string,
// or the sentinel in any case.
func IsPlaceholder(v any) bool {
	return merge.IsPlaceholder(v)
}

// Analyze classifies every declared slot of tool as filled or missing and
// decides readiness. With an explicit required set only those slots gate
// readiness. Without one every declared slot must be filled, and a tool that
// declares no slots is never ready.
func Analyze(call *types.ToolCall, tool types.ToolDescriptor) types.Report {
	var args map[string]any
	if call != nil {
		args = call.Arguments
	}
	report := types.Report{
		HasValue:      []types.SlotValue{},
		MissingOrNone: []types.SlotValue{},
	}
	filled := make(map[string]bool, len(tool.Slots))
	allFilled := len(tool.Slots) > 0
	for _, s := range tool.Slots {
		v := args[s.Name]
		if IsPlaceholder(v) {
			report.MissingOrNone = append(report.MissingOrNone, types.SlotValue{Name: s.Name, Value: v})
			allFilled = false
			continue
		}
		report.HasValue = append(report.HasValue, types.SlotValue{Name: s.Name, Value: v})
		filled[s.Name] = true
	}

	if len(tool.Required) > 0 {
		report.AllRequiredFilled = true
		for _, r := range tool.Required {
			if !filled[r] {
				report.AllRequiredFilled = false
				break
			}
		}
		return report
	}
	report.AllRequiredFilled = allFilled
	return report
}
