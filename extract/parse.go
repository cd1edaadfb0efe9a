package extract

import (
	"regexp"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/tbxark/intentagent/types"
)

var toolCallBlock = regexp.MustCompile(`(?s)<tool_call>(.*?)</tool_call>`)

// ParseToolCallBlock reads the first <tool_call> block of a model reply.
// No block gives NoCall; a block that is not {"name", "arguments"} gives the
// whole reply back as RawFallback.
func ParseToolCallBlock(text string) *types.Extraction {
	if strings.TrimSpace(text) == "" {
		return types.NoToolCall()
	}
	m := toolCallBlock.FindStringSubmatch(text)
	if m == nil {
		return types.NoToolCall()
	}
	call, ok := decodeToolCall(strings.TrimSpace(m[1]))
	if !ok {
		return types.RawText(text)
	}
	return types.StructuredCall(call)
}

func decodeToolCall(body string) (types.ToolCall, bool) {
	var raw struct {
		Name      *string `json:"name"`
		Arguments any     `json:"arguments"`
	}
	if err := sonic.UnmarshalString(body, &raw); err != nil || raw.Name == nil {
		return types.ToolCall{}, false
	}
	args, ok := decodeArguments(raw.Arguments)
	if !ok {
		return types.ToolCall{}, false
	}
	return types.ToolCall{Name: *raw.Name, Arguments: args}, true
}

// decodeArguments accepts an object or a string holding one.
func decodeArguments(v any) (map[string]any, bool) {
	switch a := v.(type) {
	case map[string]any:
		return a, true
	case string:
		var args map[string]any
		if err := sonic.UnmarshalString(a, &args); err != nil || args == nil {
			return nil, false
		}
		return args, true
	default:
		return nil, false
	}
}
