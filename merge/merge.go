// Package merge combines and compares nested argument records.
package merge

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

// IsPlaceholder reports whether v carries no information: nil, a blank
// string or the "NONE" sentinel in any case.
func IsPlaceholder(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "NONE")
}

// DeepMerge returns a new record: values of next override old, nested records
// merge recursively, placeholders in next never overwrite. Neither input is modified.
func DeepMerge(old, next map[string]any) map[string]any {
	merged := cloneMap(old)
	if merged == nil {
		merged = make(map[string]any, len(next))
	}
	for k, v := range next {
		if nv, ok := v.(map[string]any); ok {
			if ov, ok := merged[k].(map[string]any); ok {
				merged[k] = DeepMerge(ov, nv)
				continue
			}
		}
		if IsPlaceholder(v) {
			continue
		}
		merged[k] = cloneValue(v)
	}
	return merged
}

// Equal compares a and b by their JSON form, which is looser than a
// type-strict comparison: numbers compare by value, so int 1 equals
// float64 1. Arguments round-trip through the memory blob, where every
// number decodes as float64, and a fresh extraction must still compare
// equal to the stored one. Values that cannot be marshaled are never equal.
func Equal(a, b any) bool {
	ja, err := sonic.Marshal(a)
	if err != nil {
		return false
	}
	jb, err := sonic.Marshal(b)
	if err != nil {
		return false
	}
	return jsonpatch.Equal(ja, jb)
}

// Patch applies a partial JSON object to doc as an RFC 7386 merge patch after
// removing placeholder values from it, so a partial update cannot erase
// fields it did not fill.
func Patch(doc, partial []byte) ([]byte, error) {
	var update map[string]any
	if err := sonic.Unmarshal(partial, &update); err != nil {
		return nil, fmt.Errorf("decode partial update: %w", err)
	}
	cleaned, err := sonic.Marshal(dropPlaceholders(update))
	if err != nil {
		return nil, fmt.Errorf("encode partial update: %w", err)
	}
	if len(doc) == 0 {
		doc = []byte("{}")
	}
	out, err := jsonpatch.MergePatch(doc, cleaned)
	if err != nil {
		return nil, fmt.Errorf("apply partial update: %w", err)
	}
	return out, nil
}

func dropPlaceholders(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			out[k] = dropPlaceholders(nested)
			continue
		}
		if IsPlaceholder(v) {
			continue
		}
		out[k] = v
	}
	return out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
