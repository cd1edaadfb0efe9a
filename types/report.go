package types

import (
	"github.com/bytedance/sonic"
)

// SlotValue serializes as a single-key object {name: value}.
type SlotValue struct {
	Name  string
	Value any
}

func (s SlotValue) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(map[string]any{s.Name: s.Value})
}

type Report struct {
	HasValue          []SlotValue `json:"has_value"`
	MissingOrNone     []SlotValue `json:"missing_or_none"`
	AllRequiredFilled bool        `json:"all_required_filled"`
}

func (r Report) MissingNames() []string {
	names := make([]string, 0, len(r.MissingOrNone))
	for _, s := range r.MissingOrNone {
		names = append(names, s.Name)
	}
	return names
}
