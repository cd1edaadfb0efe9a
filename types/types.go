package types

import (
	"errors"
	"maps"
)

type Flag string

const (
	FlagNone     Flag = ""
	FlagDoubt    Flag = "[doubt]"
	FlagCallback Flag = "[callback]"
	FlagConfirm  Flag = "[comfirm]"
	FlagFunction Flag = "[function]"
	FlagStream   Flag = "[stream]"
	FlagReject   Flag = "[reject]"
)

var (
	ErrUnknownFlag    = errors.New("unrecognized memory flag")
	ErrInvalidMemory  = errors.New("invalid memory blob")
	ErrUnknownIntent  = errors.New("intent not in catalog")
	ErrInvalidCatalog = errors.New("invalid intent catalog")
)

func (f Flag) Valid() bool {
	switch f {
	case FlagNone, FlagDoubt, FlagCallback, FlagConfirm, FlagFunction, FlagStream, FlagReject:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transition happens from f inside the router.
func (f Flag) Terminal() bool {
	return f == FlagFunction || f == FlagStream || f == FlagReject
}

type Slot struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// ToolDescriptor describes the backend call an intent resolves to.
// An empty Required means every declared slot must be filled.
type ToolDescriptor struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Slots       []Slot   `json:"slots" yaml:"slots"`
	Required    []string `json:"required,omitempty" yaml:"required"`
}

func (t ToolDescriptor) IsRequired(name string) bool {
	for _, r := range t.Required {
		if r == name {
			return true
		}
	}
	return false
}

// ToolCall is a structured extraction: the tool name and its arguments.
// Argument values are usually strings; nil marks an absent value.
type ToolCall struct {
	Name      string         `json:"name,omitempty"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

func (c ToolCall) IsZero() bool {
	return c.Name == "" && len(c.Arguments) == 0
}

func (c ToolCall) Clone() ToolCall {
	return ToolCall{Name: c.Name, Arguments: maps.Clone(c.Arguments)}
}

type ExtractionKind int

const (
	NoCall ExtractionKind = iota
	Structured
	RawFallback
)

func (k ExtractionKind) String() string {
	switch k {
	case NoCall:
		return "no_call"
	case Structured:
		return "structured"
	case RawFallback:
		return "raw_fallback"
	default:
		return "unknown"
	}
}

// Extraction is the outcome of one extractor call. Call is set only for
// Structured, Raw only for RawFallback.
type Extraction struct {
	Kind ExtractionKind
	Call *ToolCall
	Raw  string
}

func NoToolCall() *Extraction {
	return &Extraction{Kind: NoCall}
}

func StructuredCall(call ToolCall) *Extraction {
	return &Extraction{Kind: Structured, Call: &call}
}

func RawText(text string) *Extraction {
	return &Extraction{Kind: RawFallback, Raw: text}
}

// Structured returns the tool call when the extraction is usable as arguments.
func (e *Extraction) Structured() (*ToolCall, bool) {
	if e == nil || e.Kind != Structured || e.Call == nil {
		return nil, false
	}
	return e.Call, true
}
