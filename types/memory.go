package types

import (
	"bytes"
	"fmt"

	"github.com/bytedance/sonic"
)

// Memory is the caller-held conversation state, resent verbatim every turn.
type Memory struct {
	Intent   string   `json:"intent"`
	Question string   `json:"question"`
	Answer   ToolCall `json:"answer"`
	Hint     string   `json:"hint"`
	Flag     Flag     `json:"flag"`
}

func NewMemory(question string) *Memory {
	return &Memory{Question: question, Flag: FlagNone}
}

func (m *Memory) Clone() *Memory {
	if m == nil {
		return nil
	}
	c := *m
	c.Answer = m.Answer.Clone()
	return &c
}

// Bound reports whether the memory carries an intent to continue from.
func (m *Memory) Bound() bool {
	return m != nil && m.Intent != "" && m.Flag != FlagNone
}

func EncodeMemory(m *Memory) ([]byte, error) {
	data, err := sonic.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal memory: %w", err)
	}
	return data, nil
}

// DecodeMemory parses a blob. An empty blob yields a nil memory and no error.
func DecodeMemory(blob []byte) (*Memory, error) {
	blob = bytes.TrimSpace(blob)
	if len(blob) == 0 {
		return nil, nil
	}
	var m Memory
	if err := sonic.Unmarshal(blob, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMemory, err)
	}
	if !m.Flag.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFlag, m.Flag)
	}
	return &m, nil
}
