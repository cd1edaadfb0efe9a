package agent

import (
	"sync"

	"github.com/cloudwego/eino/schema"
)

// Transcript is the caller-side message history handed to Agent each turn.
// Trimming always keeps the latest assistant message that carries memory.
type Transcript struct {
	mu       sync.Mutex
	messages []*schema.Message
	keep     int
}

// NewTranscript keeps at most keep messages; keep <= 0 keeps everything.
func NewTranscript(keep int) *Transcript {
	return &Transcript{keep: keep}
}

// Append adds messages, skipping nil ones and exact repeats of the last
// message, and returns a copy of the trimmed history.
func (t *Transcript) Append(msgs ...*schema.Message) []*schema.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, msg := range msgs {
		if msg == nil {
			continue
		}
		if n := len(t.messages); n > 0 {
			last := t.messages[n-1]
			if last.Role == msg.Role && last.Content == msg.Content && MemoryFromMessages([]*schema.Message{msg}) == "" {
				continue
			}
		}
		t.messages = append(t.messages, msg)
	}
	t.messages = trimKeepingMemory(t.messages, t.keep)
	return append([]*schema.Message(nil), t.messages...)
}

func (t *Transcript) Messages() []*schema.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*schema.Message(nil), t.messages...)
}

// Reset forgets the conversation, so the next turn starts without memory.
func (t *Transcript) Reset() {
	t.mu.Lock()
	t.messages = nil
	t.mu.Unlock()
}

func trimKeepingMemory(history []*schema.Message, keep int) []*schema.Message {
	if keep <= 0 || len(history) <= keep {
		return history
	}
	start := len(history) - keep
	memIdx := -1
	for i := len(history) - 1; i >= 0; i-- {
		if MemoryFromMessages(history[i:i+1]) != "" {
			memIdx = i
			break
		}
	}
	if memIdx < 0 || memIdx >= start {
		return append([]*schema.Message(nil), history[start:]...)
	}
	out := make([]*schema.Message, 0, keep+1)
	out = append(out, history[memIdx])
	return append(out, history[start:]...)
}
