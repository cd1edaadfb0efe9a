package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/intentagent/types"
)

// Extra keys of the assistant message produced by Agent.
const (
	MemoryExtraKey = "memory"
	FlagExtraKey   = "flag"
)

var _ adk.Agent = (*Agent)(nil)

// Agent runs the router under an adk.Runner. The memory blob travels with
// the conversation: it is read from the latest assistant message in the
// input and written to the Extra of the reply.
type Agent struct {
	name        string
	description string
	router      *Router
}

func NewAgent(name, description string, router *Router) *Agent {
	return &Agent{
		name:        name,
		description: description,
		router:      router,
	}
}

func (a *Agent) Name(ctx context.Context) string {
	return a.name
}

func (a *Agent) Description(ctx context.Context) string {
	return a.description
}

func (a *Agent) Run(ctx context.Context, input *adk.AgentInput, options ...adk.AgentRunOption) *adk.AsyncIterator[*adk.AgentEvent] {
	iter, gen := adk.NewAsyncIteratorPair[*adk.AgentEvent]()
	go func() {
		defer func() {
			e := recover()
			if e != nil {
				gen.Send(&adk.AgentEvent{
					Err: fmt.Errorf("recover from panic: %v", e),
				})
			}
			gen.Close()
		}()
		if input == nil || len(input.Messages) == 0 {
			gen.Send(&adk.AgentEvent{
				Err: errors.New("no messages in input"),
			})
			return
		}
		mem, err := types.DecodeMemory([]byte(MemoryFromMessages(input.Messages)))
		if err != nil {
			gen.Send(&adk.AgentEvent{Err: err})
			return
		}
		out, err := a.router.Step(ctx, input.Messages[len(input.Messages)-1].Content, mem)
		if err != nil {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("router step failed: %w", err),
			})
			return
		}
		blob, err := types.EncodeMemory(out)
		if err != nil {
			gen.Send(&adk.AgentEvent{Err: err})
			return
		}
		gen.Send(&adk.AgentEvent{
			AgentName: a.name,
			Output: &adk.AgentOutput{
				MessageOutput: &adk.MessageVariant{
					IsStreaming: false,
					Message: &schema.Message{
						Role:    schema.Assistant,
						Content: out.Hint,
						Extra: map[string]any{
							MemoryExtraKey: string(blob),
							FlagExtraKey:   string(out.Flag),
						},
					},
					Role: schema.Assistant,
				},
			},
		})
	}()
	return iter
}

// MemoryFromMessages returns the blob of the latest assistant message that
// carries one, or "" when the conversation has none.
func MemoryFromMessages(messages []adk.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		if m == nil || m.Role != schema.Assistant {
			continue
		}
		if blob, ok := m.Extra[MemoryExtraKey].(string); ok {
			return blob
		}
	}
	return ""
}
