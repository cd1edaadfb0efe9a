package catalog

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tbxark/intentagent/types"
)

// Reserved is the "none of the above" pseudo-intent. It never wins a keyword match.
const Reserved = "其他"

// Intent binds a label to its keywords, a default extraction hint and a tool.
type Intent struct {
	Label    string               `yaml:"label"`
	Keywords []string             `yaml:"keywords"`
	Hint     string               `yaml:"hint"`
	Tool     types.ToolDescriptor `yaml:"tool"`
}

// HintAt renders the {year}, {month} and {date} placeholders of the hint.
func (i Intent) HintAt(now time.Time) string {
	if !strings.Contains(i.Hint, "{") {
		return i.Hint
	}
	r := strings.NewReplacer(
		"{year}", now.Format("2006"),
		"{month}", now.Format("01"),
		"{date}", now.Format("2006-01-02"),
	)
	return r.Replace(i.Hint)
}

// Catalog is an immutable, ordered set of intents.
type Catalog struct {
	intents []Intent
	index   map[string]int
}

func New(intents ...Intent) (*Catalog, error) {
	c := &Catalog{
		intents: make([]Intent, 0, len(intents)),
		index:   make(map[string]int, len(intents)),
	}
	for _, in := range intents {
		if in.Label == "" {
			return nil, fmt.Errorf("%w: empty intent label", types.ErrInvalidCatalog)
		}
		if _, ok := c.index[in.Label]; ok {
			return nil, fmt.Errorf("%w: duplicate intent label %q", types.ErrInvalidCatalog, in.Label)
		}
		if in.Label != Reserved && in.Tool.Name == "" {
			return nil, fmt.Errorf("%w: intent %q has no tool name", types.ErrInvalidCatalog, in.Label)
		}
		seen := make(map[string]bool, len(in.Tool.Slots))
		for _, slot := range in.Tool.Slots {
			if slot.Name == "" {
				return nil, fmt.Errorf("%w: intent %q has an unnamed slot", types.ErrInvalidCatalog, in.Label)
			}
			if seen[slot.Name] {
				return nil, fmt.Errorf("%w: intent %q declares slot %q twice", types.ErrInvalidCatalog, in.Label, slot.Name)
			}
			seen[slot.Name] = true
		}
		for _, r := range in.Tool.Required {
			if !seen[r] {
				return nil, fmt.Errorf("%w: intent %q requires undeclared slot %q", types.ErrInvalidCatalog, in.Label, r)
			}
		}
		c.index[in.Label] = len(c.intents)
		c.intents = append(c.intents, cloneIntent(in))
	}
	return c, nil
}

func cloneIntent(in Intent) Intent {
	in.Keywords = slices.Clone(in.Keywords)
	in.Tool.Slots = slices.Clone(in.Tool.Slots)
	in.Tool.Required = slices.Clone(in.Tool.Required)
	return in
}

func (c *Catalog) Lookup(label string) (Intent, bool) {
	i, ok := c.index[label]
	if !ok {
		return Intent{}, false
	}
	return cloneIntent(c.intents[i]), true
}

func (c *Catalog) Has(label string) bool {
	_, ok := c.index[label]
	return ok
}

// Labels returns the intent labels in catalog order.
func (c *Catalog) Labels() []string {
	labels := make([]string, 0, len(c.intents))
	for _, in := range c.intents {
		labels = append(labels, in.Label)
	}
	return labels
}

func (c *Catalog) Intents() []Intent {
	out := make([]Intent, 0, len(c.intents))
	for _, in := range c.intents {
		out = append(out, cloneIntent(in))
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.intents)
}
