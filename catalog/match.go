package catalog

import "strings"

// Match scores every intent by the number of its keywords found in text
// (case-insensitive substring) and returns the best label. Ties keep the
// intent that comes first in catalog order.
func (c *Catalog) Match(text string) (string, bool) {
	lowered := strings.ToLower(text)
	best, bestScore := "", 0
	for _, in := range c.intents {
		if in.Label == Reserved || len(in.Keywords) == 0 {
			continue
		}
		score := 0
		for _, kw := range in.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(lowered, strings.ToLower(kw)) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = in.Label, score
		}
	}
	return best, bestScore > 0
}
