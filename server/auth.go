package server

import (
	"context"
	"crypto/subtle"
)

// TokenVerifier validates the caller token sent with every request.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) bool
}

// StaticTokenVerifier accepts a fixed token set. An empty set accepts any token.
type StaticTokenVerifier struct {
	tokens []string
}

func NewStaticTokenVerifier(tokens ...string) *StaticTokenVerifier {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != "" {
			out = append(out, t)
		}
	}
	return &StaticTokenVerifier{tokens: out}
}

func (v *StaticTokenVerifier) Open() bool {
	return len(v.tokens) == 0
}

func (v *StaticTokenVerifier) Verify(ctx context.Context, token string) bool {
	if v.Open() {
		return true
	}
	ok := false
	for _, t := range v.tokens {
		if subtle.ConstantTimeCompare([]byte(t), []byte(token)) == 1 {
			ok = true
		}
	}
	return ok
}
