package retry

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// MaxRetries bounds Policy.MaxRetries.
const MaxRetries = 1

// Policy retries a failed collaborator call at most MaxRetries times with
// exponential backoff. The zero value makes a single attempt.
type Policy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
}

func Default() Policy {
	return Policy{MaxRetries: 1, InitialInterval: 200 * time.Millisecond}
}

// Do runs op until it succeeds, the retries are used up or ctx is done.
func Do[T any](ctx context.Context, p Policy, name string, op func(ctx context.Context) (T, error)) (T, error) {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	retries := min(p.MaxRetries, MaxRetries)
	attempt := 0
	var result T
	err := backoff.Retry(func() error {
		attempt++
		v, err := op(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			slog.Debug("collaborator call failed", "name", name, "attempt", attempt, "err", err)
			return err
		}
		result = v
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(b, retries), ctx))
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
