package client

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy caps retries separately for reads and writes. Delays grow as
// min(BaseDelay*2^n, MaxDelay).
type RetryPolicy struct {
	QueryRetries    uint
	MutationRetries uint
	BaseDelay       time.Duration
	MaxDelay        time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		QueryRetries:    3,
		MutationRetries: 1,
		BaseDelay:       time.Second,
		MaxDelay:        30 * time.Second,
	}
}

func (p RetryPolicy) retriesFor(method string) uint {
	if method == http.MethodGet || method == http.MethodHead {
		return p.QueryRetries
	}
	return p.MutationRetries
}

func (p RetryPolicy) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	b.Multiplier = 2
	b.MaxInterval = p.MaxDelay
	b.RandomizationFactor = 0
	return b
}

// retry runs op until it succeeds, fails permanently, or exhausts the
// retries allowed for method. 4xx responses are permanent.
func retry[T any](ctx context.Context, p RetryPolicy, method string, op func() (T, error)) (T, error) {
	wrapped := func() (T, error) {
		v, err := op()
		if err == nil {
			return v, nil
		}
		var ae *APIError
		if errors.As(err, &ae) && !ae.Temporary() {
			return v, backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return v, backoff.Permanent(err)
		}
		return v, err
	}
	return backoff.Retry(ctx, wrapped,
		backoff.WithBackOff(p.backOff()),
		backoff.WithMaxTries(p.retriesFor(method)+1),
	)
}
