package ratelimit

import (
	"context"
	"time"
)

// Limiter admits or rejects one request for key.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Rule is max requests per window. Max <= 0 disables limiting.
type Rule struct {
	Max    int
	Window time.Duration
}

func (r Rule) disabled() bool { return r.Max <= 0 }

func (r Rule) window() time.Duration {
	if r.Window <= 0 {
		return time.Minute
	}
	return r.Window
}

type unlimited struct{}

func (unlimited) Allow(context.Context, string) (bool, error) { return true, nil }

// Unlimited admits every request.
func Unlimited() Limiter { return unlimited{} }
