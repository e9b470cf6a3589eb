package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Redis is a fixed-window counter shared by every API instance.
type Redis struct {
	rdb    goredis.Cmdable
	prefix string
	rule   Rule
	now    func() time.Time
}

func NewRedis(rdb goredis.Cmdable, prefix string, rule Rule) Limiter {
	if rule.disabled() {
		return Unlimited()
	}
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &Redis{rdb: rdb, prefix: prefix, rule: rule, now: time.Now}
}

func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	window := r.rule.window()
	slot := r.now().UnixNano() / int64(window)
	redisKey := r.prefix + ":" + key + ":" + strconv.FormatInt(slot, 10)

	var incr *goredis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("ratelimit incr: %w", err)
	}
	return incr.Val() <= int64(r.rule.Max), nil
}
