// Package ratelimit enforces per-tier request ceilings on a Redis fixed
// window, falling back to an in-memory window when Redis is not configured
// or unreachable.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/middleware"
	"github.com/aayushmishra321/Interview-Ai-sub001/pkg/constant"
	"github.com/aayushmishra321/Interview-Ai-sub001/pkg/response"
)

// Requests allowed per window, by subscription tier.
var tierLimits = map[string]int{
	constant.PlanFree:       100,
	constant.PlanPro:        500,
	constant.PlanEnterprise: 2000,
}

const window = time.Hour

type TierLimiter struct {
	rdb   *redis.Client
	log   *logrus.Logger
	mu    sync.Mutex
	local map[string]*localWindow
	now   func() time.Time
}

type localWindow struct {
	count   int
	resetAt time.Time
}

// NewTierLimiter builds the limiter. rdb may be nil, in which case every
// request takes the in-memory path.
func NewTierLimiter(rdb *redis.Client, log *logrus.Logger) *TierLimiter {
	return &TierLimiter{
		rdb:   rdb,
		log:   log,
		local: make(map[string]*localWindow),
		now:   time.Now,
	}
}

// Handle applies the tier ceiling to authenticated traffic. Anonymous
// requests pass through; the global limiter covers those.
func (t *TierLimiter) Handle(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return c.Next()
	}

	limit, ok := tierLimits[identity.Role]
	if !ok {
		limit = tierLimits[constant.PlanFree]
	}

	count, ok := t.redisCount(c.Context(), identity.UserID)
	if !ok {
		count = t.localCount(identity.UserID)
	}

	if count > limit {
		return response.Error(c, fiber.StatusTooManyRequests, "Too many requests, please try again later")
	}

	return c.Next()
}

// redisCount increments the caller's window counter in Redis. The second
// return value reports availability; callers branch to the local window
// when Redis cannot serve. The TTL is set only when the increment opens the
// window; renewing it on every request would keep the window from ever
// closing under sustained traffic.
func (t *TierLimiter) redisCount(ctx context.Context, userID string) (int, bool) {
	if t.rdb == nil {
		return 0, false
	}

	key := fmt.Sprintf("user_rate_limit:%s", userID)

	count, err := t.rdb.Incr(ctx, key).Result()
	if err != nil {
		t.log.WithError(err).Warn("redis rate limit unavailable - using in-memory window")
		return 0, false
	}

	if count == 1 {
		if err := t.rdb.Expire(ctx, key, window).Err(); err != nil {
			t.log.WithError(err).Warn("redis rate limit unavailable - using in-memory window")
			return 0, false
		}
	}

	return int(count), true
}

func (t *TierLimiter) localCount(userID string) int {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	w, ok := t.local[userID]
	if !ok || now.After(w.resetAt) {
		t.local[userID] = &localWindow{count: 1, resetAt: now.Add(window)}
		return 1
	}

	w.count++
	return w.count
}
