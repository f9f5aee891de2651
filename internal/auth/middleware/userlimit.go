package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aayushmishra321/Interview-Ai-sub001/pkg/response"
)

type userWindow struct {
	count     int
	resetTime time.Time
}

// UserRateLimiter is an in-memory per-identity request throttle, keyed by
// subject id with a client-address fallback for anonymous requests. It is
// process-local: across horizontally scaled instances it deters abuse
// without being a hard guarantee. Entries are never evicted, which is an
// accepted growth gap at the target traffic.
type UserRateLimiter struct {
	mu          sync.Mutex
	windows     map[string]*userWindow
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

func NewUserRateLimiter(maxRequests int, window time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		windows:     make(map[string]*userWindow),
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// Handle enforces the throttle. Run it after RequireAuth so authenticated
// traffic is keyed by subject rather than address.
func (l *UserRateLimiter) Handle(c *fiber.Ctx) error {
	key := c.IP()
	if identity := GetIdentity(c); identity != nil {
		key = identity.UserID
	}
	if key == "" {
		return c.Next()
	}

	if !l.allow(key) {
		return response.Error(c, fiber.StatusTooManyRequests, "Too many requests, please try again later")
	}

	return c.Next()
}

func (l *UserRateLimiter) allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.After(w.resetTime) {
		l.windows[key] = &userWindow{count: 1, resetTime: now.Add(l.window)}
		return true
	}

	if w.count >= l.maxRequests {
		return false
	}

	w.count++
	return true
}
