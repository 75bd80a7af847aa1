package middleware

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/truthlens/truthlens-backend/internal/dto"
)

// RateLimiter is a per-client-IP token bucket. Capacity equals the
// configured max requests per window; tokens refill continuously from
// elapsed wall-clock time rather than on a fixed tick. State is
// in-memory and per-process, not distributed-safe; a multi-instance
// deployment needs a shared store instead.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	max    float64
	window time.Duration

	now  func() time.Time
	done chan struct{}
}

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

const sweepInterval = 5 * time.Minute

func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		max:     float64(maxRequests),
		window:  window,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Handler is the Fiber middleware. A request costs one token; requests
// against an empty bucket are rejected with 429 without consuming.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		remaining, reset, allowed := rl.take(c.IP())

		if allowed {
			c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", int(rl.max)))
			c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			c.Set("X-RateLimit-Reset", reset.UTC().Format(time.RFC3339))
			return c.Next()
		}

		return c.Status(fiber.StatusTooManyRequests).JSON(dto.NewError(
			fiber.StatusTooManyRequests,
			"Too Many Requests",
			fmt.Sprintf("Rate limit exceeded. Maximum %d requests per %d seconds.",
				int(rl.max), int(rl.window.Seconds()))))
	}
}

func (rl *RateLimiter) take(ip string) (remaining int, reset time.Time, allowed bool) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[ip]
	if !ok {
		b = &bucket{tokens: rl.max, lastRefill: now}
		rl.buckets[ip] = b
	}

	// Continuous refill: capacity/window tokens per second of elapsed time.
	elapsed := now.Sub(b.lastRefill).Seconds()
	refillRate := rl.max / rl.window.Seconds()
	b.tokens = math.Min(rl.max, b.tokens+elapsed*refillRate)
	b.lastRefill = now

	if b.tokens < 1 {
		return 0, now.Add(rl.window), false
	}

	b.tokens--
	return int(b.tokens), now.Add(rl.window), true
}

// sweepLoop drops buckets idle for more than twice the window so the
// map stays bounded.
func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.done:
			return
		}
	}
}

func (rl *RateLimiter) sweep() {
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, b := range rl.buckets {
		if now.Sub(b.lastRefill) > 2*rl.window {
			delete(rl.buckets, ip)
		}
	}
}

func (rl *RateLimiter) Stop() {
	close(rl.done)
}
