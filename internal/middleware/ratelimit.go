package middleware

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Amorphous121/jobboard/internal/model"
)

// Policy is a token bucket: Limit requests per Per, with Burst extra on top.
type Policy struct {
	Limit int
	Per   time.Duration
	Burst int
}

func (p Policy) capacity() float64 { return float64(p.Limit + p.Burst) }

// refillRate is tokens per nanosecond
func (p Policy) refillRate() float64 { return float64(p.Limit) / float64(p.Per) }

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	Default Policy
	// Paths overrides Default for exact request paths. Each path has its own budget.
	Paths map[string]Policy
	// KeyFunc identifies the client. Defaults to the remote IP.
	KeyFunc func(*http.Request) string
}

type bucketKey struct {
	path   string
	client string
}

type bucket struct {
	tokens float64
	seen   time.Time
}

// RateLimiter keeps a refilling token bucket per client and policy
type RateLimiter struct {
	mu      sync.Mutex
	def     Policy
	paths   map[string]Policy
	keyFunc func(*http.Request) string
	buckets map[bucketKey]*bucket
	now     func() time.Time
}

// Decision is the outcome of one Allow call
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration // zero when allowed
	Reset      time.Time     // when the bucket is full again
}

// NewRateLimiter creates a rate limiter. A zero Default allows 100 requests a minute plus 20.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		def:     withDefaults(cfg.Default, Policy{Limit: 100, Per: time.Minute, Burst: 20}),
		paths:   make(map[string]Policy, len(cfg.Paths)),
		keyFunc: cfg.KeyFunc,
		buckets: make(map[bucketKey]*bucket),
		now:     time.Now,
	}
	for path, p := range cfg.Paths {
		if p.Limit <= 0 {
			continue
		}
		rl.paths[path] = withDefaults(p, rl.def)
	}
	if rl.keyFunc == nil {
		rl.keyFunc = clientKey
	}
	return rl
}

func withDefaults(p, fallback Policy) Policy {
	if p.Limit <= 0 {
		p.Limit = fallback.Limit
	}
	if p.Per <= 0 {
		p.Per = fallback.Per
	}
	if p.Burst < 0 {
		p.Burst = 0
	}
	return p
}

// Allow takes one token from the bucket of client for path
func (rl *RateLimiter) Allow(path, client string) Decision {
	policy, scoped := rl.paths[path]
	if !scoped {
		policy = rl.def
		path = ""
	}
	key := bucketKey{path: path, client: client}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: policy.capacity(), seen: now}
		rl.buckets[key] = b
	}
	b.refill(policy, now)

	d := Decision{Limit: policy.Limit}
	if b.tokens >= 1 {
		b.tokens--
		d.Allowed = true
	} else {
		d.RetryAfter = time.Duration(math.Round((1 - b.tokens) / policy.refillRate()))
	}
	d.Remaining = int(math.Floor(b.tokens))
	d.Reset = now.Add(time.Duration(math.Round((policy.capacity() - b.tokens) / policy.refillRate())))
	return d
}

func (b *bucket) refill(p Policy, now time.Time) {
	if elapsed := now.Sub(b.seen); elapsed > 0 {
		b.tokens = math.Min(p.capacity(), b.tokens+float64(elapsed)*p.refillRate())
	}
	b.seen = now
}

// Sweep drops buckets that have refilled completely; a full bucket is the same as none.
func (rl *RateLimiter) Sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		policy := rl.def
		if key.path != "" {
			policy = rl.paths[key.path]
		}
		b.refill(policy, now)
		if b.tokens >= policy.capacity() {
			delete(rl.buckets, key)
		}
	}
}

// Run sweeps every interval until ctx is done
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.Sweep()
		case <-ctx.Done():
			return
		}
	}
}

// RateLimit returns a middleware that applies rate limiting
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := limiter.Allow(r.URL.Path, limiter.keyFunc(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.Reset.Unix(), 10))

			if !d.Allowed {
				model.NewRateLimitError(int(math.Ceil(d.RetryAfter.Seconds()))).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey identifies the caller by IP, ignoring the ephemeral port
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
