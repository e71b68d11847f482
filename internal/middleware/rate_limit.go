package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"petverse/internal/platform/logger"

	"golang.org/x/time/rate"
)

// idleTTL: clientes sin requests por este tiempo se descartan.
const idleTTL = 3 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limita requests por IP. La IP sale de RemoteAddr, que
// chimw.RealIP ya reescribe con X-Forwarded-For / X-Real-IP.
type RateLimiter struct {
	rps   float64
	burst int
	log   logger.Logger
	now   func() time.Time

	mu        sync.Mutex
	clients   map[string]*client
	lastPrune time.Time
}

func NewRateLimiter(rps float64, burst int, log logger.Logger) *RateLimiter {
	if log == nil {
		log = logger.Nop()
	}
	return &RateLimiter{
		rps:     rps,
		burst:   burst,
		log:     log.With(map[string]any{"middleware": "rate_limit"}),
		now:     time.Now,
		clients: make(map[string]*client),
	}
}

func (rl *RateLimiter) Enabled() bool { return rl.rps > 0 && rl.burst > 0 }

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastPrune) > time.Minute {
		for k, c := range rl.clients {
			if now.Sub(c.lastSeen) > idleTTL {
				delete(rl.clients, k)
			}
		}
		rl.lastPrune = now
	}

	c, ok := rl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(rl.rps), rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		ip := clientIP(r)
		if !rl.limiter(ip).AllowN(rl.now(), 1) {
			rl.log.Warn("rate limit exceeded", map[string]any{
				"client_ip": ip,
				"method":    r.Method,
				"path":      r.URL.Path,
			})
			w.Header().Set("Retry-After", "1")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
