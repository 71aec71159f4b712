package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/mwork/booking-api/internal/pkg/logger"
	"github.com/mwork/booking-api/internal/pkg/response"
)

const (
	maxTrackedClients = 10000
	clientTTL         = 10 * time.Minute
)

// RateLimiter keeps one token bucket per client IP. Buckets expire after clientTTL
// and the least recently seen clients are evicted past the cap.
type RateLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	rps      rate.Limit
	burst    int
}

// NewRateLimiter creates a limiter allowing rps requests per second with the given burst.
// A non-positive rps disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return newRateLimiter(rps, burst, maxTrackedClients, clientTTL)
}

func newRateLimiter(rps float64, burst, size int, ttl time.Duration) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](size, nil, ttl),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (l *RateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters.Get(ip)
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
		l.limiters.Add(ip, lim)
	}
	return lim
}

// Tracked reports how many client buckets are currently held.
func (l *RateLimiter) Tracked() int {
	return l.limiters.Len()
}

// Handler limits requests per IP address
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.rps <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ip := clientIP(r)
		if !l.limiter(ip).Allow() {
			logger.FromContext(r.Context()).Warn().
				Str("ip", ip).
				Str("path", r.URL.Path).
				Msg("Rate limit exceeded")
			w.Header().Set("Retry-After", "1")
			response.TooManyRequests(w)
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
