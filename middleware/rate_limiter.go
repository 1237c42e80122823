package middleware

import (
	"net/http"
	"time"

	"freelancehub/utils"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an IP's limiter survives without traffic.
const limiterIdleTTL = 10 * time.Minute

// rateLimiterStore maps client IPs to token buckets. Idle entries expire.
type rateLimiterStore struct {
	limiters *cache.Cache
	perMin   int
}

func newRateLimiterStore(perMin int) *rateLimiterStore {
	if perMin <= 0 {
		perMin = 100
	}
	return &rateLimiterStore{limiters: cache.New(limiterIdleTTL, limiterIdleTTL), perMin: perMin}
}

// getLimiter returns the IP's limiter, creating one if needed. Every hit
// refreshes the idle expiry.
func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	if v, ok := s.limiters.Get(ip); ok {
		limiter := v.(*rate.Limiter)
		s.limiters.Set(ip, limiter, cache.DefaultExpiration)
		return limiter
	}
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)
	if err := s.limiters.Add(ip, limiter, cache.DefaultExpiration); err != nil {
		// Another request created it first.
		if v, ok := s.limiters.Get(ip); ok {
			return v.(*rate.Limiter)
		}
	}
	return limiter
}

// RateLimitMiddleware allows perMin requests per minute per client IP, with a
// burst of the same size.
func RateLimitMiddleware(perMin int) gin.HandlerFunc {
	store := newRateLimiterStore(perMin)
	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !store.getLimiter(ip).Allow() {
			utils.GetLogger().Warn("Rate limit exceeded", zap.String("ip", ip))
			utils.JSONError(c, http.StatusTooManyRequests, "Rate limit exceeded. Try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
