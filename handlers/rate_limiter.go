package handlers

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Per-IP token buckets. The deployment is a single process per campus,
// so an in-process limiter is enough; the map is pruned implicitly by
// process restarts.
var (
	rateLimitEnabled bool
	perIPRate        = 10
	perIPBurst       = 20

	ipLimiters     = make(map[string]*rate.Limiter)
	ipLimitersLock sync.Mutex

	limitStatistics = map[string]int64{"total": 0, "allowed": 0, "rejected": 0}
	limitStatsLock  sync.Mutex
)

// InitRateLimiters reads the limiter configuration from the environment.
func InitRateLimiters() {
	if os.Getenv("ENABLE_RATE_LIMIT") == "true" {
		rateLimitEnabled = true
	}

	if rateStr := os.Getenv("USER_RATE_LIMIT"); rateStr != "" {
		if r, err := strconv.Atoi(rateStr); err == nil && r > 0 {
			perIPRate = r
			perIPBurst = r * 2
		}
	}

	if rateLimitEnabled {
		log.Printf("rate limiting enabled: %d req/s per client, burst %d", perIPRate, perIPBurst)
	}
}

func limiterForIP(ip string) *rate.Limiter {
	ipLimitersLock.Lock()
	defer ipLimitersLock.Unlock()
	limiter, ok := ipLimiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(perIPRate), perIPBurst)
		ipLimiters[ip] = limiter
	}
	return limiter
}

// RateLimitMiddleware throttles each client IP when enabled.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rateLimitEnabled {
			c.Next()
			return
		}

		limitStatsLock.Lock()
		limitStatistics["total"]++
		limitStatsLock.Unlock()

		if !limiterForIP(c.ClientIP()).Allow() {
			limitStatsLock.Lock()
			limitStatistics["rejected"]++
			limitStatsLock.Unlock()

			c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests, please slow down"})
			c.Abort()
			return
		}

		limitStatsLock.Lock()
		limitStatistics["allowed"]++
		limitStatsLock.Unlock()

		c.Next()
	}
}

// GetRateLimiterStats handles GET /api/admin/ratelimit/stats.
func GetRateLimiterStats(c *gin.Context) {
	limitStatsLock.Lock()
	stats := gin.H{
		"enabled":  rateLimitEnabled,
		"rate":     perIPRate,
		"burst":    perIPBurst,
		"total":    limitStatistics["total"],
		"allowed":  limitStatistics["allowed"],
		"rejected": limitStatistics["rejected"],
	}
	limitStatsLock.Unlock()

	c.JSON(http.StatusOK, stats)
}
