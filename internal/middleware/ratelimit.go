package middleware

import (
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/infopontes/leishai-backend/internal/httperr"
)

// RateLimit aplica um token bucket por IP de cliente. Buckets ociosos
// são varridos no caminho da requisição, no máximo uma vez por minuto;
// o middleware não mantém goroutine própria.
func RateLimit(perSecond float64, burst int) gin.HandlerFunc {
	type bucket struct {
		lim *rate.Limiter
		ts  time.Time
	}

	const (
		ttl           = 5 * time.Minute
		sweepInterval = 1 * time.Minute
	)

	var (
		mu        sync.Mutex
		buckets   = make(map[string]*bucket)
		lastSweep = time.Now()
	)

	return func(c *gin.Context) {
		ip := ClientIP(c)
		if ip == "" {
			ip = "unknown"
		}

		mu.Lock()
		now := time.Now()
		if now.Sub(lastSweep) > sweepInterval {
			for k, b := range buckets {
				if now.Sub(b.ts) > ttl {
					delete(buckets, k)
				}
			}
			lastSweep = now
		}

		b, ok := buckets[ip]
		if !ok {
			b = &bucket{lim: rate.NewLimiter(rate.Limit(perSecond), burst)}
			buckets[ip] = b
		}
		b.ts = now
		allowed := b.lim.Allow()
		mu.Unlock()

		if !allowed {
			httperr.TooManyRequests(c, "rate_limit_exceeded", "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ClientIP prefere o primeiro IP do X-Forwarded-For quando presente.
func ClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
