package limiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limit returns a gin middleware enforcing a per-client-IP token bucket.
// Idle client entries are evicted after ttl.
func Limit(rps int, burst int, ttl time.Duration) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	go func() {
		for range time.Tick(ttl) {
			mu.Lock()
			for ip, c := range clients {
				if time.Since(c.lastSeen) > ttl {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		entry, ok := clients[ip]
		if !ok {
			entry = &client{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
			clients[ip] = entry
		}
		entry.lastSeen = time.Now()
		allowed := entry.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "too many requests"})
			return
		}

		c.Next()
	}
}
