package api

import (
	"encoding/base64"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// BasicAuth validates the Authorization header against the configured
// user map. A missing header is 401, bad credentials are 403.
func BasicAuth(users map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		username, password, ok := decodeBasicAuth(header)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Invalid credentials",
			})
			return
		}

		expected, exists := users[username]
		if !exists || expected != password {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Invalid credentials",
			})
			return
		}

		c.Next()
	}
}

// decodeBasicAuth decodes a base64 user:password pair. The "Basic "
// scheme prefix is optional; the original clients sent the bare value.
func decodeBasicAuth(header string) (username, password string, ok bool) {
	encoded := strings.TrimPrefix(header, "Basic ")

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", false
	}

	username, password, ok = strings.Cut(string(decoded), ":")
	return username, password, ok
}

// RateLimit limits requests per client IP
func RateLimit(limit rate.Limit, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, exists := limiters[ip]
		if !exists {
			l = rate.NewLimiter(limit, burst)
			limiters[ip] = l
		}
		return l
	}

	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			return
		}
		c.Next()
	}
}
