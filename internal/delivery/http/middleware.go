package http

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/cableworks/storefront/internal/observability"
	"github.com/cableworks/storefront/internal/usecase"
)

const (
	// SessionCookie carries the comparison session ID
	SessionCookie = "storefront_session"
	// SessionHeader lets API clients without cookies pick their session
	SessionHeader = "X-Session-ID"

	sessionContextKey = "sessionID"
	sessionCookieAge  = 24 * 60 * 60
)

// CORSMiddleware handles CORS for the storefront frontend
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Check if origin is allowed
		if isAllowedOrigin(origin, allowedOrigins) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, "+SessionHeader)
			c.Writer.Header().Set("Access-Control-Max-Age", "3600")
		}

		// Handle preflight requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// isAllowedOrigin checks if the origin is in the allowed list
func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range allowedOrigins {
		// Support wildcard matching like https://*.example.com or *
		if strings.HasSuffix(allowed, "*") {
			prefix := strings.TrimSuffix(allowed, "*")
			if strings.HasPrefix(origin, prefix) {
				return true
			}
		} else if origin == allowed {
			return true
		}
	}
	return false
}

// LoggerMiddleware logs each request with zap
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// RecoveryMiddleware recovers from panics
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}

// MetricsMiddleware records request counts and latency per route
func MetricsMiddleware(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// limiterIdleTimeout drops a client's limiter once it has been unused this long
const limiterIdleTimeout = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters holds one token bucket per client IP and evicts idle ones on access
type clientLimiters struct {
	mutex     sync.Mutex
	limiters  map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newClientLimiters(perMinute int, idle time.Duration) *clientLimiters {
	return &clientLimiters{
		limiters:  make(map[string]*clientLimiter),
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     perMinute,
		idle:      idle,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// allow reports whether ip may make a request now
func (l *clientLimiters) allow(ip string) bool {
	l.mutex.Lock()
	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now
	limiter := entry.limiter
	l.mutex.Unlock()

	return limiter.AllowN(now, 1)
}

// sweep removes limiters idle since before now-idle; callers hold the mutex
func (l *clientLimiters) sweep(now time.Time) {
	for ip, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= l.idle {
			delete(l.limiters, ip)
		}
	}
	l.lastSweep = now
}

func (l *clientLimiters) len() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return len(l.limiters)
}

// RateLimitMiddleware limits each client IP to perMinute requests per minute.
// A non-positive limit disables the middleware.
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return rateLimit(newClientLimiters(perMinute, limiterIdleTimeout))
}

func rateLimit(limiters *clientLimiters) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiters.allow(c.ClientIP()) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// SessionMiddleware resolves the comparison session from the header or cookie,
// issuing a new session cookie when neither is present
func SessionMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sessionID == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				sessionID = strings.TrimSpace(cookie)
			}
		}
		if sessionID == "" {
			sessionID = usecase.NewSessionID()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, sessionID, sessionCookieAge, "/", "", secure, true)
		c.Set(sessionContextKey, sessionID)
		c.Next()
	}
}

// sessionID returns the session resolved by SessionMiddleware
func sessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}
