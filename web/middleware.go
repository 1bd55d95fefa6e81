package web

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"konvyshop/web/session"
	"konvyshop/web/static"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"golang.org/x/time/rate"
)

// CorsMiddleware handles CORS headers for cross-origin requests
func CorsMiddleware(c rweb.Context) error {
	c.Response().SetHeader("Access-Control-Allow-Origin", "*")
	c.Response().SetHeader("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Response().SetHeader("Access-Control-Allow-Headers", "Content-Type, HX-Request, HX-Target, HX-Trigger, HX-Current-URL")

	// Handle preflight OPTIONS requests
	if c.Request().Method() == "OPTIONS" {
		c.SetStatus(http.StatusOK)
		return nil
	}

	return c.Next()
}

// SessionMiddleware resolves the shopper's session from the signed cookie,
// issuing a new one when it is missing or invalid, and persists the session
// snapshot after requests that may have changed it.
func SessionMiddleware(m *session.Manager) rweb.Handler {
	return func(c rweb.Context) error {
		if isStaticPath(c.Request().Path()) {
			return c.Next()
		}

		// A missing cookie just means a new visitor
		token, _ := c.GetCookie(session.CookieName)

		sess, newToken, err := m.Resolve(context.Background(), token)
		if err != nil {
			logger.LogErr(err, "failed to resolve session")
			c.SetStatus(http.StatusInternalServerError)
			return c.WriteHTML("Session unavailable")
		}
		if newToken != "" {
			if err := c.SetCookie(session.CookieName, newToken); err != nil {
				logger.LogErr(err, "failed to set session cookie")
			}
		}
		session.Attach(c, sess)

		err = c.Next()

		if session.Dirty(c) {
			if perr := m.Persist(context.Background(), sess); perr != nil {
				logger.LogErr(perr, "failed to persist session", "session", sess.ID())
			}
		}
		return err
	}
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware(c rweb.Context) error {
	c.Response().SetHeader("X-Content-Type-Options", "nosniff")
	c.Response().SetHeader("X-Frame-Options", "DENY")
	c.Response().SetHeader("X-XSS-Protection", "1; mode=block")
	c.Response().SetHeader("Referrer-Policy", "strict-origin-when-cross-origin")

	// htmx comes from unpkg; cosmetic icons come from any https CDN
	csp := []string{
		"default-src 'self'",
		"script-src 'self' 'unsafe-inline' https://unpkg.com",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data: https:",
		"font-src 'self' data:",
		"connect-src 'self'",
	}
	c.Response().SetHeader("Content-Security-Policy", strings.Join(csp, "; "))

	return c.Next()
}

// RateLimitMiddleware gives every client IP a token bucket refilled at
// requestsPerMinute, with a burst of the same size.
func RateLimitMiddleware(requestsPerMinute int) rweb.Handler {
	type visitor struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var mu sync.Mutex
	visitors := make(map[string]*visitor)
	every := rate.Every(time.Minute / time.Duration(requestsPerMinute))

	return func(c rweb.Context) error {
		ip := c.Request().Header("X-Forwarded-For")
		if ip == "" {
			ip = c.Request().Header("X-Real-IP")
		}
		if ip == "" {
			ip = "unknown"
		}

		mu.Lock()
		now := time.Now()
		for addr, v := range visitors {
			if now.Sub(v.lastSeen) > 3*time.Minute {
				delete(visitors, addr)
			}
		}
		v, ok := visitors[ip]
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(every, requestsPerMinute)}
			visitors[ip] = v
		}
		v.lastSeen = now
		allowed := v.limiter.Allow()
		mu.Unlock()

		if !allowed {
			logger.Info("Rate limit exceeded", "ip", ip)
			c.SetStatus(http.StatusTooManyRequests)
			return nil
		}
		return c.Next()
	}
}

// LoggingMiddleware provides detailed request logging
func LoggingMiddleware(c rweb.Context) error {
	start := time.Now()

	logger.Debug("Request started",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"htmx", c.Request().Header("HX-Request"),
	)

	err := c.Next()

	logger.Debug("Request completed",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"duration", time.Since(start),
		"error", err,
	)

	return err
}

func isStaticPath(path string) bool {
	return strings.HasPrefix(path, static.Prefix) || path == "/favicon.ico"
}
