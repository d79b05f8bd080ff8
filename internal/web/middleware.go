package web

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/healthy-heart/internal/common"
	"github.com/Veraticus/healthy-heart/internal/engine"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "heart_session"
	sessionKey    = "session"
)

// RequestLogger logs each request through slog.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			slog.Error("Request failed", attrs...)
		case status >= http.StatusBadRequest:
			slog.Warn("Request rejected", attrs...)
		default:
			slog.Info("Request", attrs...)
		}
	}
}

// loadSession attaches a session to every request. A valid token from the
// Authorization header or the session cookie yields a signed-in session for
// a user that still exists; anything else yields a signed-out one.
func (s *Server) loadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := engine.NewSession()

		if raw := extractToken(c); raw != "" {
			claims, err := s.tokens.Validate(raw)
			if err != nil {
				slog.Debug("Ignoring session token", "error", err)
			} else {
				restored := engine.RestoreSession(claims.Subject)
				if err := s.engine.Authorize(c.Request.Context(), restored); err == nil {
					sess = restored
				} else {
					slog.Debug("Session user rejected", "username", claims.Subject, "error", err)
				}
			}
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// requirePage redirects signed-out browsers to the sign-in page.
func requirePage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentSession(c).SignedIn {
			c.Redirect(http.StatusSeeOther, "/signin")
			c.Abort()
			return
		}
		c.Next()
	}
}

// requireAPI rejects signed-out API calls.
func requireAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentSession(c).SignedIn {
			fail(c, common.ErrNotSignedIn)
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) *engine.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*engine.Session); ok {
			return sess
		}
	}
	return engine.NewSession()
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		return cookie
	}
	return ""
}

func (s *Server) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(s.tokens.TTL().Seconds()), "/", "", s.cfg.SecureCookies || s.cfg.TLS, true)
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", s.cfg.SecureCookies || s.cfg.TLS, true)
}
