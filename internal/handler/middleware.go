package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/staffpoints/backend/internal/metrics"
	"github.com/staffpoints/backend/internal/model"
	"github.com/staffpoints/backend/internal/service"
)

const (
	authUserKey     = "auth_user"
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

type TokenVerifier interface {
	Verify(token string) (*model.Identity, error)
}

// AuthMiddleware requires a valid bearer token. A missing token is 401, a
// token that fails verification is 403.
func AuthMiddleware(tokens TokenVerifier, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token := ""
		if strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		}
		if token == "" {
			m.AccessDeniedTotal.WithLabelValues("missing").Inc()
			abortWithError(c, service.ErrAuthenticationRequired)
			return
		}

		identity, err := tokens.Verify(token)
		if err != nil {
			m.AccessDeniedTotal.WithLabelValues("invalid").Inc()
			abortWithError(c, service.ErrInvalidToken)
			return
		}

		c.Set(authUserKey, identity)
		c.Next()
	}
}

// RequireRole must be chained after AuthMiddleware.
func RequireRole(role model.Role, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetAuthUser(c)
		if identity == nil {
			m.AccessDeniedTotal.WithLabelValues("missing").Inc()
			abortWithError(c, service.ErrAuthenticationRequired)
			return
		}
		if identity.Role != role {
			m.AccessDeniedTotal.WithLabelValues("forbidden").Inc()
			abortWithError(c, service.ErrForbidden)
			return
		}
		c.Next()
	}
}

func GetAuthUser(c *gin.Context) *model.Identity {
	if value, ok := c.Get(authUserKey); ok {
		if identity, ok := value.(*model.Identity); ok {
			return identity
		}
	}
	return nil
}

func CORSMiddleware(allowedOrigins []string, allowCredentials bool) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				if allowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestLogger logs one line per request and records HTTP metrics. The
// request ID is taken from X-Request-ID or generated.
func RequestLogger(log logrus.FieldLogger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		latency := time.Since(start)

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(latency.Seconds())

		entry := log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency_ms": latency.Milliseconds(),
		})
		if identity := GetAuthUser(c); identity != nil {
			entry = entry.WithField("username", identity.Username)
		}
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request")
		}
	}
}
