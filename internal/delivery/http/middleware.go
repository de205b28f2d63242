package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/RDias-31/presenteperfeito/internal/domain"
	"github.com/RDias-31/presenteperfeito/internal/infrastructure/logging"
	"github.com/RDias-31/presenteperfeito/internal/infrastructure/session"
)

// Gin context keys
const (
	ContextRequestID = "request_id"
	ContextUserID    = "user_id"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// TokenVerifier validates session tokens
type TokenVerifier interface {
	Verify(token string) (*session.Identity, error)
}

// RequestRecorder receives one observation per finished request
type RequestRecorder interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// CORSMiddleware handles CORS for the web client
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Check if origin is allowed
		if isAllowedOrigin(origin, allowedOrigins) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			c.Writer.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
			c.Writer.Header().Set("Access-Control-Max-Age", "3600")
			c.Writer.Header().Add("Vary", "Origin")
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
		// Trailing "*" matches by prefix, e.g. preview deployments
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

// RequestIDMiddleware assigns every request an id and a request-scoped logger
func RequestIDMiddleware(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		c.Set(ContextRequestID, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)

		ctx := logging.WithFields(c.Request.Context(), &logger, map[string]string{ContextRequestID: requestID})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// LoggerMiddleware logs one structured line per request and records its metrics.
// recorder may be nil.
func LoggerMiddleware(logger zerolog.Logger, recorder RequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()

		if recorder != nil {
			recorder.ObserveRequest(c.Request.Method, route, status, elapsed)
		}

		log := logging.FromContext(c.Request.Context(), &logger)
		var event *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			event = log.Error()
		case status >= http.StatusBadRequest:
			event = log.Warn()
		default:
			event = log.Info()
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Str("client_ip", c.ClientIP()).
			Msg("request completed")
	}
}

// RecoveryMiddleware turns panics into a 500 response and logs them
func RecoveryMiddleware(logger zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logging.FromContext(c.Request.Context(), &logger).Error().
			Str("panic", fmt.Sprint(recovered)).
			Str("path", c.Request.URL.Path).
			Msg("recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
	})
}

// TimeoutMiddleware bounds the request context. Handlers observe the deadline
// through ctx; nothing here writes a response.
func TimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AuthMiddleware requires a valid bearer token and stores the user id in the context
func AuthMiddleware(verifier TokenVerifier, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			respondError(c, fmt.Errorf("%w: no token verifier configured", domain.ErrUnauthenticated))
			return
		}

		token := session.BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			respondError(c, fmt.Errorf("%w: missing bearer token", domain.ErrUnauthenticated))
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			logging.FromContext(c.Request.Context(), &logger).Debug().Err(err).Msg("rejected session token")
			respondError(c, err)
			return
		}

		c.Set(ContextUserID, identity.UserID)
		ctx := logging.WithFields(c.Request.Context(), &logger, map[string]string{ContextUserID: identity.UserID})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
