// Package ginlog logs gin requests through a catlog CategoryLogger.
package ginlog

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/catlog/logger"
)

const (
	// HeaderRequestID is read and echoed by RequestID.
	HeaderRequestID = "X-Request-Id"
	contextKeyID    = "request_id"
)

var defaultSkipPaths = []string{"/health", "/alive", "/ready", "/metrics"}

type options struct {
	skipPaths []string
	message   string
}

// Option configures Middleware.
type Option func(*options)

// WithSkipPaths replaces the paths that are not logged. The default skips
// /health, /alive, /ready and /metrics, with or without an /api prefix.
func WithSkipPaths(paths ...string) Option {
	return func(o *options) { o.skipPaths = paths }
}

// WithMessage sets the record message. Default: "Request completed".
func WithMessage(msg string) Option {
	return func(o *options) { o.message = msg }
}

// Middleware logs every request after the handler chain has run. 5xx
// responses are logged as errors with the last gin error attached, 4xx as
// warnings and everything else as info.
func Middleware(log *logger.CategoryLogger, opts ...Option) gin.HandlerFunc {
	o := options{skipPaths: defaultSkipPaths, message: "Request completed"}
	for _, opt := range opts {
		opt(&o)
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if o.skip(path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		status := c.Writer.Status()
		if q := c.Request.URL.RawQuery; q != "" {
			path = path + "?" + q
		}
		fields := map[string]any{
			logger.FieldMethod:   c.Request.Method,
			logger.FieldPath:     path,
			logger.FieldStatus:   status,
			logger.FieldDuration: duration.Milliseconds(),
			logger.FieldClientIP: c.ClientIP(),
		}
		if id := c.GetString(contextKeyID); id != "" {
			fields[logger.FieldRequestID] = id
		} else if id := c.GetHeader(HeaderRequestID); id != "" {
			fields[logger.FieldRequestID] = id
		}

		switch {
		case status >= 500:
			if last := c.Errors.Last(); last != nil {
				log.Error(o.message, logger.Err(last.Err), fields)
			} else {
				log.Error(o.message, logger.Data(fields))
			}
		case status >= 400:
			if len(c.Errors) > 0 {
				fields["errors"] = c.Errors.Errors()
			}
			log.Warn(o.message, fields)
		default:
			log.Info(o.message, fields)
		}
	}
}

// RequestID assigns every request an X-Request-Id, keeping one sent by the
// client. Middleware picks it up when RequestID runs first.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextKeyID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func (o *options) skip(path string) bool {
	for _, p := range o.skipPaths {
		if path == p {
			return true
		}
		if strings.HasPrefix(path, "/api") && strings.HasSuffix(path, p) {
			return true
		}
	}
	return false
}
