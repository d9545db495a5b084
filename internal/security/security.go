package security

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Config holds request hardening configuration
type Config struct {
	MaxBodyBytes   int64         `json:"max_body_bytes"`
	RequestTimeout time.Duration `json:"request_timeout"`
}

// DefaultConfig returns secure defaults
func DefaultConfig() Config {
	return Config{
		MaxBodyBytes:   1 << 20, // 1 MiB is far beyond any legitimate payload
		RequestTimeout: 30 * time.Second,
	}
}

// Middleware provides request hardening for the API
type Middleware struct {
	config Config
}

// NewMiddleware creates a new hardening middleware instance
func NewMiddleware(config Config) *Middleware {
	return &Middleware{config: config}
}

// Headers sets standard security response headers
func (m *Middleware) Headers(c *gin.Context) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")
	c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
	c.Header("Cache-Control", "no-store")
	c.Next()
}

// ValidateContentType rejects mutating requests that are not JSON
func (m *Middleware) ValidateContentType(c *gin.Context) {
	if c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut {
		contentType := c.GetHeader("Content-Type")
		if !strings.Contains(contentType, "application/json") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{
				"error": "Content-Type must be application/json",
			})
			c.Abort()
			return
		}
	}
	c.Next()
}

// BodySizeLimit caps the request body so oversized payloads fail fast
func (m *Middleware) BodySizeLimit(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, m.config.MaxBodyBytes)
	c.Next()
}

// RequestTimeout bounds how long a single request may run
func (m *Middleware) RequestTimeout(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), m.config.RequestTimeout)
	defer cancel()

	c.Request = c.Request.WithContext(ctx)
	c.Next()
}
