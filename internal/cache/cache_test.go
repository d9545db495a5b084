package cache

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarionhq/feedback-engine/internal/monitoring"
)

func TestCacheGetSet(t *testing.T) {
	c := NewCache(time.Minute)

	_, found := c.Get("missing")
	assert.False(t, found)

	c.Set("k", []byte("v"))
	data, found := c.Get("k")
	require.True(t, found)
	assert.Equal(t, []byte("v"), data)

	c.Delete("k")
	_, found = c.Get("k")
	assert.False(t, found)
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10 * time.Millisecond)

	c.Set("k", []byte("v"))
	time.Sleep(20 * time.Millisecond)

	_, found := c.Get("k")
	assert.False(t, found)
}

func TestCacheStats(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))

	stats := c.Stats()
	assert.Equal(t, 2, stats["total_items"])
	assert.Equal(t, 2, stats["active_items"])
}

func TestMiddlewareReplaysIdenticalRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := NewCache(time.Minute)
	metrics := monitoring.NewMetrics()

	handlerCalls := 0
	r := gin.New()
	r.Use(c.Middleware(metrics, "/score"))
	r.POST("/score", func(ctx *gin.Context) {
		handlerCalls++
		ctx.JSON(http.StatusOK, gin.H{"calls": handlerCalls})
	})
	r.POST("/other", func(ctx *gin.Context) {
		handlerCalls++
		ctx.JSON(http.StatusOK, gin.H{"calls": handlerCalls})
	})

	post := func(path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	first := post("/score", `{"snapshot":{"id":"fb-1"}}`)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, 1, handlerCalls)

	// Identical body replays from cache without invoking the handler
	second := post("/score", `{"snapshot":{"id":"fb-1"}}`)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, handlerCalls)
	assert.Equal(t, first.Body.String(), second.Body.String())

	// Different body misses
	third := post("/score", `{"snapshot":{"id":"fb-2"}}`)
	assert.Equal(t, http.StatusOK, third.Code)
	assert.Equal(t, 2, handlerCalls)

	// Paths outside the cacheable set are never cached
	post("/other", `{"x":1}`)
	post("/other", `{"x":1}`)
	assert.Equal(t, 4, handlerCalls)
}
