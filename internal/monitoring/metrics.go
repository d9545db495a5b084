package monitoring

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds application metrics
type Metrics struct {
	RequestCount    int64
	ErrorCount      int64
	CacheHits       int64
	CacheMisses     int64
	ScoreCalls      int64
	ExperimentCalls int64
	StartTime       time.Time

	// Response time samples for percentiles
	ResponseTimes      []time.Duration
	ResponseTimesMutex sync.RWMutex

	// Status code tracking
	RequestCountByStatus map[int]int64
	StatusMutex          sync.RWMutex

	// Rate limit metrics
	RateLimitIPBlocks       int64
	RateLimitRedisErrors    int64
	RateLimitFallbackCount  int64
	RateLimitEndpointBlocks map[string]int64
	RateLimitMutex          sync.RWMutex
}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime:               time.Now(),
		ResponseTimes:           make([]time.Duration, 0, 1000),
		RequestCountByStatus:    make(map[int]int64),
		RateLimitEndpointBlocks: make(map[string]int64),
	}
}

// IncrementRequest increments the request count
func (m *Metrics) IncrementRequest() {
	atomic.AddInt64(&m.RequestCount, 1)
}

// IncrementError increments the error count
func (m *Metrics) IncrementError() {
	atomic.AddInt64(&m.ErrorCount, 1)
}

// IncrementCacheHit increments cache hit count
func (m *Metrics) IncrementCacheHit() {
	atomic.AddInt64(&m.CacheHits, 1)
}

// IncrementCacheMiss increments cache miss count
func (m *Metrics) IncrementCacheMiss() {
	atomic.AddInt64(&m.CacheMisses, 1)
}

// IncrementScoreCalls increments the priority-scorer invocation count
func (m *Metrics) IncrementScoreCalls() {
	atomic.AddInt64(&m.ScoreCalls, 1)
}

// IncrementExperimentCalls increments the experiment-engine invocation count
func (m *Metrics) IncrementExperimentCalls() {
	atomic.AddInt64(&m.ExperimentCalls, 1)
}

// RecordResponseTime records a response time sample. The last 1000 samples
// feed both the average and the percentiles.
func (m *Metrics) RecordResponseTime(duration time.Duration) {
	m.ResponseTimesMutex.Lock()
	m.ResponseTimes = append(m.ResponseTimes, duration)
	if len(m.ResponseTimes) > 1000 {
		m.ResponseTimes = m.ResponseTimes[1:]
	}
	m.ResponseTimesMutex.Unlock()
}

// averageResponseTime averages the retained sample window
func (m *Metrics) averageResponseTime() time.Duration {
	m.ResponseTimesMutex.RLock()
	defer m.ResponseTimesMutex.RUnlock()

	if len(m.ResponseTimes) == 0 {
		return 0
	}

	var total time.Duration
	for _, d := range m.ResponseTimes {
		total += d
	}
	return total / time.Duration(len(m.ResponseTimes))
}

// RecordRequestByStatus records request count by HTTP status code
func (m *Metrics) RecordRequestByStatus(statusCode int) {
	m.StatusMutex.Lock()
	defer m.StatusMutex.Unlock()
	m.RequestCountByStatus[statusCode]++
}

// IncrementRateLimitIPBlock increments IP rate limit block count
func (m *Metrics) IncrementRateLimitIPBlock() {
	atomic.AddInt64(&m.RateLimitIPBlocks, 1)
}

// IncrementRateLimitRedisError increments Redis rate limit error count
func (m *Metrics) IncrementRateLimitRedisError() {
	atomic.AddInt64(&m.RateLimitRedisErrors, 1)
}

// IncrementRateLimitFallback increments in-memory fallback usage count
func (m *Metrics) IncrementRateLimitFallback() {
	atomic.AddInt64(&m.RateLimitFallbackCount, 1)
}

// IncrementRateLimitEndpoint increments per-endpoint block count
func (m *Metrics) IncrementRateLimitEndpoint(endpoint string) {
	m.RateLimitMutex.Lock()
	defer m.RateLimitMutex.Unlock()
	m.RateLimitEndpointBlocks[endpoint]++
}

// percentile returns the p-th percentile of the recorded response times
func (m *Metrics) percentile(p float64) time.Duration {
	m.ResponseTimesMutex.RLock()
	defer m.ResponseTimesMutex.RUnlock()

	if len(m.ResponseTimes) == 0 {
		return 0
	}

	sorted := make([]time.Duration, len(m.ResponseTimes))
	copy(sorted, m.ResponseTimes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(float64(len(sorted)-1) * p / 100)
	return sorted[idx]
}

// GetStats returns a snapshot of all metrics
func (m *Metrics) GetStats() map[string]interface{} {
	m.StatusMutex.RLock()
	byStatus := make(map[int]int64, len(m.RequestCountByStatus))
	for code, count := range m.RequestCountByStatus {
		byStatus[code] = count
	}
	m.StatusMutex.RUnlock()

	m.RateLimitMutex.RLock()
	endpointBlocks := make(map[string]int64, len(m.RateLimitEndpointBlocks))
	for endpoint, count := range m.RateLimitEndpointBlocks {
		endpointBlocks[endpoint] = count
	}
	m.RateLimitMutex.RUnlock()

	return map[string]interface{}{
		"uptime_seconds":           time.Since(m.StartTime).Seconds(),
		"request_count":            atomic.LoadInt64(&m.RequestCount),
		"error_count":              atomic.LoadInt64(&m.ErrorCount),
		"cache_hits":               atomic.LoadInt64(&m.CacheHits),
		"cache_misses":             atomic.LoadInt64(&m.CacheMisses),
		"score_calls":              atomic.LoadInt64(&m.ScoreCalls),
		"experiment_calls":         atomic.LoadInt64(&m.ExperimentCalls),
		"avg_response_time_ms":     float64(m.averageResponseTime().Nanoseconds()) / 1e6,
		"p50_response_time_ms":     float64(m.percentile(50).Nanoseconds()) / 1e6,
		"p95_response_time_ms":     float64(m.percentile(95).Nanoseconds()) / 1e6,
		"p99_response_time_ms":     float64(m.percentile(99).Nanoseconds()) / 1e6,
		"requests_by_status":       byStatus,
		"rate_limit_ip_blocks":     atomic.LoadInt64(&m.RateLimitIPBlocks),
		"rate_limit_redis_errors":  atomic.LoadInt64(&m.RateLimitRedisErrors),
		"rate_limit_fallbacks":     atomic.LoadInt64(&m.RateLimitFallbackCount),
		"rate_limit_block_by_path": endpointBlocks,
	}
}
