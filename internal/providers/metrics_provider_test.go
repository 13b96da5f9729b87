package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHttpStatusBucket(t *testing.T) {
	assert.Equal(t, "2xx", httpStatusBucket(200))
	assert.Equal(t, "2xx", httpStatusBucket(201))
	assert.Equal(t, "3xx", httpStatusBucket(304))
	assert.Equal(t, "4xx", httpStatusBucket(404))
	assert.Equal(t, "5xx", httpStatusBucket(500))
	assert.Equal(t, "1xx", httpStatusBucket(101))
}

func TestMetricsProvider_DisabledReturnsNoop(t *testing.T) {
	conf := validTestConfig(t.TempDir())
	conf.Metrics.Enabled = false

	m := NewMetricsProvider(conf, nil)
	assert.IsType(t, &noopMetrics{}, m)

	// Noop accepts calls without a registry behind it.
	m.IncRequestsTotal("/live", 200)
	m.ObserveRequestDuration("/live", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncEventsTotal("receive")
	m.IncSnapshotDecodeFailures()
	m.ObserveSnapshotSaveDuration(time.Millisecond)
}
