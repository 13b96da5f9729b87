package providers

import (
	"sync"
	"time"

	"bsd/internal/structures"
)

// nopLogger satisfies Logger for provider tests that do not care about
// log output.
type nopLogger struct{}

func (n *nopLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (n *nopLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (n *nopLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (n *nopLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (n *nopLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (n *nopLogger) Close()                                        {}

// recordingMetrics records calls for middleware and cache wrapper tests.
type recordingMetrics struct {
	mu          sync.Mutex
	requests    map[string]int
	statuses    map[string]int
	durations   map[string]time.Duration
	cacheHits   int
	cacheMisses int
	events      map[string]int
	decodeFails int
	saveObs     int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		requests:  make(map[string]int),
		statuses:  make(map[string]int),
		durations: make(map[string]time.Duration),
		events:    make(map[string]int),
	}
}

func (m *recordingMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[endpoint]++
	m.statuses[endpoint] = status
}

func (m *recordingMetrics) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations[endpoint] = duration
}

func (m *recordingMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

func (m *recordingMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheMisses++
}

func (m *recordingMetrics) IncEventsTotal(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[kind]++
}

func (m *recordingMetrics) IncSnapshotDecodeFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decodeFails++
}

func (m *recordingMetrics) ObserveSnapshotSaveDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveObs++
}

func validTestConfig(dir string) *structures.Config {
	return &structures.Config{
		AppName: "BotStatisticDaemon",
		WebServer: structures.Server{
			Host: "localhost",
			Port: 8081,
		},
		Snapshot: structures.SnapshotConfig{
			Dir:          dir,
			SaveInterval: 30 * time.Second,
		},
		Analytics: structures.AnalyticsConfig{
			WindowDays: 30,
			RecentDays: 7,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
		Cache: structures.CacheConfig{
			Enabled: true,
			Size:    16,
		},
	}
}
