package testutil

import (
	"strconv"
	"sync"
	"time"

	"bsd/internal/analytics"
	"bsd/internal/models"
	"bsd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu     sync.Mutex
	Logs   []LogEntry
	Closed bool
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
}

// MockStatsService implements services.StatsServiceInterface.
type MockStatsService struct {
	mu             sync.Mutex
	TrackCalls     []*models.Event
	TrackErr       error
	LiveRecords    map[models.BotIdentity]*models.ActivityRecord
	HistoryRecords map[string]*models.ActivityRecord // key: "bot:self:days"
	WindowData     []analytics.DayRecord
	WindowErr      error
	AnalyticsData  analytics.Report
	AnalyticsErr   error
	Identities     map[string][]string
	IdentitiesErr  error
	SaveAllCalls   int
	SaveAllErr     error
	LoadTodayCalls int
	LoadTodayErr   error
	LiveCount      int
}

func (m *MockStatsService) Track(event *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TrackErr != nil {
		return m.TrackErr
	}
	m.TrackCalls = append(m.TrackCalls, event)
	return nil
}

func (m *MockStatsService) GetLiveRecord(botID, botSelfID string) *models.ActivityRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := models.BotIdentity{BotID: botID, BotSelfID: botSelfID}
	if rec, ok := m.LiveRecords[id]; ok {
		return rec
	}
	return models.NewActivityRecord()
}

func (m *MockStatsService) GetHistoricalRecord(botID, botSelfID string, daysAgo int) (*models.ActivityRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := botID + ":" + botSelfID + ":" + strconv.Itoa(daysAgo)
	if rec, ok := m.HistoryRecords[key]; ok {
		return rec, nil
	}
	return models.NewActivityRecord(), nil
}

func (m *MockStatsService) GetWindow(_, _ string, _ int) ([]analytics.DayRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.WindowData, m.WindowErr
}

func (m *MockStatsService) GetAnalytics(_, _ string) (analytics.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.AnalyticsData, m.AnalyticsErr
}

func (m *MockStatsService) ListKnownIdentities() (map[string][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Identities, m.IdentitiesErr
}

func (m *MockStatsService) SaveAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveAllCalls++
	return m.SaveAllErr
}

func (m *MockStatsService) LoadToday() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadTodayCalls++
	return m.LoadTodayErr
}

func (m *MockStatsService) LiveIdentityCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LiveCount
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {
	m.Closed = true
}

// MockMetrics implements providers.MetricsProviderInterface and records calls.
type MockMetrics struct {
	mu            sync.Mutex
	Requests      map[string]int
	CacheHits     int
	CacheMisses   int
	Events        map[string]int
	DecodeFails   int
	SaveDurations []time.Duration
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Requests == nil {
		m.Requests = make(map[string]int)
	}
	m.Requests[endpoint]++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncEventsTotal(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Events == nil {
		m.Events = make(map[string]int)
	}
	m.Events[kind]++
}

func (m *MockMetrics) IncSnapshotDecodeFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DecodeFails++
}

func (m *MockMetrics) ObserveSnapshotSaveDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveDurations = append(m.SaveDurations, d)
}
