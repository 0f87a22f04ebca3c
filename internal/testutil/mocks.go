package testutil

import (
	"goalboard/internal/models"
	"goalboard/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
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
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level on channel t.
func (m *MockLogger) Count(level string, t providers.TypeEnum) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level && e.Type == t {
			n++
		}
	}
	return n
}

// MockGoalService implements services.GoalServiceInterface on top of a real
// ledger so snapshots stay consistent.
type MockGoalService struct {
	mu        sync.Mutex
	Ledger    *models.Ledger
	AddCalls  int
	Observers int
}

func NewMockGoalService(opts ...models.LedgerOption) *MockGoalService {
	l := models.NewLedger(models.DefaultGoal, opts...)
	l.Initialize()
	return &MockGoalService{Ledger: l}
}

func (m *MockGoalService) AddRandomContribution() models.Contribution {
	m.mu.Lock()
	m.AddCalls++
	m.mu.Unlock()
	return m.Ledger.AddRandomSample()
}

func (m *MockGoalService) GetSnapshot() *models.Snapshot { return m.Ledger.Snapshot() }
func (m *MockGoalService) GetProgress() float64          { return m.Ledger.Progress() }
func (m *MockGoalService) GetCurrent() int               { return m.Ledger.Current() }
func (m *MockGoalService) GetGoal() int                  { return m.Ledger.Goal() }
func (m *MockGoalService) GetContributionCount() int     { return m.Ledger.Len() }
func (m *MockGoalService) GetVersion() uint64            { return m.Ledger.Version() }

func (m *MockGoalService) Subscribe(observer models.LedgerObserver) func() {
	m.mu.Lock()
	m.Observers++
	m.mu.Unlock()
	return m.Ledger.Subscribe(observer)
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

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu            sync.Mutex
	Requests      int
	CacheHits     int
	CacheMisses   int
	Contributions map[models.ContributionType]int
	Points        int
	WsClients     int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
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
func (m *MockMetrics) ObserveContribution(kind models.ContributionType, points int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Contributions == nil {
		m.Contributions = make(map[models.ContributionType]int)
	}
	m.Contributions[kind]++
	m.Points += points
}
func (m *MockMetrics) SetWsClients(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WsClients = count
}

func (m *MockMetrics) GetWsClients() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.WsClients
}
