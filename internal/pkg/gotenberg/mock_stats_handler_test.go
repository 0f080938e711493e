package gotenberg

import (
	"sync"
	"time"
)

type mockStatsHandler struct {
	mu            sync.Mutex
	calls         int
	duration      time.Duration
	hasError      bool
	isHealthCheck bool
}

func (m *mockStatsHandler) TrackGotenbergRequest(duration time.Duration, hasError bool, isHealthCheck bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.duration = duration
	m.hasError = hasError
	m.isHealthCheck = isHealthCheck
}
