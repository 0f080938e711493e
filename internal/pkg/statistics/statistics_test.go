package statistics

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDB struct {
	mock.Mock
}

func (m *mockDB) LogRequest(ctx context.Context, ts time.Time, path, method string, d time.Duration, success bool) error {
	return m.Called(path, method, d, success).Error(0)
}

func (m *mockDB) LogGeneration(ctx context.Context, ts time.Time, template, format string, d time.Duration, hasError bool) error {
	return m.Called(template, format, d, hasError).Error(0)
}

func (m *mockDB) LogGotenberg(ctx context.Context, ts time.Time, d time.Duration, hasError, isHealthCheck bool) error {
	return m.Called(d, hasError, isHealthCheck).Error(0)
}

func (m *mockDB) LogFile(ctx context.Context, ts time.Time, format string, size int64) error {
	return m.Called(format, size).Error(0)
}

func (m *mockDB) GetStatistics(ctx context.Context, since time.Time) (*Stats, error) {
	args := m.Called(since)
	stats, _ := args.Get(0).(*Stats)
	return stats, args.Error(1)
}

func (m *mockDB) Close() error {
	return m.Called().Error(0)
}

func TestStatistics_InMemory(t *testing.T) {
	s := New(nil)

	s.TrackRequest("/api/v1/pdf/create", "POST", 100*time.Millisecond, true)
	s.TrackRequest("/api/v1/pdf/create", "POST", 300*time.Millisecond, false)
	s.TrackGeneration("real_estate_offer_template", "pdf", time.Second, false)
	s.TrackGeneration("real_estate_offer_template", "html", 3*time.Second, true)
	s.TrackGotenbergRequest(200*time.Millisecond, false, false)
	s.TrackGotenbergRequest(10*time.Millisecond, true, true)
	s.TrackFile("pdf", 1024)
	s.TrackFile("pdf", 3072)

	resp, err := s.GetStatistics(context.Background(), time.Time{})
	require.NoError(t, err)

	assert.Equal(t, uint64(2), resp.Requests.Total)
	assert.Equal(t, uint64(1), resp.Requests.Success)
	assert.Equal(t, uint64(1), resp.Requests.Failed)
	assert.Equal(t, "200ms", resp.Requests.AverageDuration)
	assert.Equal(t, "100ms", resp.Requests.MinDuration)
	assert.Equal(t, "300ms", resp.Requests.MaxDuration)

	var byHour uint64
	for _, v := range resp.Requests.ByHourOfDay {
		byHour += v
	}
	assert.Equal(t, uint64(2), byHour)

	assert.Equal(t, uint64(2), resp.Generations.Total)
	assert.Equal(t, uint64(1), resp.Generations.Errors)
	assert.Equal(t, map[string]uint64{"pdf": 1, "html": 1}, resp.Generations.ByFormat)
	assert.Equal(t, map[string]uint64{"real_estate_offer_template": 2}, resp.Generations.ByTemplate)
	assert.Equal(t, "2s", resp.Generations.AverageDuration)

	assert.Equal(t, uint64(2), resp.Gotenberg.TotalRequests)
	assert.Equal(t, uint64(1), resp.Gotenberg.ErrorRequests)
	assert.Equal(t, uint64(1), resp.Gotenberg.HealthChecks)

	assert.Equal(t, uint64(2), resp.Files.TotalFiles)
	assert.Equal(t, "4.0 KB", resp.Files.TotalSize)
	assert.Equal(t, "2.0 KB", resp.Files.AverageSize)
	assert.Equal(t, "1.0 KB", resp.Files.MinSize)
}

func TestStatistics_SnapshotIsCopy(t *testing.T) {
	s := New(nil)
	s.TrackGeneration("test_template", "pdf", time.Second, false)

	snap := s.Snapshot()
	snap.Generations.ByFormat["pdf"] = 100

	assert.Equal(t, uint64(1), s.Snapshot().Generations.ByFormat["pdf"])
}

func TestStatistics_PersistsToDB(t *testing.T) {
	db := &mockDB{}
	db.On("LogRequest", "/health", "GET", time.Millisecond, true).Return(nil).Once()
	db.On("LogGeneration", "test_template", "pdf", time.Second, false).Return(errors.New("db down")).Once()
	db.On("LogGotenberg", time.Millisecond, false, true).Return(nil).Once()
	db.On("LogFile", "pdf", int64(10)).Return(nil).Once()

	s := New(db)
	s.TrackRequest("/health", "GET", time.Millisecond, true)
	// ошибка базы не мешает учету в памяти
	s.TrackGeneration("test_template", "pdf", time.Second, false)
	s.TrackGotenbergRequest(time.Millisecond, false, true)
	s.TrackFile("pdf", 10)

	db.AssertExpectations(t)
	assert.Equal(t, uint64(1), s.Snapshot().Generations.TotalGenerations)
}

func TestStatistics_GetStatisticsFromDB(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	stats := newStats()
	stats.Generations.TotalGenerations = 7
	stats.Files.TotalSize = 2 << 20

	db := &mockDB{}
	db.On("GetStatistics", since).Return(&stats, nil).Once()

	resp, err := New(db).GetStatistics(context.Background(), since)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), resp.Generations.Total)
	assert.Equal(t, "2.0 MB", resp.Files.TotalSize)

	db.On("GetStatistics", time.Time{}).Return(nil, errors.New("boom")).Once()
	_, err = New(db).GetStatistics(context.Background(), time.Time{})
	assert.Error(t, err)
	db.AssertExpectations(t)
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KB"},
		{5 << 20, "5.0 MB"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatBytes(tt.in))
		})
	}
}

func TestPostgresDB_Integration(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := NewPostgresDB(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	since := time.Now().Add(-time.Second)
	require.NoError(t, db.LogGeneration(ctx, time.Now(), "test_template", "pdf", time.Second, false))
	require.NoError(t, db.LogFile(ctx, time.Now(), "pdf", 2048))

	stats, err := db.GetStatistics(ctx, since)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.Generations.TotalGenerations, uint64(1))
	assert.GreaterOrEqual(t, stats.Files.TotalFiles, uint64(1))
}
