package statistics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresDB хранит статистику в PostgreSQL
type PostgresDB struct {
	db *sql.DB
}

var _ DB = (*PostgresDB)(nil)

// NewPostgresDB подключается к PostgreSQL по DSN и создает схему
func NewPostgresDB(ctx context.Context, dsn string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	p := &PostgresDB{db: db}
	if err := p.InitSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return p, nil
}

// InitSchema инициализирует схему базы данных
func (p *PostgresDB) InitSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS request_logs (
			id SERIAL PRIMARY KEY,
			timestamp TIMESTAMP WITH TIME ZONE NOT NULL,
			path TEXT NOT NULL,
			method TEXT NOT NULL,
			duration_ns BIGINT NOT NULL,
			success BOOLEAN NOT NULL
		);

		CREATE TABLE IF NOT EXISTS generation_logs (
			id SERIAL PRIMARY KEY,
			timestamp TIMESTAMP WITH TIME ZONE NOT NULL,
			template TEXT NOT NULL,
			format TEXT NOT NULL,
			duration_ns BIGINT NOT NULL,
			has_error BOOLEAN NOT NULL
		);

		CREATE TABLE IF NOT EXISTS gotenberg_logs (
			id SERIAL PRIMARY KEY,
			timestamp TIMESTAMP WITH TIME ZONE NOT NULL,
			duration_ns BIGINT NOT NULL,
			has_error BOOLEAN NOT NULL,
			is_health_check BOOLEAN NOT NULL DEFAULT FALSE
		);

		CREATE TABLE IF NOT EXISTS file_logs (
			id SERIAL PRIMARY KEY,
			timestamp TIMESTAMP WITH TIME ZONE NOT NULL,
			format TEXT NOT NULL,
			size_bytes BIGINT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_request_logs_timestamp ON request_logs(timestamp);
		CREATE INDEX IF NOT EXISTS idx_generation_logs_timestamp ON generation_logs(timestamp);
		CREATE INDEX IF NOT EXISTS idx_gotenberg_logs_timestamp ON gotenberg_logs(timestamp);
		CREATE INDEX IF NOT EXISTS idx_file_logs_timestamp ON file_logs(timestamp);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// LogRequest записывает информацию о запросе
func (p *PostgresDB) LogRequest(ctx context.Context, timestamp time.Time, path, method string, duration time.Duration, success bool) error {
	_, err := p.db.ExecContext(ctx,
		"INSERT INTO request_logs (timestamp, path, method, duration_ns, success) VALUES ($1, $2, $3, $4, $5)",
		timestamp.UTC(), path, method, duration.Nanoseconds(), success,
	)
	return err
}

// LogGeneration записывает информацию о сборке презентации
func (p *PostgresDB) LogGeneration(ctx context.Context, timestamp time.Time, template, format string, duration time.Duration, hasError bool) error {
	_, err := p.db.ExecContext(ctx,
		"INSERT INTO generation_logs (timestamp, template, format, duration_ns, has_error) VALUES ($1, $2, $3, $4, $5)",
		timestamp.UTC(), template, format, duration.Nanoseconds(), hasError,
	)
	return err
}

// LogGotenberg записывает информацию о запросе к Gotenberg
func (p *PostgresDB) LogGotenberg(ctx context.Context, timestamp time.Time, duration time.Duration, hasError, isHealthCheck bool) error {
	_, err := p.db.ExecContext(ctx,
		"INSERT INTO gotenberg_logs (timestamp, duration_ns, has_error, is_health_check) VALUES ($1, $2, $3, $4)",
		timestamp.UTC(), duration.Nanoseconds(), hasError, isHealthCheck,
	)
	return err
}

// LogFile записывает информацию о готовом файле
func (p *PostgresDB) LogFile(ctx context.Context, timestamp time.Time, format string, size int64) error {
	_, err := p.db.ExecContext(ctx,
		"INSERT INTO file_logs (timestamp, format, size_bytes) VALUES ($1, $2, $3)",
		timestamp.UTC(), format, size,
	)
	return err
}

// filter условие по времени для запросов статистики
func filter(since time.Time) (string, []any) {
	if since.IsZero() {
		return "", nil
	}
	return "WHERE timestamp >= $1", []any{since.UTC()}
}

// GetStatistics возвращает статистику за указанный период
func (p *PostgresDB) GetStatistics(ctx context.Context, since time.Time) (*Stats, error) {
	stats := newStats()
	where, params := filter(since)

	if err := p.requestStats(ctx, &stats.Requests, where, params); err != nil {
		return nil, err
	}
	if err := p.generationStats(ctx, &stats.Generations, where, params); err != nil {
		return nil, err
	}
	if err := p.gotenbergStats(ctx, &stats.Gotenberg, where, params); err != nil {
		return nil, err
	}
	if err := p.fileStats(ctx, &stats.Files, where, params); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (p *PostgresDB) requestStats(ctx context.Context, r *RequestStats, where string, params []any) error {
	var total, minD, maxD int64
	var last sql.NullTime
	err := p.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN success THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN success THEN 0 ELSE 1 END), 0),
			COALESCE(SUM(duration_ns), 0),
			COALESCE(MIN(duration_ns), 0),
			COALESCE(MAX(duration_ns), 0),
			MAX(timestamp)
		FROM request_logs
		%s
	`, where), params...).Scan(&r.TotalRequests, &r.SuccessRequests, &r.FailedRequests, &total, &minD, &maxD, &last)
	if err != nil {
		return fmt.Errorf("error scanning request stats: %w", err)
	}
	r.TotalDuration, r.MinDuration, r.MaxDuration = time.Duration(total), time.Duration(minD), time.Duration(maxD)
	if last.Valid {
		r.LastUpdated = last.Time
	}

	rows, err := p.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT EXTRACT(DOW FROM timestamp)::INT, EXTRACT(HOUR FROM timestamp)::INT, COUNT(*)
		FROM request_logs
		%s
		GROUP BY 1, 2
	`, where), params...)
	if err != nil {
		return fmt.Errorf("error querying request distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day, hour int
		var count uint64
		if err := rows.Scan(&day, &hour, &count); err != nil {
			return fmt.Errorf("error scanning request distribution: %w", err)
		}
		r.RequestsByDay[time.Weekday(day)] += count
		r.RequestsByHour[hour] += count
	}
	return rows.Err()
}

func (p *PostgresDB) generationStats(ctx context.Context, g *GenerationStats, where string, params []any) error {
	var total, minD, maxD int64
	var last sql.NullTime
	err := p.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN has_error THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(duration_ns), 0),
			COALESCE(MIN(duration_ns), 0),
			COALESCE(MAX(duration_ns), 0),
			MAX(timestamp)
		FROM generation_logs
		%s
	`, where), params...).Scan(&g.TotalGenerations, &g.ErrorGenerations, &total, &minD, &maxD, &last)
	if err != nil {
		return fmt.Errorf("error scanning generation stats: %w", err)
	}
	g.TotalDuration, g.MinDuration, g.MaxDuration = time.Duration(total), time.Duration(minD), time.Duration(maxD)
	if last.Valid {
		g.LastGenerationTime = last.Time
	}

	rows, err := p.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT template, format, COUNT(*)
		FROM generation_logs
		%s
		GROUP BY template, format
	`, where), params...)
	if err != nil {
		return fmt.Errorf("error querying generation distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var template, format string
		var count uint64
		if err := rows.Scan(&template, &format, &count); err != nil {
			return fmt.Errorf("error scanning generation distribution: %w", err)
		}
		g.ByTemplate[template] += count
		g.ByFormat[format] += count
	}
	return rows.Err()
}

func (p *PostgresDB) gotenbergStats(ctx context.Context, g *GotenbergStats, where string, params []any) error {
	var total, minD, maxD int64
	var last sql.NullTime
	err := p.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN has_error THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN is_health_check THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(duration_ns), 0),
			COALESCE(MIN(duration_ns), 0),
			COALESCE(MAX(duration_ns), 0),
			MAX(timestamp)
		FROM gotenberg_logs
		%s
	`, where), params...).Scan(&g.TotalRequests, &g.ErrorRequests, &g.HealthChecks, &total, &minD, &maxD, &last)
	if err != nil {
		return fmt.Errorf("error scanning gotenberg stats: %w", err)
	}
	g.TotalDuration, g.MinDuration, g.MaxDuration = time.Duration(total), time.Duration(minD), time.Duration(maxD)
	if last.Valid {
		g.LastRequestTime = last.Time
	}
	return nil
}

func (p *PostgresDB) fileStats(ctx context.Context, f *FileStats, where string, params []any) error {
	var last sql.NullTime
	err := p.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT
			COUNT(*),
			COALESCE(SUM(size_bytes), 0),
			COALESCE(MIN(size_bytes), 0),
			COALESCE(MAX(size_bytes), 0),
			MAX(timestamp)
		FROM file_logs
		%s
	`, where), params...).Scan(&f.TotalFiles, &f.TotalSize, &f.MinSize, &f.MaxSize, &last)
	if err != nil {
		return fmt.Errorf("error scanning file stats: %w", err)
	}
	if f.TotalFiles > 0 {
		f.AverageSize = float64(f.TotalSize) / float64(f.TotalFiles)
	}
	if last.Valid {
		f.LastProcessedTime = last.Time
	}
	return nil
}

// Close закрывает соединение с базой данных
func (p *PostgresDB) Close() error {
	return p.db.Close()
}
