package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"NewsGuard/internal/domain"
	"NewsGuard/internal/ports"
)

// SQLiteHistory persists detection verdicts into SQLite for the stats
// endpoint and auditing.
type SQLiteHistory struct {
	db *sql.DB
}

var _ ports.DetectionHistory = (*SQLiteHistory)(nil)

// Open creates or opens the history database at path and ensures the
// schema exists.
func Open(path string) (*SQLiteHistory, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS detections (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		label             TEXT NOT NULL,
		confidence        REAL NOT NULL,
		text_length       INTEGER NOT NULL DEFAULT 0,
		sensational_count INTEGER NOT NULL DEFAULT 0,
		emotional_count   INTEGER NOT NULL DEFAULT 0,
		input_type        TEXT NOT NULL DEFAULT 'text',
		created_at        DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_detections_created_at ON detections(created_at);
	CREATE INDEX IF NOT EXISTS idx_detections_label ON detections(label);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	return &SQLiteHistory{db: db}, nil
}

// Record inserts one verdict snapshot.
func (h *SQLiteHistory) Record(ctx context.Context, rec domain.DetectionRecord) error {
	builder := sq.Insert("detections").
		Columns("label", "confidence", "text_length", "sensational_count", "emotional_count", "input_type").
		Values(rec.Label, rec.Confidence, rec.TextLength, rec.SensationalCount, rec.EmotionalCount, rec.InputType)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := h.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert detection: %w", err)
	}
	return nil
}

// Stats aggregates all recorded verdicts.
func (h *SQLiteHistory) Stats(ctx context.Context) (domain.HistoryStats, error) {
	builder := sq.Select(
		"COUNT(*)",
		"COALESCE(SUM(CASE WHEN label = 'FAKE' THEN 1 ELSE 0 END), 0)",
		"COALESCE(AVG(confidence), 0)",
	).From("detections")

	query, args, err := builder.ToSql()
	if err != nil {
		return domain.HistoryStats{}, fmt.Errorf("build stats query: %w", err)
	}

	var stats domain.HistoryStats
	row := h.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&stats.Total, &stats.FakeCount, &stats.AvgConfidence); err != nil {
		return domain.HistoryStats{}, fmt.Errorf("scan stats: %w", err)
	}
	stats.RealCount = stats.Total - stats.FakeCount
	return stats, nil
}

// Close releases the underlying database.
func (h *SQLiteHistory) Close() error { return h.db.Close() }
