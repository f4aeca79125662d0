package activity

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/damlois/ai-credit-controller/internal/core"
)

// SQLiteLog is a SQLite implementation of the ActivityLog interface. It
// keeps the full audit trail on disk; only reads are display-truncated.
type SQLiteLog struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteLog creates a new SQLite activity log
func NewSQLiteLog(dbPath string, logger *zap.Logger) (*SQLiteLog, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS activity_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			detail TEXT NOT NULL,
			recorded_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteLog{
		db:     db,
		logger: logger,
	}, nil
}

// Append adds one record to the end of the log.
func (l *SQLiteLog) Append(ctx context.Context, record core.OutcomeRecord) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO activity_log (kind, detail, recorded_at)
		VALUES (?, ?, ?)
	`, string(record.Kind), record.Detail, record.RecordedAt.Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to insert activity record: %w", err)
	}
	return nil
}

// Recent returns at most n of the newest records, oldest first.
func (l *SQLiteLog) Recent(ctx context.Context, n int) ([]core.OutcomeRecord, error) {
	if n <= 0 {
		n = 50
	}
	rows, err := l.db.QueryContext(ctx, `
		SELECT kind, detail, recorded_at
		FROM activity_log
		ORDER BY id DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity log: %w", err)
	}
	defer rows.Close()

	var newestFirst []core.OutcomeRecord
	for rows.Next() {
		var kind, detail, recordedAt string
		if err := rows.Scan(&kind, &detail, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity record: %w", err)
		}
		ts, err := time.Parse(time.RFC3339, recordedAt)
		if err != nil {
			l.logger.Warn("Failed to parse recorded_at timestamp", zap.Error(err))
		}
		newestFirst = append(newestFirst, core.OutcomeRecord{
			Kind:       core.OutcomeKind(kind),
			Detail:     detail,
			RecordedAt: ts,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity log rows: %w", err)
	}

	// Reverse into append order
	records := make([]core.OutcomeRecord, len(newestFirst))
	for i, rec := range newestFirst {
		records[len(records)-1-i] = rec
	}
	return records, nil
}

// Stop closes the database connection.
func (l *SQLiteLog) Stop() {
	if err := l.db.Close(); err != nil {
		l.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}
