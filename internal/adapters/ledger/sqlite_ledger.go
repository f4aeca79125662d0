package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteLedger is a SQLite implementation of the ReminderLedger interface.
type SQLiteLedger struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteLedger creates a new SQLite reminder ledger
func NewSQLiteLedger(dbPath string, logger *zap.Logger) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS reminder_ledger (
			invoice_key TEXT PRIMARY KEY,
			sent_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteLedger{
		db:     db,
		logger: logger,
	}, nil
}

// WasSent reports whether a reminder was already recorded for the invoice.
func (l *SQLiteLedger) WasSent(ctx context.Context, invoiceKey string) (bool, error) {
	var sentAt string
	err := l.db.QueryRowContext(ctx, `
		SELECT sent_at FROM reminder_ledger WHERE invoice_key = ?
	`, invoiceKey).Scan(&sentAt)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query reminder ledger: %w", err)
	}
	return true, nil
}

// MarkSent records that a reminder went out for the invoice.
func (l *SQLiteLedger) MarkSent(ctx context.Context, invoiceKey string) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO reminder_ledger (invoice_key, sent_at)
		VALUES (?, ?)
	`, invoiceKey, time.Now().UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}

// Stop closes the database connection.
func (l *SQLiteLedger) Stop() {
	if err := l.db.Close(); err != nil {
		l.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}
