package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// MySQLLedger is a MySQL implementation of the ReminderLedger interface.
type MySQLLedger struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLLedger creates a new MySQL reminder ledger
func NewMySQLLedger(dsn string, logger *zap.Logger) (*MySQLLedger, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS reminder_ledger (
			invoice_key VARCHAR(255) PRIMARY KEY,
			sent_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLLedger{
		db:     db,
		logger: logger,
	}, nil
}

// WasSent reports whether a reminder was already recorded for the invoice.
func (l *MySQLLedger) WasSent(ctx context.Context, invoiceKey string) (bool, error) {
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
func (l *MySQLLedger) MarkSent(ctx context.Context, invoiceKey string) error {
	_, err := l.db.ExecContext(ctx, `
		REPLACE INTO reminder_ledger (invoice_key, sent_at)
		VALUES (?, ?)
	`, invoiceKey, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}

// Stop closes the database connection.
func (l *MySQLLedger) Stop() {
	if err := l.db.Close(); err != nil {
		l.logger.Error("Failed to close MySQL database", zap.Error(err))
	}
}
