package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/damlois/ai-credit-controller/internal/adapters/ledger"
	"github.com/damlois/ai-credit-controller/internal/config"
	"github.com/damlois/ai-credit-controller/internal/core"
	"go.uber.org/zap"
)

// LedgerFactory creates reminder ledgers based on configuration
type LedgerFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLedgerFactory creates a new ledger factory
func NewLedgerFactory(cfg *config.Config, logger *zap.Logger) *LedgerFactory {
	return &LedgerFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateReminderLedger creates a reminder ledger based on the configuration
func (f *LedgerFactory) CreateReminderLedger() (core.ReminderLedger, error) {
	ledgerType := f.cfg.GetString("ledger.type")

	switch ledgerType {
	case "memory":
		return ledger.NewMemoryLedger(f.logger), nil
	case "sqlite":
		sqlitePath := f.cfg.GetString("ledger.sqlite_path")
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return ledger.NewSQLiteLedger(sqlitePath, f.logger)
	case "mysql":
		mysqlDSN := f.cfg.GetString("ledger.mysql_dsn")
		return ledger.NewMySQLLedger(mysqlDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported ledger type: %s", ledgerType)
	}
}
