package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/damlois/ai-credit-controller/internal/adapters/activity"
	"github.com/damlois/ai-credit-controller/internal/config"
	"github.com/damlois/ai-credit-controller/internal/core"
	"go.uber.org/zap"
)

// ActivityFactory creates activity logs based on configuration
type ActivityFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewActivityFactory creates a new activity log factory
func NewActivityFactory(cfg *config.Config, logger *zap.Logger) *ActivityFactory {
	return &ActivityFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateActivityLog creates an activity log based on the configuration
func (f *ActivityFactory) CreateActivityLog() (core.ActivityLog, error) {
	logType := f.cfg.GetString("activity.type")

	switch logType {
	case "memory":
		return activity.NewMemoryLog(f.logger), nil
	case "sqlite":
		sqlitePath := f.cfg.GetString("activity.sqlite_path")
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return activity.NewSQLiteLog(sqlitePath, f.logger)
	default:
		return nil, fmt.Errorf("unsupported activity log type: %s", logType)
	}
}

// DisplayLimit returns how many records the activity view shows.
func (f *ActivityFactory) DisplayLimit() int {
	return f.cfg.GetInt("activity.display_limit")
}
