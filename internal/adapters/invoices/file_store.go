package invoices

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/damlois/ai-credit-controller/internal/core"
)

// FileStore is a JSON-file implementation of the InvoiceStore interface.
// The file is owned by an external billing process; the store never writes
// to it.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a new invoice file store
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

// Load reads the invoice file. A missing file is not an error; it yields
// an empty invoice list.
func (s *FileStore) Load(ctx context.Context) ([]core.Invoice, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("Invoice file not found", zap.String("path", s.path))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read invoice file: %w", err)
	}

	var invoices []core.Invoice
	if err := json.Unmarshal(data, &invoices); err != nil {
		return nil, fmt.Errorf("failed to parse invoice file: %w", err)
	}
	return invoices, nil
}
