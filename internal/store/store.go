// Package store persists confirmed records. Records are append-only: there
// is no update or delete.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/JustJay7/hukuk-okuyucu/internal/config"
	"github.com/JustJay7/hukuk-okuyucu/internal/extract"
	"github.com/JustJay7/hukuk-okuyucu/pkg/logger"
)

// ErrUnknownBackend is returned by Open for an unsupported STORE_BACKEND
var ErrUnknownBackend = errors.New("unknown store backend")

// RecordStore is an append-only collection of records
type RecordStore interface {
	Append(ctx context.Context, rec extract.Record) error
	All(ctx context.Context) ([]extract.Record, error)
	Close() error
}

// Open returns the backend selected by cfg. db is only used by the sqlite
// backend.
func Open(ctx context.Context, cfg *config.Config, db *gorm.DB, log *logger.Logger) (RecordStore, error) {
	switch cfg.StoreBackend {
	case config.StoreCSV:
		log.Info("Using CSV record store", "path", cfg.CSVPath)
		return NewCSVStore(cfg.CSVPath), nil
	case config.StoreSQLite:
		if db == nil {
			return nil, errors.New("sqlite store requires a database")
		}
		log.Info("Using sqlite record store", "path", cfg.DatabasePath)
		return NewDBStore(db), nil
	case config.StorePostgres:
		log.Info("Using postgres record store")
		return NewPGStore(ctx, cfg.PostgresURL)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.StoreBackend)
	}
}

// sanitize re-applies placeholders and length bounds to a record coming
// from outside the analyzer, e.g. an edited review form
func sanitize(rec extract.Record) extract.Record {
	return extract.FromValues(rec.Values())
}
