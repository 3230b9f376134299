package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/JustJay7/hukuk-okuyucu/internal/database"
	"github.com/JustJay7/hukuk-okuyucu/internal/extract"
)

// DBStore keeps records in the extracted_records table of the analysis
// database
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Append(ctx context.Context, rec extract.Record) error {
	row := database.NewRecordRow(sanitize(rec))
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

func (s *DBStore) All(ctx context.Context) ([]extract.Record, error) {
	var rows []database.RecordRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	records := make([]extract.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Record())
	}
	return records, nil
}

// Close is a no-op; the database is owned by the caller
func (s *DBStore) Close() error {
	return nil
}
