package database

import (
	"fmt"

	"gorm.io/gorm"
)

// RunMigrations executes all database migrations
func RunMigrations(db *gorm.DB) error {
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

func createIndexes(db *gorm.DB) error {
	// Record listing and duplicate checks
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_extracted_records_case
		ON extracted_records(court_name, case_number)
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_analysis_logs_time
		ON analysis_logs(analyzed_at)
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_analysis_logs_hash
		ON analysis_logs(doc_hash)
	`).Error; err != nil {
		return err
	}

	return nil
}
