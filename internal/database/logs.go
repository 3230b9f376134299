package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// LogAnalysis stores one analysis attempt
func LogAnalysis(db *gorm.DB, entry *AnalysisLog) error {
	if entry.AnalyzedAt.IsZero() {
		entry.AnalyzedAt = time.Now()
	}
	if err := db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to save analysis log: %w", err)
	}
	return nil
}

// RecentAnalyses returns the latest analysis attempts, newest first
func RecentAnalyses(db *gorm.DB, limit int) ([]AnalysisLog, error) {
	var logs []AnalysisLog
	if err := db.Order("analyzed_at desc, id desc").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch analysis logs: %w", err)
	}
	return logs, nil
}

// GetAnalysis returns one analysis attempt by id. A missing id yields
// gorm.ErrRecordNotFound.
func GetAnalysis(db *gorm.DB, id uint) (*AnalysisLog, error) {
	var entry AnalysisLog
	if err := db.First(&entry, id).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch analysis log %d: %w", id, err)
	}
	return &entry, nil
}
