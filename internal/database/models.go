package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/JustJay7/hukuk-okuyucu/internal/extract"
)

// AnalysisLog records every analysis attempt, successful or not
type AnalysisLog struct {
	gorm.Model
	SourceName   string    `json:"source_name"`
	DocHash      string    `json:"doc_hash" gorm:"size:64"`
	TextLength   int       `json:"text_length"`
	Pages        int       `json:"pages"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"error_message"`
	ArchivePath  string    `json:"archive_path"`
	IPAddress    string    `json:"ip_address"`
	AnalyzedAt   time.Time `json:"analyzed_at"`
}

// RecordRow is a confirmed record kept by the sqlite store
type RecordRow struct {
	ID               uint      `gorm:"primaryKey"`
	SourceName       string    `gorm:"size:255"`
	CourtName        string    `gorm:"size:150"`
	CaseNumber       string    `gorm:"size:20"`
	DecisionNumber   string    `gorm:"size:20"`
	CaseSubject      string    `gorm:"size:300"`
	Plaintiff        string    `gorm:"size:250"`
	PlaintiffCounsel string    `gorm:"size:250"`
	Defendant        string    `gorm:"size:250"`
	DefendantCounsel string    `gorm:"size:250"`
	FilingDate       string    `gorm:"size:10"`
	DecisionDate     string    `gorm:"size:10"`
	WrittenDate      string    `gorm:"size:10"`
	CaseCategory     string    `gorm:"size:20"`
	Outcome          string    `gorm:"size:20"`
	Winner           string    `gorm:"size:50"`
	Loser            string    `gorm:"size:50"`
	PaymentDirection string    `gorm:"size:100"`
	AttorneyFee      string    `gorm:"size:30"`
	CourtCost        string    `gorm:"size:30"`
	StampDuty        string    `gorm:"size:30"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

func (AnalysisLog) TableName() string {
	return "analysis_logs"
}

func (RecordRow) TableName() string {
	return "extracted_records"
}

// NewRecordRow copies a record into a table row
func NewRecordRow(r extract.Record) RecordRow {
	return RecordRow{
		SourceName:       r.SourceName,
		CourtName:        r.CourtName,
		CaseNumber:       r.CaseNumber,
		DecisionNumber:   r.DecisionNumber,
		CaseSubject:      r.CaseSubject,
		Plaintiff:        r.Plaintiff,
		PlaintiffCounsel: r.PlaintiffCounsel,
		Defendant:        r.Defendant,
		DefendantCounsel: r.DefendantCounsel,
		FilingDate:       r.FilingDate,
		DecisionDate:     r.DecisionDate,
		WrittenDate:      r.WrittenDate,
		CaseCategory:     r.CaseCategory,
		Outcome:          r.Outcome,
		Winner:           r.Winner,
		Loser:            r.Loser,
		PaymentDirection: r.PaymentDirection,
		AttorneyFee:      r.AttorneyFee,
		CourtCost:        r.CourtCost,
		StampDuty:        r.StampDuty,
	}
}

// Record converts the row back into a record
func (row RecordRow) Record() extract.Record {
	return extract.Record{
		SourceName:       row.SourceName,
		CourtName:        row.CourtName,
		CaseNumber:       row.CaseNumber,
		DecisionNumber:   row.DecisionNumber,
		CaseSubject:      row.CaseSubject,
		Plaintiff:        row.Plaintiff,
		PlaintiffCounsel: row.PlaintiffCounsel,
		Defendant:        row.Defendant,
		DefendantCounsel: row.DefendantCounsel,
		FilingDate:       row.FilingDate,
		DecisionDate:     row.DecisionDate,
		WrittenDate:      row.WrittenDate,
		CaseCategory:     row.CaseCategory,
		Outcome:          row.Outcome,
		Winner:           row.Winner,
		Loser:            row.Loser,
		PaymentDirection: row.PaymentDirection,
		AttorneyFee:      row.AttorneyFee,
		CourtCost:        row.CourtCost,
		StampDuty:        row.StampDuty,
	}
}
