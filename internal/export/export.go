// Package export renders records as downloadable CSV and XLSX files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/JustJay7/hukuk-okuyucu/internal/extract"
)

// SheetName is the worksheet holding the records in XLSX exports
const SheetName = "Kararlar"

// Column titles shown in XLSX exports
var titles = map[extract.Field]string{
	extract.FieldSourceName:       "Dosya",
	extract.FieldCourtName:        "Mahkeme",
	extract.FieldCaseNumber:       "Esas No",
	extract.FieldDecisionNumber:   "Karar No",
	extract.FieldCaseSubject:      "Dava Konusu",
	extract.FieldPlaintiff:        "Davacı",
	extract.FieldPlaintiffCounsel: "Davacı Vekili",
	extract.FieldDefendant:        "Davalı",
	extract.FieldDefendantCounsel: "Davalı Vekili",
	extract.FieldFilingDate:       "Dava Tarihi",
	extract.FieldDecisionDate:     "Karar Tarihi",
	extract.FieldWrittenDate:      "Yazım Tarihi",
	extract.FieldCaseCategory:     "Dava Türü",
	extract.FieldOutcome:          "Sonuç",
	extract.FieldWinner:           "Kazanan",
	extract.FieldLoser:            "Kaybeden",
	extract.FieldPaymentDirection: "Ödeme Yönü",
	extract.FieldAttorneyFee:      "Vekalet Ücreti",
	extract.FieldCourtCost:        "Yargılama Gideri",
	extract.FieldStampDuty:        "Harç",
}

// Title returns the Turkish column title of a field
func Title(f extract.Field) string {
	if t, ok := titles[f]; ok {
		return t
	}
	return string(f)
}

// CSV writes records in the same layout as the CSV record store
func CSV(records []extract.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(extract.Header()); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(rec.Values()); err != nil {
			return nil, fmt.Errorf("csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv write: %w", err)
	}
	return buf.Bytes(), nil
}

// XLSX returns a workbook with one header row and one row per record.
// Category and outcome are written with their Turkish labels.
func XLSX(records []extract.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, field := range extract.Fields {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, Title(field)); err != nil {
			return nil, fmt.Errorf("xlsx header: %w", err)
		}
	}

	for r, rec := range records {
		for i, field := range extract.Fields {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(SheetName, cell, displayValue(rec, field)); err != nil {
				return nil, fmt.Errorf("xlsx row %d: %w", r+1, err)
			}
		}
	}

	if err := layout(f, SheetName); err != nil {
		return nil, fmt.Errorf("xlsx layout: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// layout sets the column widths and freezes the header row
func layout(f *excelize.File, sheet string) error {
	last, err := excelize.ColumnNumberToName(len(extract.Fields))
	if err != nil {
		return err
	}
	widths := []struct {
		from, to string
		width    float64
	}{
		{"A", last, 18},
		{"B", "B", 40}, // court
		{"E", "I", 32}, // subject and parties
	}
	for _, w := range widths {
		if err := f.SetColWidth(sheet, w.from, w.to, w.width); err != nil {
			return err
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func displayValue(rec extract.Record, f extract.Field) string {
	switch f {
	case extract.FieldCaseCategory:
		return extract.Category(rec.CaseCategory).Label()
	case extract.FieldOutcome:
		return extract.Outcome(rec.Outcome).Label()
	}
	return rec.Get(f)
}
