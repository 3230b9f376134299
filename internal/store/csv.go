package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/JustJay7/hukuk-okuyucu/internal/extract"
)

// CSVStore appends records to a UTF-8 CSV file whose header is the record
// column order. The file is created on first write. Writers in other
// processes are not coordinated.
type CSVStore struct {
	path string
	mu   sync.Mutex
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

func (s *CSVStore) Append(ctx context.Context, rec extract.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open record file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat record file: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(extract.Header()); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	rec = sanitize(rec)
	if err := w.Write(rec.Values()); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

func (s *CSVStore) All(ctx context.Context) ([]extract.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []extract.Record{}, nil
		}
		return nil, fmt.Errorf("failed to open record file: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

func (s *CSVStore) Close() error {
	return nil
}

// ReadCSV parses records written by CSVStore or export.CSV. The first row
// is the header; short rows are padded with placeholders.
func ReadCSV(r io.Reader) ([]extract.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records := []extract.Record{}
	header := true
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record file: %w", err)
		}
		if header {
			header = false
			continue
		}
		records = append(records, extract.FromValues(row))
	}
	return records, nil
}
