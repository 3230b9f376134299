package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JustJay7/hukuk-okuyucu/internal/extract"
)

// PGStore keeps records in a postgres table of the same name and shape as
// the sqlite backend
type PGStore struct {
	db *pgxpool.Pool
}

// NewPGStore connects to url and creates the table if needed
func NewPGStore(ctx context.Context, url string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &PGStore{db: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PGStore) migrate(ctx context.Context) error {
	columns := make([]string, 0, len(extract.Fields))
	for _, f := range extract.Fields {
		columns = append(columns, fmt.Sprintf("%s VARCHAR(%d) NOT NULL", f, extract.MaxLen(f)))
	}

	query := `
		CREATE TABLE IF NOT EXISTS extracted_records (
			id BIGSERIAL PRIMARY KEY,
			` + strings.Join(columns, ",\n\t\t\t") + `,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`

	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create records table: %w", err)
	}
	return nil
}

func (s *PGStore) Append(ctx context.Context, rec extract.Record) error {
	rec = sanitize(rec)

	placeholders := make([]string, len(extract.Fields))
	for i := range extract.Fields {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(
		"INSERT INTO extracted_records (%s) VALUES (%s)",
		strings.Join(extract.Header(), ", "),
		strings.Join(placeholders, ", "),
	)

	values := rec.Values()
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

func (s *PGStore) All(ctx context.Context) ([]extract.Record, error) {
	query := fmt.Sprintf("SELECT %s FROM extracted_records ORDER BY id", strings.Join(extract.Header(), ", "))

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	defer rows.Close()

	records := []extract.Record{}
	for rows.Next() {
		values := make([]string, len(extract.Fields))
		dest := make([]any, len(values))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, extract.FromValues(values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	return records, nil
}

func (s *PGStore) Close() error {
	s.db.Close()
	return nil
}
