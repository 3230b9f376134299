package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustJay7/hukuk-okuyucu/internal/config"
	"github.com/JustJay7/hukuk-okuyucu/internal/database"
	"github.com/JustJay7/hukuk-okuyucu/internal/extract"
	"github.com/JustJay7/hukuk-okuyucu/pkg/logger"
)

func sampleRecord(source string) extract.Record {
	rec := extract.NewRecord(source)
	rec.Set(extract.FieldCourtName, "ANKARA 2. İŞ MAHKEMESİ")
	rec.Set(extract.FieldCaseNumber, "2023/145")
	rec.Set(extract.FieldPlaintiff, `Ali "Veli", Kaya`)
	rec.Set(extract.FieldOutcome, string(extract.OutcomeAccepted))
	rec.Set(extract.FieldAttorneyFee, "1.500,00 TL")
	return rec
}

// testStores runs fn against every backend that needs no external service
func testStores(t *testing.T, fn func(t *testing.T, s RecordStore)) {
	t.Run("csv", func(t *testing.T) {
		fn(t, NewCSVStore(filepath.Join(t.TempDir(), "data", "kararlar.csv")))
	})
	t.Run("sqlite", func(t *testing.T) {
		db, err := database.Initialize(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { database.Close(db) })
		fn(t, NewDBStore(db))
	})
	if url := os.Getenv("POSTGRES_TEST_URL"); url != "" {
		t.Run("postgres", func(t *testing.T) {
			s, err := NewPGStore(context.Background(), url)
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			_, err = s.db.Exec(context.Background(), "TRUNCATE extracted_records")
			require.NoError(t, err)
			fn(t, s)
		})
	}
}

func TestAppendAll(t *testing.T) {
	testStores(t, func(t *testing.T, s RecordStore) {
		ctx := context.Background()

		records, err := s.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)

		first, second := sampleRecord("a.pdf"), sampleRecord("b.pdf")
		require.NoError(t, s.Append(ctx, first))
		require.NoError(t, s.Append(ctx, second))

		records, err = s.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, []extract.Record{first, second}, records)
	})
}

func TestAppendSanitizes(t *testing.T) {
	testStores(t, func(t *testing.T, s RecordStore) {
		ctx := context.Background()

		rec := extract.Record{SourceName: "el.pdf", CaseNumber: strings.Repeat("9", 40)}
		require.NoError(t, s.Append(ctx, rec))

		records, err := s.All(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, strings.Repeat("9", extract.MaxLen(extract.FieldCaseNumber)), records[0].CaseNumber)
		assert.Equal(t, extract.Placeholder, records[0].CourtName)
		assert.Equal(t, extract.AmountNotFound, records[0].StampDuty)
	})
}

func TestCSVStoreFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kararlar.csv")
	s := NewCSVStore(path)
	ctx := context.Background()

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, s.Append(ctx, sampleRecord("a.pdf")))
	require.NoError(t, s.Append(ctx, sampleRecord("b.pdf")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(extract.Header(), ","), lines[0])
	assert.Contains(t, lines[1], `"Ali ""Veli"", Kaya"`)
}

func TestCSVStoreConcurrentAppend(t *testing.T) {
	s := NewCSVStore(filepath.Join(t.TempDir(), "kararlar.csv"))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Append(ctx, sampleRecord("p.pdf")))
		}()
	}
	wg.Wait()

	records, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 20)
}

func TestReadCSVShortRows(t *testing.T) {
	records, err := ReadCSV(strings.NewReader("source_name,court_name\nx.pdf\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "x.pdf", records[0].SourceName)
	assert.Equal(t, extract.Placeholder, records[0].CourtName)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()

	s, err := Open(ctx, &config.Config{StoreBackend: config.StoreCSV, CSVPath: filepath.Join(t.TempDir(), "k.csv")}, nil, log)
	require.NoError(t, err)
	assert.IsType(t, &CSVStore{}, s)

	_, err = Open(ctx, &config.Config{StoreBackend: config.StoreSQLite}, nil, log)
	assert.Error(t, err)

	_, err = Open(ctx, &config.Config{StoreBackend: "excel"}, nil, log)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
