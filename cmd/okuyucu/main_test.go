package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JustJay7/hukuk-okuyucu/internal/extract"
)

const decision = `T.C.
ANKARA 3. ASLİYE HUKUK MAHKEMESİ
ESAS NO : 2022/88
KARAR NO : 2023/412
GEREĞİ DÜŞÜNÜLDÜ:
1-Davanın KISMEN KABULÜNE,
Dair karar verildi.`

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STORE_BACKEND", "csv")
	t.Setenv("CSV_PATH", filepath.Join(dir, "kararlar.csv"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("MIN_TEXT_LENGTH", "10")
	t.Setenv("RULES_PATH", "")

	path := filepath.Join(dir, "karar.txt")
	require.NoError(t, os.WriteFile(path, []byte(decision), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAnalyzeAndRecords(t *testing.T) {
	path := setupEnv(t)

	out, _, err := run(t, "analyze", "--text", "--save", path)
	require.NoError(t, err)

	var records []extract.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "karar.txt", records[0].SourceName)
	assert.Equal(t, "2022/88", records[0].CaseNumber)
	assert.Equal(t, string(extract.OutcomePartiallyAccepted), records[0].Outcome)

	out, _, err = run(t, "records")
	require.NoError(t, err)
	var stored []extract.Record
	require.NoError(t, json.Unmarshal([]byte(out), &stored))
	assert.Equal(t, records, stored)
}

func TestAnalyzeReportsFailures(t *testing.T) {
	path := setupEnv(t)
	missing := filepath.Join(filepath.Dir(path), "yok.pdf")

	out, stderr, err := run(t, "analyze", "--text", path, missing)
	assert.Error(t, err)
	assert.Contains(t, stderr, "yok.pdf")

	var records []extract.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Len(t, records, 1)
}

func TestAnalyzeRejectsNonPDF(t *testing.T) {
	path := setupEnv(t)

	_, stderr, err := run(t, "analyze", path)
	assert.Error(t, err)
	assert.Contains(t, stderr, "not a PDF")
}

func TestExplain(t *testing.T) {
	path := setupEnv(t)

	out, _, err := run(t, "explain", "--text", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Kısmen Kabul")
	assert.Contains(t, out, "KISMEN KABULÜNE")
}

func TestRecordsEmpty(t *testing.T) {
	setupEnv(t)

	out, _, err := run(t, "records")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestExport(t *testing.T) {
	path := setupEnv(t)
	_, _, err := run(t, "analyze", "--text", "--save", path)
	require.NoError(t, err)

	out, _, err := run(t, "export", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "source_name")
	assert.Contains(t, out, "2022/88")

	xlsx := filepath.Join(t.TempDir(), "kararlar.xlsx")
	_, stderr, err := run(t, "export", "--format", "xlsx", "--out", xlsx)
	require.NoError(t, err)
	assert.Contains(t, stderr, "1 records")

	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Kararlar")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, _, err = run(t, "export", "--format", "xlsx")
	assert.Error(t, err)
	_, _, err = run(t, "export", "--format", "pdf")
	assert.Error(t, err)
}
