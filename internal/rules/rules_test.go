package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRules(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultValidates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadEmptyPath(t *testing.T) {
	tables, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), tables)
}

func TestLoadOverlay(t *testing.T) {
	path := writeRules(t, "rules.yaml", `
outcomes:
  - name: accepted
    phrases: ["HAKLI BULUNDU"]
    outcome: accepted
ruling_end:
  - "oy birliği ile"
`)

	tables, err := Load(path)
	require.NoError(t, err)

	require.Len(t, tables.Outcomes, 1)
	assert.Equal(t, []string{"HAKLI BULUNDU"}, tables.Outcomes[0].Phrases)
	assert.Equal(t, []string{"oy birliği ile"}, tables.RulingEnd)
	assert.Equal(t, Default().Labels, tables.Labels)
	assert.Equal(t, Default().Amounts, tables.Amounts)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad pattern", "substitutions:\n  - pattern: \"(\"\n    replacement: x\n"},
		{"not a fixed point", "substitutions:\n  - pattern: \"a\"\n    replacement: \"aa\"\n"},
		{"empty phrases", "outcomes:\n  - name: x\n    phrases: []\n    outcome: accepted\n"},
		{"missing amount keywords", "amounts:\n  attorney_fee: [\"ücret\"]\n"},
		{"amount frame without left side", "amounts:\n  attorney_fee: [\"ücret\"]\n  court_cost: [\"gider\"]\n  stamp_duty: [\"* harç\"]\n"},
		{"amount frame twice", "amounts:\n  attorney_fee: [\"ücret\"]\n  court_cost: [\"gider\"]\n  stamp_duty: [\"bakiye * * harç\"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeRules(t, "rules.yaml", tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "yok.yaml"))
	assert.Error(t, err)
}
