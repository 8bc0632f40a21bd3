package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	data := []byte("condition,report_date\nMumps,2026-01-05\nMumps,2026-01-06\n")

	ds, warnings, err := Parse(data, "cases.csv")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Equal(t, 2, ds.RowCount())
	assert.Equal(t, []string{"condition", "report_date"}, ds.Columns)
	assert.Equal(t, "2026-01-06", ds.Value(1, "report_date"))
}

func TestParseCSVShortRecordPadded(t *testing.T) {
	data := []byte("a,b,c\n1,2\n")

	ds, _, err := Parse(data, "cases.csv")
	require.NoError(t, err)
	require.Equal(t, 1, ds.RowCount())
	assert.Equal(t, "", ds.Value(0, "c"))
}

func TestParseCSVLatin1Fallback(t *testing.T) {
	// 0xE9 is é in Latin-1 and an invalid UTF-8 sequence on its own.
	data := []byte("name\ncaf\xe9\n")

	ds, warnings, err := Parse(data, "cases.csv")
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "latin-1")
	assert.Equal(t, "café", ds.Value(0, "name"))
}

func TestParseCSVEmptyFile(t *testing.T) {
	ds, _, err := Parse([]byte(""), "cases.csv")
	require.NoError(t, err)
	assert.Equal(t, 0, ds.RowCount())
}

func TestParseCSVHeaderOnly(t *testing.T) {
	ds, _, err := Parse([]byte("a,b\n"), "cases.csv")
	require.NoError(t, err)
	assert.Equal(t, 0, ds.RowCount())
	assert.Equal(t, []string{"a", "b"}, ds.Columns)
}

func TestParseJSON(t *testing.T) {
	data := []byte(`[
		{"condition": "Mumps", "total": 12, "flagged": true, "note": null},
		{"condition": "Mumps", "total": 7.5}
	]`)

	ds, _, err := Parse(data, "cases.json")
	require.NoError(t, err)
	require.Equal(t, 2, ds.RowCount())
	assert.Equal(t, "12", ds.Value(0, "total"))
	assert.Equal(t, "7.5", ds.Value(1, "total"))
	assert.Equal(t, "true", ds.Value(0, "flagged"))
	assert.Equal(t, "", ds.Value(0, "note"))
	// Missing key reads as missing.
	assert.Equal(t, "", ds.Value(1, "flagged"))
}

func TestParseJSONBadPayload(t *testing.T) {
	_, _, err := Parse([]byte(`{"not": "an array"}`), "cases.json")
	assert.Error(t, err)
}

func TestUnknownExtensionFallsBackToCSV(t *testing.T) {
	ds, _, err := Parse([]byte("a,b\n1,2\n"), "cases.dat")
	require.NoError(t, err)
	assert.Equal(t, 1, ds.RowCount())
}
