package checks

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baysideshrimping/ncird-operations-center/internal/tabular"
)

func TestCheckDuplicateRowsSymmetry(t *testing.T) {
	ds := &tabular.Dataset{
		Columns: []string{"jurisdiction", "condition", "onset"},
		Rows: []tabular.Row{
			{"jurisdiction": "GA", "condition": "Mumps", "onset": "2026-01-05"},
			{"jurisdiction": "TX", "condition": "Mumps", "onset": "2026-01-06"},
			{"jurisdiction": "GA", "condition": "Mumps", "onset": "2026-01-05"},
		},
	}

	has, indices, msg := CheckDuplicateRows(ds, []string{"jurisdiction", "condition", "onset"})
	require.True(t, has)
	// Both twins are reported.
	assert.Equal(t, []int{0, 2}, indices)
	assert.Contains(t, msg, "Found 2 duplicate rows")
	assert.Contains(t, msg, "[2 4]")
}

func TestCheckDuplicateRowsNone(t *testing.T) {
	ds := &tabular.Dataset{
		Columns: []string{"a"},
		Rows:    []tabular.Row{{"a": "1"}, {"a": "2"}},
	}

	has, indices, msg := CheckDuplicateRows(ds, nil)
	assert.False(t, has)
	assert.Empty(t, indices)
	assert.Equal(t, "", msg)
}

func TestCheckDuplicateRowsSubsetOnly(t *testing.T) {
	ds := &tabular.Dataset{
		Columns: []string{"id", "state"},
		Rows: []tabular.Row{
			{"id": "1", "state": "GA"},
			{"id": "2", "state": "GA"},
		},
	}

	// Full-row comparison: unique.
	has, _, _ := CheckDuplicateRows(ds, nil)
	assert.False(t, has)

	// Subset comparison: duplicates on state.
	has, indices, _ := CheckDuplicateRows(ds, []string{"state"})
	assert.True(t, has)
	assert.Equal(t, []int{0, 1}, indices)
}

func TestCheckDuplicateRowsSummaryCap(t *testing.T) {
	ds := &tabular.Dataset{Columns: []string{"a"}}
	for i := 0; i < 14; i++ {
		ds.Rows = append(ds.Rows, tabular.Row{"a": "same"})
	}

	has, indices, msg := CheckDuplicateRows(ds, nil)
	require.True(t, has)
	assert.Len(t, indices, 14)
	assert.Contains(t, msg, "Found 14 duplicate rows")
	assert.Contains(t, msg, "... (14 total)")
	// Only the first ten display row numbers appear before the suffix.
	assert.Contains(t, msg, fmt.Sprintf("%d", tabular.DisplayRow(9)))
	assert.NotContains(t, msg, fmt.Sprintf(" %d]", tabular.DisplayRow(13)))
}
