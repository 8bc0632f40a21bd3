package checks

import (
	"fmt"
	"strings"

	"github.com/baysideshrimping/ncird-operations-center/internal/tabular"
)

// CheckDuplicateRows scans the dataset for rows that collide on the given
// column subset (all columns when subset is empty). Every colliding row is
// reported, including the first occurrence of each duplicate group. The
// summary message shows at most the first 10 display row numbers.
func CheckDuplicateRows(ds *tabular.Dataset, subset []string) (bool, []int, string) {
	cols := subset
	if len(cols) == 0 {
		cols = ds.Columns
	}

	keyFor := func(row tabular.Row) string {
		parts := make([]string, len(cols))
		for i, col := range cols {
			parts[i] = row[col]
		}
		return strings.Join(parts, "\x1f")
	}

	counts := make(map[string]int, len(ds.Rows))
	for _, row := range ds.Rows {
		counts[keyFor(row)]++
	}

	var dupIndices []int
	for i, row := range ds.Rows {
		if counts[keyFor(row)] > 1 {
			dupIndices = append(dupIndices, i)
		}
	}
	if len(dupIndices) == 0 {
		return false, nil, ""
	}

	rowNums := make([]int, len(dupIndices))
	for i, idx := range dupIndices {
		rowNums[i] = tabular.DisplayRow(idx)
	}
	shown := rowNums
	if len(shown) > 10 {
		shown = shown[:10]
	}
	msg := fmt.Sprintf("Found %d duplicate rows: %v", len(dupIndices), shown)
	if len(rowNums) > 10 {
		msg += fmt.Sprintf("... (%d total)", len(rowNums))
	}
	return true, dupIndices, msg
}
