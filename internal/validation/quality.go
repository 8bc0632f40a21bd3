package validation

import (
	"fmt"

	"github.com/baysideshrimping/ncird-operations-center/internal/checks"
	"github.com/baysideshrimping/ncird-operations-center/internal/tabular"
)

// placeholderSampleRows bounds the placeholder scan. Placeholder text is a
// data smell, not a structural failure, so only the head of each column is
// sampled to keep large files cheap.
const placeholderSampleRows = 100

// scanQuality runs the generic data quality pass applied to every stream:
// completely empty columns, spreadsheet error tokens anywhere, placeholder
// text in the sampled head of each column.
func scanQuality(ds *tabular.Dataset, result *Result) {
	for _, col := range ds.Columns {
		empty := true
		for i := range ds.Rows {
			if !tabular.IsMissing(ds.Value(i, col)) {
				empty = false
				break
			}
		}
		if empty {
			result.AddWarning(fmt.Sprintf("Column '%s' is completely empty", col))
		}
	}

	for _, col := range ds.Columns {
		for i := range ds.Rows {
			if ok, msg := checks.DetectExcelError(ds.Value(i, col)); !ok {
				result.AddErrorAt(msg, tabular.DisplayRow(i), col)
			}
		}
	}

	sample := ds.RowCount()
	if sample > placeholderSampleRows {
		sample = placeholderSampleRows
	}
	for _, col := range ds.Columns {
		for i := 0; i < sample; i++ {
			if ok, msg := checks.DetectPlaceholder(ds.Value(i, col)); !ok {
				result.AddWarningAt(fmt.Sprintf("Possible placeholder: %s", msg), tabular.DisplayRow(i), col)
			}
		}
	}
}
