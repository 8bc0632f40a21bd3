package validation

import (
	"strings"
	"time"

	"github.com/baysideshrimping/ncird-operations-center/internal/tabular"
)

// parseDate parses a submission date cell. Cross-field rules use the failed
// second return to skip the row: parse failures are already reported by the
// content-phase date checks and are never re-reported or treated as a value.
func parseDate(value string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// daysBetween returns whole days from a to b (negative when b precedes a).
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// codeForLabel resolves a coded value from its human label through the
// shared code table, so cross-field rules never compare against literal code
// strings that could drift from the table.
func codeForLabel(codes map[string]string, label string) string {
	for code, l := range codes {
		if l == label {
			return code
		}
	}
	return ""
}

// codeKeys returns the code strings of a code table for membership checks.
func codeKeys(codes map[string]string) []string {
	keys := make([]string, 0, len(codes))
	for code := range codes {
		keys = append(keys, code)
	}
	return keys
}

// cellUpper returns a trimmed, upper-cased cell value.
func cellUpper(ds *tabular.Dataset, index int, column string) string {
	return strings.ToUpper(strings.TrimSpace(ds.Value(index, column)))
}

// cell returns a trimmed cell value.
func cell(ds *tabular.Dataset, index int, column string) string {
	return strings.TrimSpace(ds.Value(index, column))
}
