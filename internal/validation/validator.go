package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/baysideshrimping/ncird-operations-center/internal/jurisdiction"
	"github.com/baysideshrimping/ncird-operations-center/internal/tabular"
)

// StreamValidator holds the rule set for one data stream: its required-field
// list plus the content and custom rule functions. One value exists per
// stream; the shared pipeline in run() is identical for all of them.
type StreamValidator struct {
	SystemID    string
	SystemName  string
	Description string

	// RequiredFields are the normalized column names that must be present.
	// RequiredFieldsLabel names the field group in the structural error
	// message ("required fields" when empty).
	RequiredFields      []string
	RequiredFieldsLabel string

	// Structure runs after the required-column check (and is skipped when
	// that check fails). Content and Custom run unconditionally against
	// whatever columns exist; Custom must only append findings, never fail.
	Structure func(ds *tabular.Dataset, result *Result)
	Content   func(ds *tabular.Dataset, result *Result)
	Custom    func(ds *tabular.Dataset, result *Result)
}

// ValidateFile is the main entry point: parse the uploaded file and run the
// full validation pipeline. It always returns a completed result; no failure
// mode escapes as an error or panic.
func (v *StreamValidator) ValidateFile(path, filename string) *Result {
	result := NewResult(v.SystemID, filename)

	ds, warnings, err := tabular.ReadFile(path)
	if err != nil {
		result.AddError(fmt.Sprintf("Error reading file: %v", err))
		result.Status = StatusFailed
		return result
	}
	for _, w := range warnings {
		result.AddWarning(w)
	}

	v.run(ds, result)
	return result
}

// ValidateDataset runs the pipeline against an already-parsed dataset.
func (v *StreamValidator) ValidateDataset(ds *tabular.Dataset, filename string) *Result {
	result := NewResult(v.SystemID, filename)
	v.run(ds, result)
	return result
}

func (v *StreamValidator) run(ds *tabular.Dataset, result *Result) {
	defer func() {
		if rec := recover(); rec != nil {
			result.AddError(fmt.Sprintf("Unexpected validation error: %v", rec))
			result.Status = StatusFailed
		}
	}()

	if ds == nil || ds.RowCount() == 0 {
		result.AddError("File is empty (no data rows)")
		result.Status = StatusFailed
		return
	}

	// Normalize once so every phase observes the same canonical columns.
	data := ds.Normalized()
	result.RowCount = data.RowCount()
	result.SetMetadata("column_count", len(data.Columns))

	extractJurisdiction(data, result)

	v.validateStructure(data, result)
	if v.Content != nil {
		v.Content(data, result)
	}
	scanQuality(data, result)
	if v.Custom != nil {
		v.Custom(data, result)
	}

	result.DetermineStatus()
}

// validateStructure checks the stream's required columns. A miss is one hard
// error and short-circuits the remaining structural checks; the later phases
// still run against whatever columns exist.
func (v *StreamValidator) validateStructure(ds *tabular.Dataset, result *Result) {
	var missing []string
	for _, col := range v.RequiredFields {
		if !ds.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		label := v.RequiredFieldsLabel
		if label == "" {
			label = "required fields"
		}
		result.AddError(fmt.Sprintf("Missing %s: %s", label, strings.Join(missing, ", ")))
		return
	}
	if v.Structure != nil {
		v.Structure(ds, result)
	}
}

// jurisdictionColumns is the priority list of candidate columns scanned when
// inferring the submitting jurisdiction.
var jurisdictionColumns = []string{
	"reporting_jurisdiction",
	"jurisdiction",
	"state",
	"state_code",
	"state_abbr",
	"submitting_state",
	"rpt_state",
	"fips_state",
}

// extractJurisdiction infers the submitting jurisdiction for dashboards. In
// each candidate column the most frequent resolvable value wins; equally
// frequent values tie-break in first-seen-in-data order. When no column
// yields a hit, filename tokens are tried as abbreviations. Absence of any
// hit leaves the jurisdiction unset.
func extractJurisdiction(ds *tabular.Dataset, result *Result) {
	for _, col := range jurisdictionColumns {
		if !ds.HasColumn(col) {
			continue
		}

		counts := map[string]int{}
		firstSeen := map[string]int{}
		var order []string
		for i := range ds.Rows {
			val := strings.ToUpper(strings.TrimSpace(ds.Value(i, col)))
			if val == "" {
				continue
			}
			if _, seen := counts[val]; !seen {
				firstSeen[val] = i
				order = append(order, val)
			}
			counts[val]++
		}
		sort.SliceStable(order, func(a, b int) bool {
			if counts[order[a]] != counts[order[b]] {
				return counts[order[a]] > counts[order[b]]
			}
			return firstSeen[order[a]] < firstSeen[order[b]]
		})

		for _, code := range order {
			if info, ok := jurisdiction.Resolve(code); ok {
				result.Jurisdiction = info.Abbr
				result.SetMetadata("jurisdiction_field", col)
				result.SetMetadata("jurisdiction_name", info.Name)
				return
			}
		}
	}

	// Filename fallback, e.g. "GA_nnad_2026.csv".
	base := strings.NewReplacer(".csv", "", ".xlsx", "").Replace(result.Filename)
	for _, part := range strings.Split(base, "_") {
		if info, ok := jurisdiction.ByAbbr(part); ok {
			result.Jurisdiction = info.Abbr
			result.SetMetadata("jurisdiction_source", "filename")
			result.SetMetadata("jurisdiction_name", info.Name)
			return
		}
	}
}
