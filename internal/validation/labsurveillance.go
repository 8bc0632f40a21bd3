package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/baysideshrimping/ncird-operations-center/internal/checks"
	"github.com/baysideshrimping/ncird-operations-center/internal/jurisdiction"
	"github.com/baysideshrimping/ncird-operations-center/internal/tabular"
)

var labSurveillanceRequiredFields = []string{
	"reporting_week",
	"reporting_lab",
	"state",
	"total_specimens_tested",
	"virus_type",
}

var labSurveillanceResultFields = []string{
	"positive_specimens",
	"negative_specimens",
	"percent_positive",
}

// virus types accepted by respiratory lab surveillance reporting.
var labSurveillanceVirusTypes = []string{
	"RSV",
	"Influenza A",
	"Influenza B",
	"Parainfluenza 1",
	"Parainfluenza 2",
	"Parainfluenza 3",
	"Parainfluenza 4",
	"Adenovirus",
	"Rhinovirus",
	"Coronavirus",
	"HMPV",
	"Enterovirus",
	"SARS-CoV-2",
}

var reportingWeekPattern = regexp.MustCompile(`^\d{4}-W\d{2}$`)

const (
	maxSpecimenCount = 100000
	// Tolerances for aggregate cross-checks. Counts may arrive as floats
	// from spreadsheet exports, so equality is checked within epsilon.
	countSumTolerance        = 0.01
	percentPositiveTolerance = 0.2
	lowSpecimenThreshold     = 10
)

// NewLabSurveillanceValidator builds the validator for weekly aggregate
// respiratory virus lab surveillance (system id "nrevss").
func NewLabSurveillanceValidator() *StreamValidator {
	return &StreamValidator{
		SystemID:            "nrevss",
		SystemName:          "NREVSS",
		Description:         "National Respiratory and Enteric Virus Surveillance System weekly aggregates",
		RequiredFields:      labSurveillanceRequiredFields,
		RequiredFieldsLabel: "required NREVSS fields",
		Structure:           labSurveillanceStructure,
		Content:             labSurveillanceContent,
		Custom:              labSurveillanceCustom,
	}
}

func labSurveillanceStructure(ds *tabular.Dataset, result *Result) {
	var missing []string
	for _, field := range labSurveillanceResultFields {
		if !ds.HasColumn(field) {
			missing = append(missing, field)
		}
	}
	if len(missing) == len(labSurveillanceResultFields) {
		result.AddError("No result fields present (need at least one of: " + strings.Join(labSurveillanceResultFields, ", ") + ")")
	} else if len(missing) > 0 {
		result.AddInfo(fmt.Sprintf("Result fields not included: %s", strings.Join(missing, ", ")))
	}
}

func labSurveillanceContent(ds *tabular.Dataset, result *Result) {
	if ds.HasColumn("state") {
		for i := range ds.Rows {
			state := cellUpper(ds, i, "state")
			if state == "" {
				continue
			}
			if _, ok := jurisdiction.ByAbbr(state); !ok {
				result.AddErrorAt(fmt.Sprintf("Invalid state code: %s", state), tabular.DisplayRow(i), "state")
			}
		}
	}

	if ds.HasColumn("reporting_week") {
		for i := range ds.Rows {
			week := cell(ds, i, "reporting_week")
			if week == "" {
				result.AddErrorAt("Reporting week is missing", tabular.DisplayRow(i), "reporting_week")
				continue
			}
			if !reportingWeekPattern.MatchString(week) {
				result.AddErrorAt(fmt.Sprintf("Invalid reporting week: %s (expected YYYY-WNN, e.g. 2026-W05)", week), tabular.DisplayRow(i), "reporting_week")
				continue
			}
			if num, err := strconv.Atoi(week[len(week)-2:]); err == nil && (num < 1 || num > 53) {
				result.AddErrorAt(fmt.Sprintf("Week number out of range: %d (must be 01-53)", num), tabular.DisplayRow(i), "reporting_week")
			}
		}
	}

	// Novel or renamed viruses show up in real submissions, so an unexpected
	// type degrades the verdict instead of failing it.
	if ds.HasColumn("virus_type") {
		for i := range ds.Rows {
			v := cell(ds, i, "virus_type")
			if v == "" {
				continue
			}
			if !knownVirusType(v) {
				result.AddWarningAt(fmt.Sprintf("Unexpected virus type: %s", v), tabular.DisplayRow(i), "virus_type")
				result.AddInfoAt(fmt.Sprintf("Common types: %s", strings.Join(labSurveillanceVirusTypes[:5], ", ")), tabular.DisplayRow(i), "")
			}
		}
	}

	countFields := []string{"total_specimens_tested", "positive_specimens", "negative_specimens"}
	for _, field := range countFields {
		if !ds.HasColumn(field) {
			continue
		}
		for i := range ds.Rows {
			v := cell(ds, i, field)
			if v == "" {
				continue
			}
			if ok, msg := checks.ValidateInteger(v, checks.Int(0), checks.Int(maxSpecimenCount), false); !ok {
				result.AddErrorAt(fmt.Sprintf("%s: %s", field, msg), tabular.DisplayRow(i), field)
			}
		}
	}

	if ds.HasColumn("percent_positive") {
		for i := range ds.Rows {
			v := cell(ds, i, "percent_positive")
			if v == "" {
				continue
			}
			if ok, msg := checks.ValidatePercentage(v, false, false); !ok {
				result.AddErrorAt(msg, tabular.DisplayRow(i), "percent_positive")
			}
		}
	}
}

func labSurveillanceCustom(ds *tabular.Dataset, result *Result) {
	validateSpecimenSums(ds, result)
	validatePercentPositive(ds, result)
	flagLowSpecimenCounts(ds, result)

	result.AddInfo(fmt.Sprintf("Validated %d weekly aggregate record(s)", ds.RowCount()))
	if ds.HasColumn("virus_type") {
		result.AddInfo(fmt.Sprintf("Virus types reported: %s", topValueCounts(ds, "virus_type", 5)))
	}
	if ds.HasColumn("reporting_lab") {
		labs := map[string]bool{}
		for i := range ds.Rows {
			if v := cell(ds, i, "reporting_lab"); v != "" {
				labs[v] = true
			}
		}
		result.AddInfo(fmt.Sprintf("Distinct reporting labs: %d", len(labs)))
	}
}

// validateSpecimenSums checks positive + negative = total within tolerance.
// Rows where any of the three fails to parse are skipped; the content phase
// already flagged non-numeric counts.
func validateSpecimenSums(ds *tabular.Dataset, result *Result) {
	if !ds.HasColumns("total_specimens_tested", "positive_specimens", "negative_specimens") {
		return
	}

	for i := range ds.Rows {
		total, okT := parseFloatCell(ds, i, "total_specimens_tested")
		positive, okP := parseFloatCell(ds, i, "positive_specimens")
		negative, okN := parseFloatCell(ds, i, "negative_specimens")
		if !okT || !okP || !okN {
			continue
		}

		if math.Abs(positive+negative-total) > countSumTolerance {
			result.AddErrorAt(
				fmt.Sprintf("Specimen counts do not sum: %g positive + %g negative != %g total", positive, negative, total),
				tabular.DisplayRow(i), "total_specimens_tested")
		}
	}
}

// validatePercentPositive compares reported percent positive against the
// value computed from the counts, rounded to one decimal place.
func validatePercentPositive(ds *tabular.Dataset, result *Result) {
	if !ds.HasColumns("percent_positive", "positive_specimens", "total_specimens_tested") {
		return
	}

	for i := range ds.Rows {
		reported, okR := parseFloatCell(ds, i, "percent_positive")
		positive, okP := parseFloatCell(ds, i, "positive_specimens")
		total, okT := parseFloatCell(ds, i, "total_specimens_tested")
		if !okR || !okP || !okT || total <= 0 {
			continue
		}

		computed := math.Round(positive/total*1000) / 10
		if math.Abs(reported-computed) > percentPositiveTolerance {
			result.AddWarningAt(
				fmt.Sprintf("Percent positive mismatch: Reported %g%%, Calculated %g%%", reported, computed),
				tabular.DisplayRow(i), "percent_positive")
		}
	}
}

func flagLowSpecimenCounts(ds *tabular.Dataset, result *Result) {
	if !ds.HasColumn("total_specimens_tested") {
		return
	}

	for i := range ds.Rows {
		total, ok := parseFloatCell(ds, i, "total_specimens_tested")
		if !ok {
			continue
		}
		if total < lowSpecimenThreshold {
			result.AddWarningAt(
				fmt.Sprintf("Low specimen count (%g) - percent positive may be unstable", total),
				tabular.DisplayRow(i), "total_specimens_tested")
		}
	}
}

func knownVirusType(v string) bool {
	for _, t := range labSurveillanceVirusTypes {
		if v == t {
			return true
		}
	}
	return false
}

func parseFloatCell(ds *tabular.Dataset, index int, column string) (float64, bool) {
	v := cell(ds, index, column)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
