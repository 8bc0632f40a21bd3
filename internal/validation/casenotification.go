package validation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/baysideshrimping/ncird-operations-center/internal/checks"
	"github.com/baysideshrimping/ncird-operations-center/internal/jurisdiction"
	"github.com/baysideshrimping/ncird-operations-center/internal/tabular"
)

// Generic v2 MMG fields required on every case notification.
var caseNotificationRequiredFields = []string{
	"condition",
	"reporting_jurisdiction",
	"case_status",
	"report_date",
	"illness_onset_date",
}

var caseNotificationOptionalFields = []string{
	"age_at_case_investigation",
	"age_unit",
	"birth_date",
	"sex",
	"race",
	"ethnicity",
	"country_of_residence",
	"state_of_residence",
	"county_of_residence",
	"hospitalized",
	"died",
	"pregnant",
	"case_investigation_start_date",
	"illness_end_date",
	"outbreak_associated",
	"outbreak_name",
}

// CaseStatusCodes maps SNOMED/PH case classification codes to their labels.
var CaseStatusCodes = map[string]string{
	"410605003": "Confirmed",
	"2931005":   "Probable",
	"415684004": "Suspected",
	"PHC1464":   "Not a case",
}

var ageUnitCodes = map[string]string{
	"a": "Years", "mo": "Months", "d": "Days", "h": "Hours",
}

var sexCodes = map[string]string{
	"M": "Male", "F": "Female", "U": "Unknown", "O": "Other",
}

var ynuCodes = map[string]string{
	"Y": "Yes", "N": "No", "U": "Unknown",
}

var pregnancyStatusCodes = map[string]string{
	"Y": "Yes", "N": "No", "U": "Unknown", "NA": "Not Applicable",
}

var trimesterCodes = map[string]string{
	"1": "First", "2": "Second", "3": "Third", "U": "Unknown",
}

var importStatusCodes = map[string]string{
	"IMP": "Imported", "IND": "Import-related", "INC": "Indigenous", "UNK": "Unknown",
}

var transmissionSettingCodes = map[string]string{
	"COM": "Community", "HCF": "Healthcare facility", "SCH": "School/Daycare",
	"HH": "Household", "WRK": "Workplace", "TRV": "Travel-related", "UNK": "Unknown",
}

// Timeliness thresholds (days) for case notifications.
const (
	maxReportingLagDays     = 14
	maxInvestigationLagDays = 3
)

// NewCaseNotificationValidator builds the validator for notifiable disease
// case notifications (system id "nnad").
func NewCaseNotificationValidator() *StreamValidator {
	return &StreamValidator{
		SystemID:            "nnad",
		SystemName:          "NNAD (NNDSS)",
		Description:         "National Notifiable Diseases Surveillance System case notifications",
		RequiredFields:      caseNotificationRequiredFields,
		RequiredFieldsLabel: "required fields",
		Structure:           caseNotificationStructure,
		Content:             caseNotificationContent,
		Custom:              caseNotificationCustom,
	}
}

func caseNotificationStructure(ds *tabular.Dataset, result *Result) {
	var present []string
	for _, col := range caseNotificationOptionalFields {
		if ds.HasColumn(col) {
			present = append(present, col)
		}
	}
	if len(present) > 0 {
		result.AddInfo(fmt.Sprintf("Optional fields included: %d/%d", len(present), len(caseNotificationOptionalFields)))
	}
}

func caseNotificationContent(ds *tabular.Dataset, result *Result) {
	if ds.HasColumn("reporting_jurisdiction") {
		for i := range ds.Rows {
			code := cell(ds, i, "reporting_jurisdiction")
			if code == "" {
				continue
			}
			if _, ok := jurisdiction.ByAbbr(code); !ok {
				result.AddErrorAt(fmt.Sprintf("Invalid jurisdiction code: %s", code), tabular.DisplayRow(i), "reporting_jurisdiction")
				if len(code) == 2 {
					result.AddInfoAt(fmt.Sprintf("Did you mean: %s?", strings.Join(nearbyAbbrs(code), ", ")), tabular.DisplayRow(i), "")
				}
			}
		}
	}

	if ds.HasColumn("case_status") {
		for i := range ds.Rows {
			status := cell(ds, i, "case_status")
			if status == "" {
				continue
			}
			if ok, msg := checks.ValidateCodeInList(status, codeKeys(CaseStatusCodes), "Case status"); !ok {
				result.AddErrorAt(msg, tabular.DisplayRow(i), "case_status")
				result.AddInfoAt(fmt.Sprintf("Valid codes: %s", describeCodes(CaseStatusCodes)), tabular.DisplayRow(i), "")
			}
		}
	}

	dateFields := []string{
		"report_date", "illness_onset_date", "birth_date",
		"case_investigation_start_date", "illness_end_date",
	}
	for _, field := range dateFields {
		if !ds.HasColumn(field) {
			continue
		}
		for i := range ds.Rows {
			val := cell(ds, i, field)
			if val == "" {
				continue
			}
			if ok, msg := checks.ValidateDateFormat(val, ""); !ok {
				result.AddErrorAt(fmt.Sprintf("%s: %s", field, msg), tabular.DisplayRow(i), field)
			}
		}
	}

	if ds.HasColumn("age_at_case_investigation") {
		for i := range ds.Rows {
			age := cell(ds, i, "age_at_case_investigation")
			if age == "" {
				continue
			}
			if ok, msg := checks.ValidateInteger(age, checks.Int(0), checks.Int(120), false); !ok {
				result.AddErrorAt(fmt.Sprintf("Invalid age: %s", msg), tabular.DisplayRow(i), "age_at_case_investigation")
			}
		}
	}

	if ds.HasColumn("age_unit") {
		for i := range ds.Rows {
			unit := cell(ds, i, "age_unit")
			if unit == "" {
				continue
			}
			if ok, msg := checks.ValidateCodeInList(unit, codeKeys(ageUnitCodes), "Age unit"); !ok {
				result.AddWarningAt(msg, tabular.DisplayRow(i), "age_unit")
			}
		}
	}

	if ds.HasColumn("sex") {
		for i := range ds.Rows {
			sex := cell(ds, i, "sex")
			if sex == "" {
				continue
			}
			if ok, msg := checks.ValidateCodeInList(sex, codeKeys(sexCodes), "Sex"); !ok {
				result.AddWarningAt(msg, tabular.DisplayRow(i), "sex")
			}
		}
	}
}

func caseNotificationCustom(ds *tabular.Dataset, result *Result) {
	if ds.HasColumns("reporting_jurisdiction", "condition", "illness_onset_date") {
		if has, _, msg := checks.CheckDuplicateRows(ds, []string{"reporting_jurisdiction", "condition", "illness_onset_date"}); has {
			result.AddWarning(fmt.Sprintf("Possible duplicate cases: %s", msg))
		}
	}

	// Onset must not follow the report. Skip rows where either date fails
	// to parse; the content phase already flagged those.
	if ds.HasColumns("illness_onset_date", "report_date") {
		for i := range ds.Rows {
			onset, okOnset := parseDate(cell(ds, i, "illness_onset_date"))
			report, okReport := parseDate(cell(ds, i, "report_date"))
			if !okOnset || !okReport {
				continue
			}
			if onset.After(report) {
				result.AddErrorAt("Illness onset date cannot be after report date", tabular.DisplayRow(i), "illness_onset_date")
			}
		}
	}

	if ds.HasColumns("died", "hospitalized") {
		for i := range ds.Rows {
			if cellUpper(ds, i, "died") == "Y" && cellUpper(ds, i, "hospitalized") == "N" {
				result.AddWarningAt("Patient died but not hospitalized - verify data", tabular.DisplayRow(i), "died")
			}
		}
	}

	validatePregnancyStatus(ds, result)
	validateVaccinationHistory(ds, result)
	validateCaseClassification(ds, result)
	validateEpiLinkage(ds, result)
	validateInvestigationTimeliness(ds, result)
	validateDemographics(ds, result)
	validateImportTransmission(ds, result)

	result.AddInfo(fmt.Sprintf("Validated %d case notification(s)", ds.RowCount()))
	if ds.HasColumn("condition") {
		result.AddInfo(fmt.Sprintf("Conditions: %s", topValueCounts(ds, "condition", 5)))
	}
}

func validatePregnancyStatus(ds *tabular.Dataset, result *Result) {
	if !ds.HasColumn("pregnant") {
		return
	}

	for i := range ds.Rows {
		pregnant := cellUpper(ds, i, "pregnant")

		if pregnant != "" {
			if _, ok := pregnancyStatusCodes[pregnant]; !ok {
				result.AddErrorAt(fmt.Sprintf("Invalid pregnancy status: %s (must be Y/N/U/NA)", pregnant), tabular.DisplayRow(i), "pregnant")
			}
		}

		if ds.HasColumn("sex") {
			sex := cellUpper(ds, i, "sex")

			if pregnant == "Y" && sex == "M" {
				result.AddErrorAt("Pregnancy status = Yes for male patient", tabular.DisplayRow(i), "pregnant")
			}

			// Missing pregnancy status is only notable for females of
			// reproductive age.
			if sex == "F" && pregnant == "" && ds.HasColumn("age_at_case_investigation") {
				if age, err := strconv.Atoi(cell(ds, i, "age_at_case_investigation")); err == nil && age >= 12 && age <= 50 {
					result.AddWarningAt(fmt.Sprintf("Pregnancy status missing for female age %d (reproductive age)", age), tabular.DisplayRow(i), "pregnant")
				}
			}
		}

		if pregnant == "Y" && ds.HasColumn("pregnancy_trimester") {
			trimester := cell(ds, i, "pregnancy_trimester")
			if trimester == "" {
				result.AddWarningAt("Pregnancy = Yes but trimester is missing", tabular.DisplayRow(i), "pregnancy_trimester")
			} else if _, ok := trimesterCodes[trimester]; !ok {
				result.AddErrorAt(fmt.Sprintf("Invalid trimester: %s (must be 1/2/3/U)", trimester), tabular.DisplayRow(i), "pregnancy_trimester")
			}
		}

		if pregnant == "Y" && ds.HasColumn("pregnancy_outcome") {
			outcome := cellUpper(ds, i, "pregnancy_outcome")
			if outcome != "" {
				switch outcome {
				case "LIVE_BIRTH", "STILLBIRTH", "MISCARRIAGE", "ABORTION", "ONGOING", "UNK":
				default:
					result.AddWarningAt(fmt.Sprintf("Non-standard pregnancy outcome: %s", outcome), tabular.DisplayRow(i), "pregnancy_outcome")
				}
			}
		}
	}
}

func validateVaccinationHistory(ds *tabular.Dataset, result *Result) {
	if ds.HasColumn("vaccination_doses") {
		for i := range ds.Rows {
			doses := cell(ds, i, "vaccination_doses")
			if doses == "" {
				continue
			}
			count, err := strconv.Atoi(doses)
			if err != nil {
				result.AddErrorAt(fmt.Sprintf("Invalid vaccination dose count: %s", doses), tabular.DisplayRow(i), "vaccination_doses")
				continue
			}
			if count < 0 || count > 10 {
				result.AddErrorAt(fmt.Sprintf("Implausible vaccination dose count: %d", count), tabular.DisplayRow(i), "vaccination_doses")
			}
		}
	}

	for _, field := range []string{"vaccination_date_1", "vaccination_date_2", "vaccination_date_3"} {
		if !ds.HasColumn(field) {
			continue
		}
		for i := range ds.Rows {
			vaxDate, ok := parseDate(cell(ds, i, field))
			if !ok {
				continue
			}

			if ds.HasColumn("illness_onset_date") {
				if onset, ok := parseDate(cell(ds, i, "illness_onset_date")); ok && vaxDate.After(onset) {
					result.AddErrorAt(
						fmt.Sprintf("Vaccination date (%s) after illness onset (%s)", cell(ds, i, field), cell(ds, i, "illness_onset_date")),
						tabular.DisplayRow(i), field)
				}
			}
			if ds.HasColumn("birth_date") {
				if birth, ok := parseDate(cell(ds, i, "birth_date")); ok && vaxDate.Before(birth) {
					result.AddErrorAt("Vaccination date before birth date", tabular.DisplayRow(i), field)
				}
			}
		}
	}

	if ds.HasColumns("vaccination_doses", "case_status") {
		confirmed := codeForLabel(CaseStatusCodes, "Confirmed")
		for i := range ds.Rows {
			count, err := strconv.Atoi(cell(ds, i, "vaccination_doses"))
			if err != nil {
				continue
			}
			if count >= 2 && cell(ds, i, "case_status") == confirmed {
				result.AddInfoAt("Vaccine breakthrough case (>=2 doses, confirmed)", tabular.DisplayRow(i), "")
			}
		}
	}
}

// validateCaseClassification cross-checks the classification against the
// supporting evidence. Classification authority rests with the submitter, so
// a confirmed case without lab data is advisory only, never an error.
func validateCaseClassification(ds *tabular.Dataset, result *Result) {
	if !ds.HasColumn("case_status") {
		return
	}

	confirmed := codeForLabel(CaseStatusCodes, "Confirmed")
	probable := codeForLabel(CaseStatusCodes, "Probable")
	labFields := []string{"lab_result", "specimen_collection_date", "lab_test_type"}

	for i := range ds.Rows {
		status := cell(ds, i, "case_status")

		if status == confirmed {
			hasLab := false
			for _, field := range labFields {
				if ds.HasColumn(field) && cell(ds, i, field) != "" {
					hasLab = true
					break
				}
			}
			if !hasLab {
				result.AddWarningAt("Confirmed case without laboratory data - verify classification", tabular.DisplayRow(i), "case_status")
			}
		}

		if status == probable {
			hasEpiLink := ds.HasColumn("outbreak_associated") && cellUpper(ds, i, "outbreak_associated") == "Y"
			if !hasEpiLink && ds.HasColumn("contact_to_case") && cellUpper(ds, i, "contact_to_case") == "Y" {
				hasEpiLink = true
			}
			if !hasEpiLink {
				result.AddInfoAt("Probable case: verify epidemiological linkage documented", tabular.DisplayRow(i), "")
			}
		}
	}
}

func validateEpiLinkage(ds *tabular.Dataset, result *Result) {
	if !ds.HasColumn("outbreak_associated") {
		return
	}

	for i := range ds.Rows {
		outbreak := cellUpper(ds, i, "outbreak_associated")
		if outbreak == "" {
			continue
		}

		if _, ok := ynuCodes[outbreak]; !ok {
			result.AddErrorAt(fmt.Sprintf("Invalid outbreak_associated: %s (must be Y/N/U)", outbreak), tabular.DisplayRow(i), "outbreak_associated")
		}

		if outbreak == "Y" && ds.HasColumn("outbreak_name") && cell(ds, i, "outbreak_name") == "" {
			result.AddWarningAt("Outbreak-associated but outbreak_name is missing", tabular.DisplayRow(i), "outbreak_name")
		}
	}
}

func validateInvestigationTimeliness(ds *tabular.Dataset, result *Result) {
	if ds.HasColumns("illness_onset_date", "report_date") {
		for i := range ds.Rows {
			onset, okOnset := parseDate(cell(ds, i, "illness_onset_date"))
			report, okReport := parseDate(cell(ds, i, "report_date"))
			if !okOnset || !okReport {
				continue
			}
			if lag := daysBetween(onset, report); lag > maxReportingLagDays {
				result.AddWarningAt(
					fmt.Sprintf("Reporting lag = %d days (>%d days may delay outbreak detection)", lag, maxReportingLagDays),
					tabular.DisplayRow(i), "report_date")
			}
		}
	}

	if ds.HasColumns("report_date", "case_investigation_start_date") {
		for i := range ds.Rows {
			report, okReport := parseDate(cell(ds, i, "report_date"))
			start, okStart := parseDate(cell(ds, i, "case_investigation_start_date"))
			if !okReport || !okStart {
				continue
			}
			if lag := daysBetween(report, start); lag > maxInvestigationLagDays {
				result.AddWarningAt(
					fmt.Sprintf("Investigation started %d days after report (recommend <=%d days)", lag, maxInvestigationLagDays),
					tabular.DisplayRow(i), "case_investigation_start_date")
			}
		}
	}
}

func validateDemographics(ds *tabular.Dataset, result *Result) {
	if ds.HasColumns("age_at_case_investigation", "condition") {
		congenital := []string{"Congenital Rubella", "Congenital Syphilis"}
		for i := range ds.Rows {
			age, err := strconv.Atoi(cell(ds, i, "age_at_case_investigation"))
			if err != nil {
				continue
			}
			condition := cell(ds, i, "condition")
			for _, c := range congenital {
				if strings.Contains(condition, c) && age > 2 {
					result.AddWarningAt(fmt.Sprintf("Congenital condition in adult (age %d)", age), tabular.DisplayRow(i), "condition")
					break
				}
			}
		}
	}

	if ds.HasColumns("reporting_jurisdiction", "state_of_residence") {
		for i := range ds.Rows {
			reportJur := cell(ds, i, "reporting_jurisdiction")
			resState := cell(ds, i, "state_of_residence")
			if reportJur == "" || resState == "" {
				continue
			}
			if reportJur != resState {
				result.AddInfoAt(fmt.Sprintf("Patient resides in %s but reported by %s", resState, reportJur), tabular.DisplayRow(i), "")
			}
		}
	}
}

func validateImportTransmission(ds *tabular.Dataset, result *Result) {
	if ds.HasColumn("import_status") {
		imported := codeForLabel(importStatusCodes, "Imported")
		for i := range ds.Rows {
			status := cellUpper(ds, i, "import_status")
			if status == "" {
				continue
			}

			if _, ok := importStatusCodes[status]; !ok {
				result.AddErrorAt(fmt.Sprintf("Invalid import status: %s", status), tabular.DisplayRow(i), "import_status")
			}

			if status == imported && ds.HasColumn("country_of_exposure") && cell(ds, i, "country_of_exposure") == "" {
				result.AddWarningAt("Import status = Imported but country_of_exposure missing", tabular.DisplayRow(i), "country_of_exposure")
			}
		}
	}

	if ds.HasColumn("transmission_setting") {
		for i := range ds.Rows {
			setting := cellUpper(ds, i, "transmission_setting")
			if setting == "" {
				continue
			}
			if _, ok := transmissionSettingCodes[setting]; !ok {
				result.AddWarningAt(fmt.Sprintf("Non-standard transmission setting: %s", setting), tabular.DisplayRow(i), "transmission_setting")
			}
		}
	}
}

// nearbyAbbrs suggests valid abbreviations sharing the first letter of a
// rejected 2-letter code.
func nearbyAbbrs(code string) []string {
	first := strings.ToUpper(code)[0]
	var nearby []string
	for _, info := range jurisdiction.All() {
		if info.Abbr[0] == first {
			nearby = append(nearby, info.Abbr)
		}
		if len(nearby) == 3 {
			break
		}
	}
	return nearby
}

// describeCodes renders a code table as "code (label), ..." sorted by code.
func describeCodes(codes map[string]string) string {
	keys := codeKeys(codes)
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s (%s)", k, codes[k])
	}
	return strings.Join(parts, ", ")
}

// topValueCounts renders the most common values of a column as
// "value (count), ..." limited to the top n, most frequent first.
func topValueCounts(ds *tabular.Dataset, column string, n int) string {
	counts := map[string]int{}
	firstSeen := map[string]int{}
	var order []string
	for i := range ds.Rows {
		v := cell(ds, i, column)
		if v == "" {
			continue
		}
		if _, seen := counts[v]; !seen {
			firstSeen[v] = i
			order = append(order, v)
		}
		counts[v]++
	}
	sort.SliceStable(order, func(a, b int) bool {
		if counts[order[a]] != counts[order[b]] {
			return counts[order[a]] > counts[order[b]]
		}
		return firstSeen[order[a]] < firstSeen[order[b]]
	})
	if len(order) > n {
		order = order[:n]
	}
	parts := make([]string, len(order))
	for i, v := range order {
		parts[i] = fmt.Sprintf("%s (%d)", v, counts[v])
	}
	return strings.Join(parts, ", ")
}
