package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/baysideshrimping/ncird-operations-center/internal/checks"
	"github.com/baysideshrimping/ncird-operations-center/internal/tabular"
)

var mumpsRequiredFields = []string{
	"condition",
	"reporting_jurisdiction",
	"case_status",
	"report_date",
	"illness_onset_date",
	"parotitis",
}

// MumpsLabResultCodes maps SNOMED lab interpretation codes to labels.
var MumpsLabResultCodes = map[string]string{
	"10828004":  "Positive",
	"260385009": "Negative",
	"419984006": "Inconclusive",
	"260415000": "Not performed",
}

// positiveLabResultCodes covers both detected-qualifier codings in use.
var positiveLabResultCodes = map[string]bool{
	"10828004":  true,
	"260373001": true,
}

var mumpsLabTestTypes = map[string]string{
	"PCR":      "RT-PCR",
	"IGM":      "IgM serology",
	"IGG":      "IgG serology",
	"CULTURE":  "Viral culture",
	"GENOTYPE": "Genotyping",
}

var mumpsGenotypes = map[string]bool{
	"A": true, "B": true, "C": true, "D": true, "E": true, "F": true,
	"G": true, "H": true, "J": true, "K": true, "L": true, "N": true,
	"UNK": true,
}

const maxParotitisDurationDays = 60

// NewMumpsValidator builds the validator for mumps case surveillance
// (system id "mumps").
func NewMumpsValidator() *StreamValidator {
	return &StreamValidator{
		SystemID:            "mumps",
		SystemName:          "Mumps Surveillance",
		Description:         "Mumps case surveillance with disease-specific clinical checks",
		RequiredFields:      mumpsRequiredFields,
		RequiredFieldsLabel: "required mumps fields",
		Content:             mumpsContent,
		Custom:              mumpsCustom,
	}
}

func mumpsContent(ds *tabular.Dataset, result *Result) {
	if ds.HasColumn("parotitis") {
		for i := range ds.Rows {
			v := cellUpper(ds, i, "parotitis")
			if v == "" {
				continue
			}
			if _, ok := ynuCodes[v]; !ok {
				result.AddErrorAt(fmt.Sprintf("Invalid parotitis value: %s (must be Y/N/U)", v), tabular.DisplayRow(i), "parotitis")
			}
		}
	}

	if ds.HasColumn("parotitis_duration_days") {
		for i := range ds.Rows {
			v := cell(ds, i, "parotitis_duration_days")
			if v == "" {
				continue
			}
			if ok, msg := checks.ValidateInteger(v, checks.Int(0), checks.Int(maxParotitisDurationDays), false); !ok {
				result.AddErrorAt(fmt.Sprintf("Invalid parotitis duration: %s", msg), tabular.DisplayRow(i), "parotitis_duration_days")
			}
		}
	}

	if ds.HasColumn("lab_result") {
		for i := range ds.Rows {
			v := cell(ds, i, "lab_result")
			if v == "" {
				continue
			}
			if ok, msg := checks.ValidateCodeInList(v, codeKeys(MumpsLabResultCodes), "Lab result"); !ok {
				result.AddErrorAt(msg, tabular.DisplayRow(i), "lab_result")
				result.AddInfoAt(fmt.Sprintf("Valid codes: %s", describeCodes(MumpsLabResultCodes)), tabular.DisplayRow(i), "")
			}
		}
	}

	if ds.HasColumn("lab_test_type") {
		for i := range ds.Rows {
			v := cellUpper(ds, i, "lab_test_type")
			if v == "" {
				continue
			}
			if _, ok := mumpsLabTestTypes[v]; !ok {
				result.AddWarningAt(fmt.Sprintf("Non-standard lab test type: %s", v), tabular.DisplayRow(i), "lab_test_type")
			}
		}
	}

	for _, field := range []string{"specimen_collection_date", "lab_result_date"} {
		if !ds.HasColumn(field) {
			continue
		}
		for i := range ds.Rows {
			v := cell(ds, i, field)
			if v == "" {
				continue
			}
			if ok, msg := checks.ValidateDateFormat(v, ""); !ok {
				result.AddErrorAt(fmt.Sprintf("%s: %s", field, msg), tabular.DisplayRow(i), field)
			}
		}
	}
}

func mumpsCustom(ds *tabular.Dataset, result *Result) {
	validateParotitisFindings(ds, result)
	validateMumpsLaboratory(ds, result)
	validateMumpsComplications(ds, result)
	validateMumpsGenotype(ds, result)
	validateMumpsEpi(ds, result)

	result.AddInfo(fmt.Sprintf("Validated %d mumps case(s)", ds.RowCount()))
	if ds.HasColumn("parotitis") {
		withParotitis := 0
		for i := range ds.Rows {
			if cellUpper(ds, i, "parotitis") == "Y" {
				withParotitis++
			}
		}
		result.AddInfo(fmt.Sprintf("Cases with parotitis: %d/%d", withParotitis, ds.RowCount()))
	}
}

func validateParotitisFindings(ds *tabular.Dataset, result *Result) {
	if !ds.HasColumns("parotitis", "parotitis_duration_days") {
		return
	}

	for i := range ds.Rows {
		parotitis := cellUpper(ds, i, "parotitis")
		duration := cell(ds, i, "parotitis_duration_days")

		if parotitis == "Y" && duration == "" {
			result.AddWarningAt("Parotitis = Yes but duration is missing", tabular.DisplayRow(i), "parotitis_duration_days")
		}
		if parotitis == "N" && duration != "" {
			result.AddWarningAt("Parotitis duration given but parotitis = No", tabular.DisplayRow(i), "parotitis_duration_days")
		}

		days, err := strconv.Atoi(duration)
		if err != nil {
			continue
		}
		if days > maxParotitisDurationDays {
			result.AddErrorAt(fmt.Sprintf("Implausible parotitis duration: %d days", days), tabular.DisplayRow(i), "parotitis_duration_days")
		}
		// Mumps case definition requires parotitis of at least 2 days.
		if parotitis == "Y" && days >= 0 && days < 2 {
			result.AddWarningAt(fmt.Sprintf("Parotitis duration %d day(s) - case definition requires >=2 days", days), tabular.DisplayRow(i), "parotitis_duration_days")
		}
	}
}

func validateMumpsLaboratory(ds *tabular.Dataset, result *Result) {
	if ds.HasColumns("specimen_collection_date", "lab_result_date") {
		for i := range ds.Rows {
			collected, okC := parseDate(cell(ds, i, "specimen_collection_date"))
			resulted, okR := parseDate(cell(ds, i, "lab_result_date"))
			if !okC || !okR {
				continue
			}
			if collected.After(resulted) {
				result.AddErrorAt("Specimen collection date after lab result date", tabular.DisplayRow(i), "specimen_collection_date")
			}
		}
	}

	if ds.HasColumns("case_status", "lab_result") {
		confirmed := codeForLabel(CaseStatusCodes, "Confirmed")
		for i := range ds.Rows {
			labResult := cell(ds, i, "lab_result")
			if cell(ds, i, "case_status") == confirmed && labResult != "" && !positiveLabResultCodes[labResult] {
				result.AddWarningAt("Confirmed case without positive lab result - verify classification", tabular.DisplayRow(i), "case_status")
			}
		}
	}

	// IgM serology is reliable only in the acute window after onset.
	if ds.HasColumns("lab_test_type", "specimen_collection_date", "illness_onset_date") {
		for i := range ds.Rows {
			if !strings.Contains(cellUpper(ds, i, "lab_test_type"), "IGM") {
				continue
			}
			collected, okC := parseDate(cell(ds, i, "specimen_collection_date"))
			onset, okO := parseDate(cell(ds, i, "illness_onset_date"))
			if !okC || !okO {
				continue
			}
			days := daysBetween(onset, collected)
			if days < 3 || days > 45 {
				result.AddWarningAt(
					fmt.Sprintf("IgM specimen collected %d days after onset (may be false negative - optimal: 3-45 days)", days),
					tabular.DisplayRow(i), "specimen_collection_date")
			}
		}
	}

	if ds.HasColumns("lab_test_type", "specimen_type") {
		optimalPCRSpecimens := []string{"buccal swab", "oral fluid", "saliva", "parotid duct"}
		for i := range ds.Rows {
			if !strings.Contains(cellUpper(ds, i, "lab_test_type"), "PCR") {
				continue
			}
			specType := cell(ds, i, "specimen_type")
			if specType == "" {
				continue
			}
			optimal := false
			for _, opt := range optimalPCRSpecimens {
				if strings.Contains(strings.ToLower(specType), opt) {
					optimal = true
					break
				}
			}
			if !optimal {
				result.AddInfoAt(
					fmt.Sprintf("PCR on specimen type '%s' - optimal specimens: buccal swab, oral fluid", specType),
					tabular.DisplayRow(i), "")
			}
		}
	}
}

func validateMumpsComplications(ds *tabular.Dataset, result *Result) {
	complications := []string{"orchitis", "oophoritis", "meningitis", "encephalitis", "deafness", "pancreatitis"}

	// A stray value in a complication flag is a data-entry smell, not a
	// blocking defect.
	for _, comp := range complications {
		if !ds.HasColumn(comp) {
			continue
		}
		for i := range ds.Rows {
			v := cellUpper(ds, i, comp)
			if v == "" {
				continue
			}
			if _, ok := ynuCodes[v]; !ok {
				result.AddWarningAt(fmt.Sprintf("Invalid %s value: %s (must be Y/N/U)", comp, v), tabular.DisplayRow(i), comp)
			}
		}
	}

	// Sex-specific complications are biologically impossible in the
	// opposite sex, so these are errors rather than warnings.
	if ds.HasColumn("sex") {
		for i := range ds.Rows {
			sex := cellUpper(ds, i, "sex")
			if ds.HasColumn("orchitis") && cellUpper(ds, i, "orchitis") == "Y" && sex == "F" {
				result.AddErrorAt("Orchitis reported for female patient", tabular.DisplayRow(i), "orchitis")
			}
			if ds.HasColumn("oophoritis") && cellUpper(ds, i, "oophoritis") == "Y" && sex == "M" {
				result.AddErrorAt("Oophoritis reported for male patient", tabular.DisplayRow(i), "oophoritis")
			}
		}
	}

	if ds.HasColumn("hospitalized") {
		severe := []string{"meningitis", "encephalitis"}
		for i := range ds.Rows {
			if cellUpper(ds, i, "hospitalized") == "Y" {
				continue
			}
			for _, comp := range severe {
				if ds.HasColumn(comp) && cellUpper(ds, i, comp) == "Y" {
					result.AddWarningAt(fmt.Sprintf("%s reported but patient not hospitalized - verify", comp), tabular.DisplayRow(i), comp)
				}
			}
		}
	}
}

func validateMumpsGenotype(ds *tabular.Dataset, result *Result) {
	if !ds.HasColumn("genotype") {
		return
	}

	for i := range ds.Rows {
		genotype := cellUpper(ds, i, "genotype")
		if genotype == "" {
			continue
		}

		if !mumpsGenotypes[genotype] {
			result.AddWarningAt(fmt.Sprintf("Unrecognized mumps genotype: %s", genotype), tabular.DisplayRow(i), "genotype")
		}

		if ds.HasColumn("lab_result") && !positiveLabResultCodes[cell(ds, i, "lab_result")] {
			result.AddWarningAt("Genotype reported without positive lab result", tabular.DisplayRow(i), "genotype")
		}
	}
}

func validateMumpsEpi(ds *tabular.Dataset, result *Result) {
	if ds.HasColumn("outbreak_associated") {
		for i := range ds.Rows {
			if cellUpper(ds, i, "outbreak_associated") == "Y" && ds.HasColumn("outbreak_name") && cell(ds, i, "outbreak_name") == "" {
				result.AddWarningAt("Outbreak-associated but outbreak_name is missing", tabular.DisplayRow(i), "outbreak_name")
			}
		}
	}

	if ds.HasColumn("import_status") {
		imported := codeForLabel(importStatusCodes, "Imported")
		for i := range ds.Rows {
			if cellUpper(ds, i, "import_status") == imported && ds.HasColumn("travel_history") && cell(ds, i, "travel_history") == "" {
				result.AddWarningAt("Imported case but travel_history is missing", tabular.DisplayRow(i), "travel_history")
			}
		}
	}
}
