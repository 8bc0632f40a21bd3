package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baysideshrimping/ncird-operations-center/internal/tabular"
)

var labColumns = []string{
	"reporting_week", "reporting_lab", "state", "total_specimens_tested",
	"virus_type", "positive_specimens", "negative_specimens", "percent_positive",
}

func labRow(overrides tabular.Row) tabular.Row {
	row := tabular.Row{
		"reporting_week":         "2026-W05",
		"reporting_lab":          "State Public Health Lab",
		"state":                  "CO",
		"total_specimens_tested": "200",
		"virus_type":             "RSV",
		"positive_specimens":     "40",
		"negative_specimens":     "160",
		"percent_positive":       "20.0",
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

func labDataset(rows ...tabular.Row) *tabular.Dataset {
	return dataset(append([]string{}, labColumns...), rows...)
}

func TestLabSurveillanceValidRowPasses(t *testing.T) {
	v := NewLabSurveillanceValidator()
	result := v.ValidateDataset(labDataset(labRow(nil)), "CO_week05.csv")

	assert.Equal(t, StatusPassed, result.Status)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "CO", result.Jurisdiction)
}

func TestLabSurveillanceMissingResultFields(t *testing.T) {
	v := NewLabSurveillanceValidator()
	ds := dataset(
		[]string{"reporting_week", "reporting_lab", "state", "total_specimens_tested", "virus_type"},
		tabular.Row{
			"reporting_week": "2026-W05", "reporting_lab": "Lab A", "state": "CO",
			"total_specimens_tested": "100", "virus_type": "RSV",
		},
	)

	result := v.ValidateDataset(ds, "CO_week05.csv")

	assert.Equal(t, StatusFailed, result.Status)
	assert.NotNil(t, findMessage(result.Errors, "No result fields present"))
}

func TestLabSurveillanceReportingWeek(t *testing.T) {
	v := NewLabSurveillanceValidator()

	t.Run("malformed week is an error", func(t *testing.T) {
		result := v.ValidateDataset(labDataset(labRow(tabular.Row{"reporting_week": "2026-05"})), "f.csv")

		errFinding := findMessage(result.Errors, "Invalid reporting week: 2026-05")
		require.NotNil(t, errFinding)
		assert.Equal(t, "reporting_week", errFinding.Field)
	})

	t.Run("week number out of range", func(t *testing.T) {
		result := v.ValidateDataset(labDataset(labRow(tabular.Row{"reporting_week": "2026-W57"})), "f.csv")
		assert.NotNil(t, findMessage(result.Errors, "Week number out of range: 57"))
	})

	t.Run("missing week is an error", func(t *testing.T) {
		result := v.ValidateDataset(labDataset(labRow(tabular.Row{"reporting_week": ""})), "f.csv")
		assert.NotNil(t, findMessage(result.Errors, "Reporting week is missing"))
	})
}

func TestLabSurveillanceSpecimenSums(t *testing.T) {
	v := NewLabSurveillanceValidator()

	t.Run("exact sum passes", func(t *testing.T) {
		result := v.ValidateDataset(labDataset(labRow(nil)), "f.csv")
		assert.Nil(t, findMessage(result.Errors, "do not sum"))
	})

	t.Run("within tolerance passes", func(t *testing.T) {
		row := labRow(tabular.Row{
			"total_specimens_tested": "200.005",
			"positive_specimens":     "40",
			"negative_specimens":     "160",
		})
		result := v.ValidateDataset(labDataset(row), "f.csv")
		assert.Nil(t, findMessage(result.Errors, "do not sum"))
	})

	t.Run("beyond tolerance is an error", func(t *testing.T) {
		row := labRow(tabular.Row{
			"total_specimens_tested": "200",
			"positive_specimens":     "40",
			"negative_specimens":     "161",
		})
		result := v.ValidateDataset(labDataset(row), "f.csv")

		errFinding := findMessage(result.Errors, "do not sum")
		require.NotNil(t, errFinding)
		assert.Equal(t, 2, errFinding.Row)
		assert.Equal(t, StatusFailed, result.Status)
	})
}

func TestLabSurveillancePercentPositive(t *testing.T) {
	v := NewLabSurveillanceValidator()

	t.Run("mismatch beyond tolerance warns", func(t *testing.T) {
		row := labRow(tabular.Row{
			"total_specimens_tested": "200",
			"positive_specimens":     "10",
			"negative_specimens":     "190",
			"percent_positive":       "5.3",
		})
		result := v.ValidateDataset(labDataset(row), "f.csv")

		warn := findMessage(result.Warnings, "Percent positive mismatch: Reported 5.3%, Calculated 5%")
		require.NotNil(t, warn)
		assert.Equal(t, "percent_positive", warn.Field)
		assert.Equal(t, StatusPassedWithWarnings, result.Status)
	})

	t.Run("within tolerance passes", func(t *testing.T) {
		row := labRow(tabular.Row{
			"total_specimens_tested": "200",
			"positive_specimens":     "10",
			"negative_specimens":     "190",
			"percent_positive":       "5.1",
		})
		result := v.ValidateDataset(labDataset(row), "f.csv")
		assert.Nil(t, findMessage(result.Warnings, "Percent positive mismatch"))
	})

	t.Run("over 100 percent is an error", func(t *testing.T) {
		row := labRow(tabular.Row{"percent_positive": "120"})
		result := v.ValidateDataset(labDataset(row), "f.csv")
		assert.NotNil(t, findMessage(result.Errors, "Percentage cannot exceed 100%"))
	})
}

func TestLabSurveillanceCounts(t *testing.T) {
	v := NewLabSurveillanceValidator()

	t.Run("negative count is an error", func(t *testing.T) {
		row := labRow(tabular.Row{"positive_specimens": "-5"})
		result := v.ValidateDataset(labDataset(row), "f.csv")
		assert.NotNil(t, findMessage(result.Errors, "positive_specimens"))
	})

	t.Run("low total warns", func(t *testing.T) {
		row := labRow(tabular.Row{
			"total_specimens_tested": "5",
			"positive_specimens":     "1",
			"negative_specimens":     "4",
			"percent_positive":       "20.0",
		})
		result := v.ValidateDataset(labDataset(row), "f.csv")
		assert.NotNil(t, findMessage(result.Warnings, "Low specimen count (5)"))
	})

	t.Run("zero total still warns low count", func(t *testing.T) {
		row := labRow(tabular.Row{
			"total_specimens_tested": "0",
			"positive_specimens":     "0",
			"negative_specimens":     "0",
			"percent_positive":       "0",
		})
		result := v.ValidateDataset(labDataset(row), "f.csv")
		assert.NotNil(t, findMessage(result.Warnings, "Low specimen count (0)"))
	})

	t.Run("invalid state code is an error", func(t *testing.T) {
		row := labRow(tabular.Row{"state": "ZZ"})
		result := v.ValidateDataset(labDataset(row), "f.csv")

		errFinding := findMessage(result.Errors, "Invalid state code: ZZ")
		require.NotNil(t, errFinding)
		assert.Equal(t, 2, errFinding.Row)
		assert.Equal(t, "state", errFinding.Field)
		assert.Equal(t, StatusFailed, result.Status)
	})
}

func TestLabSurveillanceVirusTypes(t *testing.T) {
	v := NewLabSurveillanceValidator()

	t.Run("unexpected virus type degrades but does not fail", func(t *testing.T) {
		row := labRow(tabular.Row{"virus_type": "Bocavirus"})
		result := v.ValidateDataset(labDataset(row), "f.csv")

		assert.Equal(t, StatusPassedWithWarnings, result.Status)
		assert.Empty(t, result.Errors)

		warn := findMessage(result.Warnings, "Unexpected virus type: Bocavirus")
		require.NotNil(t, warn)
		assert.Equal(t, 2, warn.Row)
		assert.Equal(t, "virus_type", warn.Field)
		assert.NotNil(t, findMessage(result.InfoMessages, "Common types: RSV"))
	})

	t.Run("known types pass clean", func(t *testing.T) {
		ds := labDataset(
			labRow(nil),
			labRow(tabular.Row{"virus_type": "SARS-CoV-2"}),
		)
		result := v.ValidateDataset(ds, "f.csv")
		assert.Nil(t, findMessage(result.Warnings, "Unexpected virus type"))
	})
}
