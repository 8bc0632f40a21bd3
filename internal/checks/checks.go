// Package checks contains the stateless validation primitives shared by all
// stream validators. Every check takes one raw cell value (plus optional
// bounds) and returns (ok, message); none of them touch shared state.
package checks

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the default submission date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Int returns a pointer for an optional integer bound.
func Int(v int) *int { return &v }

// Float returns a pointer for an optional float bound.
func Float(v float64) *float64 { return &v }

// ValidateDateFormat checks a date string against the given layout. An empty
// layout means DateLayout.
func ValidateDateFormat(value, layout string) (bool, string) {
	if layout == "" {
		layout = DateLayout
	}
	if strings.TrimSpace(value) == "" {
		return false, "Date is missing"
	}
	if _, err := time.Parse(layout, strings.TrimSpace(value)); err != nil {
		return false, fmt.Sprintf("Invalid date format. Expected %s", humanLayout(layout))
	}
	return true, ""
}

// ValidateDateRange checks that a YYYY-MM-DD date falls within a plausible
// year range. maxYear <= 0 means current year + 1.
func ValidateDateRange(value string, minYear, maxYear int) (bool, string) {
	if maxYear <= 0 {
		maxYear = time.Now().Year() + 1
	}
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return false, "Invalid date"
	}
	if parsed.Year() < minYear || parsed.Year() > maxYear {
		return false, fmt.Sprintf("Year must be between %d and %d", minYear, maxYear)
	}
	return true, ""
}

// humanLayout renders a Go time layout in the YYYY-MM-DD notation submitters
// see in documentation.
func humanLayout(layout string) string {
	r := strings.NewReplacer("2006", "YYYY", "01", "MM", "02", "DD")
	return r.Replace(layout)
}

// ValidateInteger checks an integer with optional inclusive bounds. Like the
// upstream submission templates, values such as "5.0" are accepted and
// truncated toward zero.
func ValidateInteger(value string, min, max *int, allowNull bool) (bool, string) {
	if strings.TrimSpace(value) == "" {
		if allowNull {
			return true, ""
		}
		return false, "Value is required"
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return false, "Must be an integer"
	}
	n := int(f)
	if min != nil && n < *min {
		return false, fmt.Sprintf("Value must be >= %d", *min)
	}
	if max != nil && n > *max {
		return false, fmt.Sprintf("Value must be <= %d", *max)
	}
	return true, ""
}

// ValidateFloat checks a float with optional inclusive bounds.
func ValidateFloat(value string, min, max *float64, allowNull bool) (bool, string) {
	if strings.TrimSpace(value) == "" {
		if allowNull {
			return true, ""
		}
		return false, "Value is required"
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return false, "Must be a number"
	}
	if min != nil && f < *min {
		return false, fmt.Sprintf("Value must be >= %g", *min)
	}
	if max != nil && f > *max {
		return false, fmt.Sprintf("Value must be <= %g", *max)
	}
	return true, ""
}

// ValidatePercentage checks a percentage value: a float with minimum 0,
// rejecting values over 100 unless explicitly allowed.
func ValidatePercentage(value string, allowOver100, allowNull bool) (bool, string) {
	ok, msg := ValidateFloat(value, Float(0), nil, allowNull)
	if !ok {
		return ok, msg
	}
	if strings.TrimSpace(value) == "" {
		return true, ""
	}
	f, _ := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if !allowOver100 && f > 100 {
		return false, "Percentage cannot exceed 100%"
	}
	return true, ""
}

// ValidateCodeInList checks exact membership in a code set. The failure
// message lists up to 10 sample codes, with a count suffix when more exist.
// Case handling is the caller's job; some call sites upper-case first.
func ValidateCodeInList(value string, validCodes []string, fieldName string) (bool, string) {
	if strings.TrimSpace(value) == "" {
		return false, fmt.Sprintf("%s is required", fieldName)
	}
	for _, code := range validCodes {
		if value == code {
			return true, ""
		}
	}
	samples := append([]string(nil), validCodes...)
	sort.Strings(samples)
	shown := samples
	if len(shown) > 10 {
		shown = shown[:10]
	}
	msg := fmt.Sprintf("Invalid %s. Valid codes: %s", fieldName, strings.Join(shown, ", "))
	if len(samples) > 10 {
		msg += fmt.Sprintf("... (%d total codes)", len(samples))
	}
	return false, msg
}

// spreadsheet error tokens, matched case-insensitively.
var excelErrorTokens = map[string]bool{
	"#REF!": true, "#VALUE!": true, "#DIV/0!": true, "#NAME?": true,
	"#N/A": true, "#NULL!": true, "#NUM!": true,
}

// DetectExcelError flags spreadsheet error values that survived export.
func DetectExcelError(value string) (bool, string) {
	if excelErrorTokens[strings.ToUpper(strings.TrimSpace(value))] {
		return false, fmt.Sprintf("Excel error detected: %s", value)
	}
	return true, ""
}

// placeholder vocabulary, matched after lower-casing and trimming.
var placeholderTokens = map[string]bool{
	"tbd": true, "n/a": true, "na": true, "null": true, "none": true,
	"pending": true, "unknown": true, "to be determined": true,
	"not available": true, "not applicable": true, ".": true,
	"-": true, "--": true, "---": true, "?": true, "??": true, "xxx": true,
}

// DetectPlaceholder flags placeholder text that stands in for real values.
func DetectPlaceholder(value string) (bool, string) {
	if placeholderTokens[strings.ToLower(strings.TrimSpace(value))] {
		return false, fmt.Sprintf("Placeholder text detected: %s", value)
	}
	return true, ""
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email shape.
func ValidateEmail(value string) (bool, string) {
	if emailPattern.MatchString(value) {
		return true, ""
	}
	return false, "Invalid email format"
}

var nonDigits = regexp.MustCompile(`[^\d]`)

// ValidatePhone checks for a US phone number: 10 digits, or 11 with a
// leading 1, ignoring formatting characters.
func ValidatePhone(value string) (bool, string) {
	cleaned := nonDigits.ReplaceAllString(value, "")
	if len(cleaned) == 10 {
		return true, ""
	}
	if len(cleaned) == 11 && cleaned[0] == '1' {
		return true, ""
	}
	return false, "Phone must be 10 digits (or 11 with leading 1)"
}

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// ValidateZIP checks US ZIP code shape (5 digits or ZIP+4).
func ValidateZIP(value string) (bool, string) {
	if zipPattern.MatchString(strings.TrimSpace(value)) {
		return true, ""
	}
	return false, "ZIP code must be 5 digits or 5+4 format"
}

var hl7SegmentPattern = regexp.MustCompile(`^[A-Z]{3}\|`)

// ValidateHL7Structure performs a structural sanity check on an HL7 message:
// minimum length, MSH first segment, and a 3-uppercase-letter code followed
// by '|' on each of the first five segments.
func ValidateHL7Structure(content string) (bool, string) {
	if len(content) < 10 {
		return false, "HL7 message is empty or too short"
	}
	var segments []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			segments = append(segments, line)
		}
	}
	if len(segments) == 0 || !strings.HasPrefix(segments[0], "MSH") {
		return false, "HL7 message must start with MSH segment"
	}
	limit := len(segments)
	if limit > 5 {
		limit = 5
	}
	for i := 0; i < limit; i++ {
		if !hl7SegmentPattern.MatchString(segments[i]) {
			return false, fmt.Sprintf("Invalid segment format at line %d", i+1)
		}
	}
	return true, ""
}
