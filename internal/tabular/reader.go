package tabular

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// ReadFile parses an uploaded file according to its extension. CSV, Excel
// (XLS/XLSX), and JSON are supported; any other extension is tried as CSV.
// The returned warnings describe recoverable issues (e.g. a fallback decode)
// that the caller should surface on the validation result.
func ReadFile(path string) (*Dataset, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read file: %w", err)
	}
	return Parse(data, filepath.Base(path))
}

// Parse decodes raw file content using the filename extension to pick a
// format.
func Parse(data []byte, filename string) (*Dataset, []string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls", ".xlsx":
		return parseExcel(data)
	case ".json":
		return parseJSON(data)
	default:
		// CSV is also the fallback for unknown extensions.
		return parseCSV(data)
	}
}

func parseCSV(data []byte) (*Dataset, []string, error) {
	var warnings []string

	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, nil, fmt.Errorf("could not decode file as UTF-8 or Latin-1: %w", err)
		}
		data = decoded
		warnings = append(warnings, "File read with latin-1 encoding (expected UTF-8)")
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return &Dataset{}, warnings, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("error reading file: %w", err)
	}

	ds := &Dataset{Columns: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading file: %w", err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, warnings, nil
}

func parseExcel(data []byte) (*Dataset, []string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("error reading file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Dataset{}, nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("error reading file: %w", err)
	}
	if len(rows) == 0 {
		return &Dataset{}, nil, nil
	}

	header := rows[0]
	ds := &Dataset{Columns: header}
	for _, record := range rows[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil, nil
}

func parseJSON(data []byte) (*Dataset, []string, error) {
	var records []map[string]interface{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("error reading file: %w", err)
	}

	// JSON objects carry no field order, so columns are collected in sorted
	// first-seen order for a deterministic dataset shape.
	var columns []string
	seen := map[string]bool{}
	for _, rec := range records {
		keys := make([]string, 0, len(rec))
		for k := range rec {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}

	ds := &Dataset{Columns: columns}
	for _, rec := range records {
		row := make(Row, len(columns))
		for _, col := range columns {
			row[col] = stringifyCell(rec[col])
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil, nil
}

func stringifyCell(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
