// Package ingest turns an uploaded CSV file into catalog writes: it reads and
// validates rows, reconciles each one against the category, product and
// inventory stores, and folds the outcomes into a Report.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go-inventory-catalog/internal/apperr"
)

// CSV header names.
const (
	HeaderCategoryName        = "Category Name"
	HeaderCategoryDescription = "Category Description"
	HeaderProductName         = "Product Name"
	HeaderProductDescription  = "Product Description"
	HeaderProductPrice        = "Product Price"
	HeaderAvailableUnits      = "Available Units"
	HeaderSoldUnits           = "Sold Units"
)

// RequiredHeaders must all be present in the header line.
var RequiredHeaders = []string{HeaderCategoryName, HeaderProductName, HeaderProductPrice}

var (
	ErrInvalidFormat  = apperr.BadRequest("CSV_INVALID", "CSV file is empty or invalid format")
	ErrMissingHeaders = apperr.BadRequest("CSV_MISSING_HEADERS", "Missing required CSV headers")
)

const utf8BOM = "\uFEFF"

// Record is one data line keyed by header name.
type Record map[string]string

// Get returns the value under header, or "" when the column or the cell is absent.
func (r Record) Get(header string) string {
	return r[header]
}

// ReadFile opens path and reads it with Read.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a header line followed by data lines. It fails when the input
// has no data lines, cannot be parsed, or lacks any of RequiredHeaders.
// Short lines are padded with empty values; extra cells are ignored.
func Read(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrInvalidFormat
	}
	if err != nil {
		return nil, ErrInvalidFormat.Wrap(err)
	}
	columns := normalizeHeader(header)

	var records []Record
	for {
		line, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, ErrInvalidFormat.Wrap(err)
		}

		rec := make(Record, len(columns))
		for i, name := range columns {
			if name == "" {
				continue
			}
			if _, dup := rec[name]; dup {
				continue
			}
			if i < len(line) {
				rec[name] = line[i]
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrInvalidFormat
	}
	if missing := missingHeaders(columns); len(missing) > 0 {
		return nil, ErrMissingHeaders.WithMsg("Missing required CSV headers: %s", strings.Join(missing, ", "))
	}
	return records, nil
}

func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		columns[i] = strings.TrimSpace(h)
	}
	return columns
}

func missingHeaders(columns []string) []string {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	var missing []string
	for _, h := range RequiredHeaders {
		if !present[h] {
			missing = append(missing, h)
		}
	}
	return missing
}
