package ingest

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingFields = errors.New("Missing required fields")
	ErrInvalidPrice  = errors.New("Invalid price format")
)

// Row is a validated data line with defaults applied.
type Row struct {
	// Number is the 1-based line number in the file, counting the header.
	Number int

	CategoryName        string
	CategoryDescription string
	ProductName         string
	ProductDescription  string
	Price               decimal.Decimal
	Available           int
	Sold                int
}

// RowNumber maps a zero-based data index to the line number users see.
func RowNumber(index int) int {
	return index + 2
}

// Validate checks one record. Category Name, Product Name and Product Price
// are required; the price must be a non-negative decimal. Unit counts never
// fail a row: anything that does not start with a non-negative integer is 0.
// Blank descriptions fall back to the matching name.
func Validate(number int, rec Record) (Row, error) {
	row := Row{
		Number:              number,
		CategoryName:        strings.TrimSpace(rec.Get(HeaderCategoryName)),
		CategoryDescription: strings.TrimSpace(rec.Get(HeaderCategoryDescription)),
		ProductName:         strings.TrimSpace(rec.Get(HeaderProductName)),
		ProductDescription:  strings.TrimSpace(rec.Get(HeaderProductDescription)),
	}
	rawPrice := strings.TrimSpace(rec.Get(HeaderProductPrice))

	if row.CategoryName == "" || row.ProductName == "" || rawPrice == "" {
		return Row{}, ErrMissingFields
	}

	price, err := decimal.NewFromString(rawPrice)
	if err != nil || price.IsNegative() {
		return Row{}, ErrInvalidPrice
	}
	row.Price = price

	if row.CategoryDescription == "" {
		row.CategoryDescription = row.CategoryName
	}
	if row.ProductDescription == "" {
		row.ProductDescription = row.ProductName
	}

	row.Available = parseUnits(rec.Get(HeaderAvailableUnits))
	row.Sold = parseUnits(rec.Get(HeaderSoldUnits))
	return row, nil
}

// parseUnits reads the leading integer of s ("12.7" is 12, "10 units" is 10).
// Empty, non-numeric, negative and out-of-range input yields 0.
func parseUnits(s string) int {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
