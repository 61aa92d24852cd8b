package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-inventory-catalog/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullHeader = "Category Name,Category Description,Product Name,Product Description,Product Price,Available Units,Sold Units\n"

func TestRead(t *testing.T) {
	in := "\uFEFF Category Name , Product Name,Product Price,Available Units\n" +
		"Fruit,Apple,1.50,100\n" +
		"Fruit,Pear\n"

	records, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Fruit", records[0].Get(HeaderCategoryName))
	assert.Equal(t, "1.50", records[0].Get(HeaderProductPrice))
	assert.Equal(t, "100", records[0].Get(HeaderAvailableUnits))
	assert.Equal(t, "", records[0].Get(HeaderSoldUnits))

	assert.Equal(t, "Pear", records[1].Get(HeaderProductName))
	assert.Equal(t, "", records[1].Get(HeaderProductPrice))
}

func TestReadRejects(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr *apperr.Error
		wantMsg string
	}{
		{
			name:    "empty input",
			in:      "",
			wantErr: ErrInvalidFormat,
			wantMsg: "CSV file is empty or invalid format",
		},
		{
			name:    "header only",
			in:      fullHeader,
			wantErr: ErrInvalidFormat,
			wantMsg: "CSV file is empty or invalid format",
		},
		{
			name:    "missing price and category headers",
			in:      "Product Name,Available Units\nApple,1\n",
			wantErr: ErrMissingHeaders,
			wantMsg: "Missing required CSV headers: Category Name, Product Price",
		},
		{
			name:    "header names are case-sensitive",
			in:      "category name,Product Name,Product Price\nFruit,Apple,1\n",
			wantErr: ErrMissingHeaders,
			wantMsg: "Missing required CSV headers: Category Name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Read(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Nil(t, records)
			assert.ErrorIs(t, err, tt.wantErr)

			var e *apperr.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.wantMsg, e.Msg())
			assert.Equal(t, apperr.KindBadRequest, e.Kind())
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(fullHeader+"Fruit,,Apple,,1.50,100,10\n"), 0o600))

	records, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "10", records[0].Get(HeaderSoldUnits))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
