// pkg/source/xlsx_test.go
package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"datagroom/pkg/dataset"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.xlsx")

	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestXLSXLoad(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"name", "age"},
		{"alice", 30},
		{"bob", 45.5},
		{"cara", "NA"},
	})

	src := NewXLSXSource(path, Options{})
	ds, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Rows())
	assert.Equal(t, []string{"name", "age"}, ds.ColumnNames())

	age := ds.Columns[1]
	assert.Equal(t, dataset.Numeric, age.Kind)
	assert.Equal(t, 30.0, age.Floats[0])
	assert.Equal(t, 45.5, age.Floats[1])
	assert.True(t, age.Nulls[2])
}

func TestXLSXLoadPadsShortRows(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"a", "b"},
		{"x"},
	})

	src := NewXLSXSource(path, Options{})
	ds, err := src.Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, ds.Rows())
	assert.Equal(t, "x", ds.Columns[0].Strs[0])
	assert.True(t, ds.Columns[1].Nulls[0])
}

func TestXLSXLoadMaxRows(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"n"},
		{1},
		{2},
		{3},
	})

	src := NewXLSXSource(path, Options{MaxRows: 2})
	ds, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Rows())
}

func TestXLSXLoadEmptyWorkbook(t *testing.T) {
	path := writeWorkbook(t, nil)

	src := NewXLSXSource(path, Options{})
	ds, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, ds.Rows())
	assert.Equal(t, 0, ds.Cols())
}

func TestXLSXLoadMissingFile(t *testing.T) {
	src := NewXLSXSource(filepath.Join(t.TempDir(), "nope.xlsx"), Options{})
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}

func TestXLSXName(t *testing.T) {
	src := NewXLSXSource("/data/in/survey.xlsx", Options{})
	assert.Equal(t, "survey.xlsx", src.Name())
}
