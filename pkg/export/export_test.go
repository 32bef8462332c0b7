// pkg/export/export_test.go
package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datagroom/pkg/dataset"
	"datagroom/pkg/source"
)

func buildDataset(t *testing.T) dataset.Dataset {
	t.Helper()
	ds, err := dataset.Assemble(
		[]string{"name", "age"},
		[][]dataset.Value{
			{dataset.FromString("alice"), dataset.FromString("30")},
			{dataset.FromString("bob"), {Null: true}},
			{dataset.FromString("cara"), dataset.FromString("45.5")},
		},
	)
	require.NoError(t, err)
	return ds
}

func TestWriteCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, buildDataset(t)))

	ds, err := source.NewCSVSource(path, source.Options{}).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age"}, ds.ColumnNames())
	assert.Equal(t, dataset.Categorical, ds.Columns[0].Kind)

	age := ds.Columns[1]
	assert.Equal(t, dataset.Numeric, age.Kind)
	assert.Equal(t, 30.0, age.Floats[0])
	assert.True(t, age.Nulls[1])
	assert.Equal(t, 45.5, age.Floats[2])
}

func TestWriteTSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")
	require.NoError(t, WriteCSV(path, buildDataset(t)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "name\tage")

	ds, err := source.NewCSVSource(path, source.Options{}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Rows())
}

func TestWriteCSVEmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteCSV(path, dataset.Dataset{}))

	ds, err := source.NewCSVSource(path, source.Options{}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Rows())
}

func TestWriteJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSON(path, buildDataset(t)))

	ds, err := source.NewJSONSource(path, source.Options{}).Load(context.Background())
	require.NoError(t, err)

	// Map keys marshal sorted, so the column order flips on the way back.
	assert.Equal(t, []string{"age", "name"}, ds.ColumnNames())

	age := ds.Columns[0]
	assert.Equal(t, dataset.Numeric, age.Kind)
	assert.Equal(t, 30.0, age.Floats[0])
	assert.True(t, age.Nulls[1])
	assert.Equal(t, 45.5, age.Floats[2])
	assert.Equal(t, []string{"alice", "bob", "cara"}, ds.Columns[1].Strs)
}

func TestWriteXLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteXLSX(path, buildDataset(t)))

	ds, err := source.NewXLSXSource(path, source.Options{}).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age"}, ds.ColumnNames())

	age := ds.Columns[1]
	assert.Equal(t, dataset.Numeric, age.Kind)
	assert.True(t, age.Nulls[1])
	assert.Equal(t, 45.5, age.Floats[2])
}

func TestWriteDataset(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteDataset(filepath.Join(dir, "out.csv"), buildDataset(t)))
	require.NoError(t, WriteDataset(filepath.Join(dir, "out.json"), buildDataset(t)))
	require.NoError(t, WriteDataset(filepath.Join(dir, "out.xlsx"), buildDataset(t)))

	err := WriteDataset(filepath.Join(dir, "out.parquet"), buildDataset(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestWriteArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")

	payload := struct {
		Rows int `json:"rows"`
	}{Rows: 3}
	require.NoError(t, WriteArtifact(path, payload))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"rows": 3`)
}
