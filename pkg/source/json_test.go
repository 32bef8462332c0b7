// pkg/source/json_test.go
package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datagroom/pkg/dataset"
)

func TestJSONLoad(t *testing.T) {
	path := writeTempFile(t, "people.json",
		`[{"name":"alice","age":30},{"name":"bob","age":45.5}]`)

	src := NewJSONSource(path, Options{})
	ds, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Rows())
	assert.Equal(t, []string{"name", "age"}, ds.ColumnNames())
	assert.Equal(t, dataset.Categorical, ds.Columns[0].Kind)
	assert.Equal(t, dataset.Numeric, ds.Columns[1].Kind)
	assert.Equal(t, []float64{30, 45.5}, ds.Columns[1].Floats)
}

func TestJSONLoadKeyOrder(t *testing.T) {
	path := writeTempFile(t, "order.json",
		`[{"b":1,"a":2},{"a":3,"c":4}]`)

	src := NewJSONSource(path, Options{})
	ds, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a", "c"}, ds.ColumnNames())
}

func TestJSONLoadNullAndAbsentKeys(t *testing.T) {
	path := writeTempFile(t, "holes.json",
		`[{"a":1,"b":null},{"a":2}]`)

	src := NewJSONSource(path, Options{})
	ds, err := src.Load(context.Background())
	require.NoError(t, err)

	b := ds.Columns[1]
	assert.True(t, b.Nulls[0], "explicit null should be missing")
	assert.True(t, b.Nulls[1], "absent key should be missing")
	assert.Equal(t, 2, ds.TotalMissing())
}

func TestJSONLoadNestedValues(t *testing.T) {
	path := writeTempFile(t, "nested.json",
		`[{"id":1,"meta":{"x":1},"tags":[1,2]}]`)

	src := NewJSONSource(path, Options{})
	ds, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dataset.Categorical, ds.Columns[1].Kind)
	assert.Equal(t, `{"x":1}`, ds.Columns[1].Strs[0])
	assert.Equal(t, `[1,2]`, ds.Columns[2].Strs[0])
}

func TestJSONLoadBooleansBecomeText(t *testing.T) {
	path := writeTempFile(t, "flags.json",
		`[{"active":true},{"active":false}]`)

	src := NewJSONSource(path, Options{})
	ds, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dataset.Categorical, ds.Columns[0].Kind)
	assert.Equal(t, []string{"true", "false"}, ds.Columns[0].Strs)
}

func TestJSONLoadMaxRows(t *testing.T) {
	path := writeTempFile(t, "big.json",
		`[{"n":1},{"n":2},{"n":3}]`)

	src := NewJSONSource(path, Options{MaxRows: 2})
	ds, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Rows())
}

func TestJSONLoadNotAnArray(t *testing.T) {
	path := writeTempFile(t, "object.json", `{"a":1}`)

	src := NewJSONSource(path, Options{})
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array of objects")
}

func TestJSONLoadRejectsNonObjectRecord(t *testing.T) {
	path := writeTempFile(t, "scalars.json", `[{"a":1},2]`)

	src := NewJSONSource(path, Options{})
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 1")
}
