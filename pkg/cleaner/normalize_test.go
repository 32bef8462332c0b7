// pkg/cleaner/normalize_test.go
package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datagroom/pkg/dataset"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "trailing space", in: "Name ", want: "name"},
		{name: "hyphen", in: "Age-Years", want: "age_years"},
		{name: "interior space", in: "First Name", want: "first_name"},
		{name: "special characters", in: "Salary ($)", want: "salary_"},
		{name: "consecutive spaces", in: "a  b", want: "a__b"},
		{name: "non ascii stripped", in: "Prénom", want: "prnom"},
		{name: "already normalized", in: "age_years", want: "age_years"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	for _, in := range []string{"Name ", "Age-Years", "Weird!@#Col", "  x  y  "} {
		once := NormalizeName(in)
		assert.Equal(t, once, NormalizeName(once))
	}
}

func TestNormalizeColumns(t *testing.T) {
	ds, err := dataset.New([]dataset.Column{
		{Name: "Name ", Kind: dataset.Categorical, Strs: []string{"a"}, Nulls: []bool{false}},
		{Name: "Age-Years", Kind: dataset.Numeric, Floats: []float64{1}, Nulls: []bool{false}},
	})
	require.NoError(t, err)

	out, actions := NormalizeColumns(ds)

	assert.Equal(t, []string{"name", "age_years"}, out.ColumnNames())
	require.Len(t, actions, 1)
	assert.Equal(t, ActionNormalize, actions[0].Kind)
	assert.Equal(t, "Standardized 2 column names", actions[0].Message)
	assert.False(t, actions[0].Mutating())

	// Input untouched.
	assert.Equal(t, []string{"Name ", "Age-Years"}, ds.ColumnNames())
}

func TestNormalizeColumnsKeepsCollisions(t *testing.T) {
	ds, err := dataset.New([]dataset.Column{
		{Name: "User ID", Kind: dataset.Numeric, Floats: []float64{1}, Nulls: []bool{false}},
		{Name: "user-id", Kind: dataset.Numeric, Floats: []float64{2}, Nulls: []bool{false}},
	})
	require.NoError(t, err)

	out, _ := NormalizeColumns(ds)

	assert.Equal(t, []string{"user_id", "user_id"}, out.ColumnNames())
	assert.Equal(t, 2, out.Cols())
}
