package stats

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAggregation(t *testing.T) {
	tests := []struct {
		in      string
		want    Aggregation
		wantErr bool
	}{
		{"sum", AggSum, false},
		{"MEAN", AggMean, false},
		{" count ", AggCount, false},
		{"median", AggMedian, false},
		{"", AggSum, false},
		{"mode", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAggregation(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregationValid(t *testing.T) {
	for _, a := range Aggregations {
		assert.True(t, a.Valid(), a)
	}
	assert.False(t, Aggregation("Mean").Valid())
	assert.False(t, Aggregation("bogus").Valid())
	assert.False(t, Aggregation("").Valid())
}

func TestCorrelationMatrix_SetIsSymmetric(t *testing.T) {
	m := NewCorrelationMatrix([]string{"a", "b"})
	assert.True(t, math.IsNaN(m.At(0, 1)))

	m.Set(0, 0, 1)
	m.Set(1, 1, 1)
	m.Set(0, 1, 0.5)
	assert.Equal(t, 0.5, m.At(1, 0))

	v, ok := m.Lookup("b", "a")
	assert.True(t, ok)
	assert.Equal(t, 0.5, v)
	_, ok = m.Lookup("a", "z")
	assert.False(t, ok)
}

func TestCorrelationMatrix_JSON(t *testing.T) {
	m := NewCorrelationMatrix([]string{"a", "b"})
	m.Set(0, 0, 1)
	m.Set(0, 1, -0.25)

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"columns":["a","b"],"values":[[1,-0.25],[-0.25,null]]}`, string(b))

	empty := NewCorrelationMatrix(nil)
	assert.True(t, empty.IsEmpty())
	assert.Nil(t, empty.Sym())
	b, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"columns":[],"values":[]}`, string(b))
}
