package chart

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobi/domain/stats"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"distribution", KindDistribution},
		{"Category Bar", KindCategoryAggregate},
		{"correlation heatmap", KindCorrelationHeatmap},
		{"time_series", KindTimeSeries},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseKind("pie")
	assert.Error(t, err)
}

func TestSpecAgg(t *testing.T) {
	assert.Equal(t, stats.AggSum, Spec{}.Agg())
	assert.Equal(t, stats.AggMedian, Spec{Aggregation: stats.AggMedian}.Agg())
}

func TestValuesJSON(t *testing.T) {
	b, err := json.Marshal(Trace{Type: TraceBar, X: Labels([]string{"a", "b"}), Y: Numbers([]float64{1.5, math.NaN()})})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"bar","x":["a","b"],"y":[1.5,null]}`, string(b))

	var tr Trace
	require.NoError(t, json.Unmarshal(b, &tr))
	assert.True(t, tr.X.IsCategorical())
	assert.False(t, tr.Y.IsCategorical())
	assert.Equal(t, 2, tr.Y.Len())
	assert.Equal(t, 1.5, tr.Y.Floats()[0])
	assert.True(t, math.IsNaN(tr.Y.Floats()[1]))
}
