package chart

import (
	"encoding/json"

	"gobi/domain/core"
)

// Trace types used by the builder
const (
	TraceHistogram = "histogram"
	TraceBox       = "box"
	TraceBar       = "bar"
	TraceHeatmap   = "heatmap"
	TraceScatter   = "scatter"
)

// Figure is a Plotly figure: traces plus layout
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Title returns the layout title text
func (f *Figure) Title() string {
	return f.Layout.Title.Text
}

// Trace is one Plotly trace; empty fields are omitted
type Trace struct {
	Type         string         `json:"type"`
	Name         string         `json:"name,omitempty"`
	Mode         string         `json:"mode,omitempty"`
	Orientation  string         `json:"orientation,omitempty"`
	X            *Values        `json:"x,omitempty"`
	Y            *Values        `json:"y,omitempty"`
	Z            [][]core.Float `json:"z,omitempty"`
	Text         [][]string     `json:"text,omitempty"`
	TextTemplate string         `json:"texttemplate,omitempty"`
	NBinsX       int            `json:"nbinsx,omitempty"`
	XAxis        string         `json:"xaxis,omitempty"`
	YAxis        string         `json:"yaxis,omitempty"`
	ColorScale   string         `json:"colorscale,omitempty"`
	ZMin         *float64       `json:"zmin,omitempty"`
	ZMax         *float64       `json:"zmax,omitempty"`
	ShowLegend   *bool          `json:"showlegend,omitempty"`
}

// Layout is the subset of Plotly layout attributes the builder sets
type Layout struct {
	Title  Text  `json:"title"`
	XAxis  *Axis `json:"xaxis,omitempty"`
	YAxis  *Axis `json:"yaxis,omitempty"`
	YAxis2 *Axis `json:"yaxis2,omitempty"`
}

// Text is a Plotly text object
type Text struct {
	Text string `json:"text"`
}

// Axis is a Plotly axis
type Axis struct {
	Title          *Text     `json:"title,omitempty"`
	Domain         []float64 `json:"domain,omitempty"`
	Type           string    `json:"type,omitempty"`
	ShowTickLabels *bool     `json:"showticklabels,omitempty"`
	AutoRange      string    `json:"autorange,omitempty"`
}

// AxisTitled returns an axis with the given title
func AxisTitled(title string) *Axis {
	return &Axis{Title: &Text{Text: title}}
}

// Values is a trace coordinate array holding either numbers or category labels
type Values struct {
	Numbers []core.Float
	Labels  []string
}

// Numbers wraps numeric coordinates
func Numbers(vs []float64) *Values {
	out := make([]core.Float, len(vs))
	for i, v := range vs {
		out[i] = core.Float(v)
	}
	return &Values{Numbers: out}
}

// Labels wraps category coordinates
func Labels(ls []string) *Values {
	if ls == nil {
		ls = []string{}
	}
	return &Values{Labels: ls}
}

// Len returns the number of coordinates
func (v *Values) Len() int {
	if v == nil {
		return 0
	}
	if v.Labels != nil {
		return len(v.Labels)
	}
	return len(v.Numbers)
}

// IsCategorical reports whether the coordinates are labels
func (v *Values) IsCategorical() bool {
	return v != nil && v.Labels != nil
}

// Floats returns the numeric coordinates as float64, NaN for undefined ones
func (v *Values) Floats() []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v.Numbers))
	for i, f := range v.Numbers {
		out[i] = f.Float64()
	}
	return out
}

// MarshalJSON implements json.Marshaler
func (v Values) MarshalJSON() ([]byte, error) {
	if v.Labels != nil {
		return json.Marshal(v.Labels)
	}
	if v.Numbers == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.Numbers)
}

// UnmarshalJSON accepts an array of numbers or of strings
func (v *Values) UnmarshalJSON(b []byte) error {
	var labels []string
	if err := json.Unmarshal(b, &labels); err == nil {
		*v = Values{Labels: labels}
		return nil
	}
	var numbers []core.Float
	if err := json.Unmarshal(b, &numbers); err != nil {
		return err
	}
	*v = Values{Numbers: numbers}
	return nil
}
