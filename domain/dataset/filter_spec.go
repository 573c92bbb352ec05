package dataset

// FilterSpec selects rows of a single column. It is either a NumericRange or a CategorySet;
// the caller picks the variant from the inspected column kind.
type FilterSpec interface {
	// Mode names the kind of column the spec applies to
	Mode() ColumnKind
	// IsNoop reports whether the spec leaves every row in place
	IsNoop() bool
}

// NumericRange keeps rows whose value lies within the inclusive bounds; nil bounds are open
type NumericRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Mode implements FilterSpec
func (NumericRange) Mode() ColumnKind { return KindNumeric }

// IsNoop implements FilterSpec
func (r NumericRange) IsNoop() bool { return r.Min == nil && r.Max == nil }

// Contains reports whether v satisfies both bounds; NaN never satisfies a set bound
func (r NumericRange) Contains(v float64) bool {
	if r.Min != nil && !(v >= *r.Min) {
		return false
	}
	if r.Max != nil && !(v <= *r.Max) {
		return false
	}
	return true
}

// CategorySet keeps rows whose stringified value is one of Values
type CategorySet struct {
	Values []string `json:"values"`
}

// Mode implements FilterSpec
func (CategorySet) Mode() ColumnKind { return KindCategorical }

// IsNoop implements FilterSpec
func (c CategorySet) IsNoop() bool { return len(c.Values) == 0 }

// Set returns the values as a lookup set
func (c CategorySet) Set() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Values))
	for _, v := range c.Values {
		set[v] = struct{}{}
	}
	return set
}

// Bound is a convenience for building NumericRange literals
func Bound(v float64) *float64 {
	return &v
}
