// Package dataset filters datasets and exports filtered views for download.
package dataset

import (
	"math"
	"sort"

	"gobi/domain/dataset"
)

// MaxCategoryChoices caps the values offered for a category filter
const MaxCategoryChoices = 100

// Filter keeps the rows of d matching spec on column. An absent column, an unset spec or
// a spec whose mode does not fit the column kind returns d itself. d is never modified.
func Filter(d *dataset.Dataset, column string, spec dataset.FilterSpec) *dataset.Dataset {
	col, ok := d.Column(column)
	if !ok || spec == nil || spec.IsNoop() || d.IsEmpty() {
		return d
	}

	switch s := spec.(type) {
	case dataset.NumericRange:
		if !col.IsNumeric() {
			return d
		}
		values, _ := d.Floats(column)
		return d.Subset(matching(len(values), func(i int) bool {
			return s.Contains(values[i])
		}))
	case *dataset.NumericRange:
		return Filter(d, column, *s)
	case dataset.CategorySet:
		if col.IsNumeric() {
			return d
		}
		values, present, _ := d.Strings(column)
		set := s.Set()
		return d.Subset(matching(len(values), func(i int) bool {
			if !present[i] {
				return false
			}
			_, ok := set[values[i]]
			return ok
		}))
	case *dataset.CategorySet:
		return Filter(d, column, *s)
	}
	return d
}

func matching(n int, keep func(i int) bool) []int {
	rows := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}
	return rows
}

// SpecFor picks the filter variant for column from loosely typed inputs: the bounds apply
// to numeric columns and the categories to every other kind. NaN bounds count as unset.
// Returns nil when the column does not exist.
func SpecFor(d *dataset.Dataset, column string, min, max *float64, categories []string) dataset.FilterSpec {
	col, ok := d.Column(column)
	if !ok {
		return nil
	}
	if col.IsNumeric() {
		return dataset.NumericRange{Min: finite(min), Max: finite(max)}
	}
	return dataset.CategorySet{Values: categories}
}

func finite(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) {
		return nil
	}
	return v
}

// CategoryChoices lists the sorted distinct values of a non-numeric column, at most
// MaxCategoryChoices of them. Numeric or absent columns have none.
func CategoryChoices(d *dataset.Dataset, column string) []string {
	col, ok := d.Column(column)
	if !ok || col.IsNumeric() {
		return []string{}
	}

	values, present, _ := d.Strings(column)
	seen := make(map[string]struct{})
	uniques := []string{}
	for i, v := range values {
		if !present[i] {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		uniques = append(uniques, v)
	}
	sort.Strings(uniques)
	if len(uniques) > MaxCategoryChoices {
		uniques = uniques[:MaxCategoryChoices]
	}
	return uniques
}
