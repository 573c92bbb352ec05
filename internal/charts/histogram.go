package charts

import "math"

// Bin is one histogram bucket covering [Lo, Hi); the last bucket includes Hi
type Bin struct {
	Lo    float64
	Hi    float64
	Count int
}

// Histogram splits the non-NaN values into n equal-width bins between their min and max.
// All values equal yields a single bin.
func Histogram(values []float64, n int) []Bin {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) || n < 1 {
		return nil
	}
	if lo == hi {
		count := 0
		for _, v := range values {
			if !math.IsNaN(v) {
				count++
			}
		}
		return []Bin{{Lo: lo, Hi: hi, Count: count}}
	}

	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	bins[n-1].Hi = hi

	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		i := int((v - lo) / width)
		if i >= n {
			i = n - 1
		}
		bins[i].Count++
	}
	return bins
}
