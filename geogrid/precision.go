package geogrid

import "math"

// avgCellErrorKm maps a geohash precision (cell code length) to the average
// cell error in kilometers. Values from the geohash length/error table.
var avgCellErrorKm = map[uint]float64{
	1: 2500,
	2: 630,
	3: 78,
	4: 20,
	5: 2.4,
	6: 0.61,
	7: 0.076,
	8: 0.019,
}

// MinPrecision and MaxPrecision bound the supported cell code lengths.
const (
	MinPrecision uint = 1
	MaxPrecision uint = 8
)

// SelectPrecision picks a precision for a desired average search radius in
// kilometers. It intentionally prefers the coarsest level whose average error
// is still >= the radius, breaking ties by closeness; only when every level's
// error falls below the radius does it fall back to pure closeness. Do not
// replace this with plain closeness.
func SelectPrecision(radius float64) (uint, float64) {
	var (
		best      uint
		bestBelow = 2 // ranks worse than any real indicator (0 or 1)
		bestDiff  = math.Inf(1)
	)

	for p := MinPrecision; p <= MaxPrecision; p++ {
		err := avgCellErrorKm[p]

		below := 0
		if err < radius {
			below = 1
		}
		diff := math.Abs(radius - err)

		if below < bestBelow || (below == bestBelow && diff < bestDiff) {
			best = p
			bestBelow = below
			bestDiff = diff
		}
	}

	return best, avgCellErrorKm[best]
}

// AvgCellError returns the average cell error in kilometers for a precision.
func AvgCellError(precision uint) float64 {
	return avgCellErrorKm[precision]
}
