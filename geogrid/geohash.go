package geogrid

import (
	"github.com/mmcloughlin/geohash"
)

// Encode coordinates into a geohash cell at the given precision.
func Encode(lat, lng float64, precision uint) string {
	return geohash.EncodeWithPrecision(lat, lng, precision)
}

// Neighbors returns the geohashes of the up to 8 adjacent cells.
func Neighbors(cell string) []string {
	return geohash.Neighbors(cell)
}
