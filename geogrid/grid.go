package geogrid

import (
	"errors"
	"log"
	"math"
)

// ErrKeyNotFound is returned by lookups for keys that were never indexed.
var ErrKeyNotFound = errors.New("geogrid: key not found")

// Point is a (latitude, longitude) pair in degrees.
type Point struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// ValidPoint reports whether a point is a well-formed coordinate pair.
func ValidPoint(p Point) bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

type gridEntry struct {
	cell  string
	point Point
}

// Grid is a geohash grid index mapping keys to cells and cells to the keys
// they contain. Both mappings mutate only through Add, so they stay in sync.
//
// A Grid is not synchronized. The intended use is a build phase of Add calls
// followed by a read phase of Find* calls; callers mixing the two must wrap
// the Grid in their own lock (see store.Store).
type Grid struct {
	precision uint
	avgRadius float64
	verbose   bool

	keys map[string]gridEntry
	grid map[string][]string
}

// NewGrid creates an empty index at an explicit precision (clamped to the
// supported range).
func NewGrid(precision uint, verbose bool) *Grid {
	if precision < MinPrecision {
		precision = MinPrecision
	}
	if precision > MaxPrecision {
		precision = MaxPrecision
	}
	return newGrid(precision, avgCellErrorKm[precision], verbose)
}

// NewGridWithRadius creates an empty index with the precision selected for a
// desired average search radius in kilometers.
func NewGridWithRadius(radius float64, verbose bool) *Grid {
	precision, avgRadius := SelectPrecision(radius)
	return newGrid(precision, avgRadius, verbose)
}

func newGrid(precision uint, avgRadius float64, verbose bool) *Grid {
	if verbose {
		log.Printf("Setting grid precision to %d, avg radius to %gkm", precision, avgRadius)
	}
	return &Grid{
		precision: precision,
		avgRadius: avgRadius,
		verbose:   verbose,
		keys:      make(map[string]gridEntry),
		grid:      make(map[string][]string),
	}
}

// Precision returns the fixed cell code length of the index.
func (g *Grid) Precision() uint {
	return g.precision
}

// AvgRadius returns the average cell error in kilometers at the index
// precision, used to convert search radii into ring counts.
func (g *Grid) AvgRadius() float64 {
	return g.avgRadius
}

// Len returns the number of indexed keys.
func (g *Grid) Len() int {
	return len(g.keys)
}

func (g *Grid) cellFor(p Point) string {
	return Encode(p.Lat, p.Lng, g.precision)
}

// Add indexes a point under a key. An invalid point is logged (when verbose)
// and skipped, leaving the index unchanged. Re-adding a key overwrites its
// primary entry but appends another bucket entry for its cell; the stale
// bucket entry is a known quirk kept from the reference behavior.
func (g *Grid) Add(key string, p Point) {
	if !ValidPoint(p) {
		if g.verbose {
			log.Printf("Wrong coordinates (%g, %g) for key %s, skipping point.", p.Lat, p.Lng, key)
		}
		return
	}

	cell := g.cellFor(p)

	g.keys[key] = gridEntry{cell: cell, point: p}
	g.grid[cell] = append(g.grid[cell], key)
}

// CellOf returns the cell recorded for a key.
func (g *Grid) CellOf(key string) (string, error) {
	e, ok := g.keys[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return e.cell, nil
}

// PointOf returns the point recorded for a key.
func (g *Grid) PointOf(key string) (Point, error) {
	e, ok := g.keys[key]
	if !ok {
		return Point{}, ErrKeyNotFound
	}
	return e.point, nil
}

// KeysInCell returns the bucket for a cell in insertion order. Cells with no
// entries yield a nil slice. The returned slice is the bucket itself and must
// not be mutated by callers.
func (g *Grid) KeysInCell(cell string) []string {
	return g.grid[cell]
}

// KeysInCells concatenates the buckets of the given cells, preserving cell
// order and bucket order within each cell.
func (g *Grid) KeysInCells(cells []string) []string {
	var keys []string
	for _, cell := range cells {
		keys = append(keys, g.grid[cell]...)
	}
	return keys
}
