package geogrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	oryPoint = Point{Lat: 48.72, Lng: 2.359}
	cdgPoint = Point{Lat: 48.75, Lng: 2.361}
)

// parisGrid is the two-airport fixture: radius 20km selects precision 4,
// which puts ORY and CDG in the same cell.
func parisGrid() *Grid {
	g := NewGridWithRadius(20, false)
	g.Add("ORY", oryPoint)
	g.Add("CDG", cdgPoint)
	return g
}

func TestFindNearKey(t *testing.T) {
	g := parisGrid()

	matches := g.FindNearKey("ORY", 20, false)
	assert.Equal(t, []Match{{Key: "ORY"}, {Key: "CDG"}}, matches)
}

func TestFindNearKeyDoubleCheck(t *testing.T) {
	g := parisGrid()

	matches := g.FindNearKey("ORY", 20, true)
	require.Len(t, matches, 2)
	assert.Equal(t, "ORY", matches[0].Key)
	assert.Equal(t, 0.0, matches[0].Distance)
	assert.Equal(t, "CDG", matches[1].Key)
	assert.InDelta(t, 3.33, matches[1].Distance, 0.01)
}

func TestFindNearKeyUnknown(t *testing.T) {
	g := parisGrid()

	assert.Empty(t, g.FindNearKey("LHR", 20, false))
	assert.Empty(t, g.FindNearKey("LHR", 20, true))
}

func TestFindNearPoint(t *testing.T) {
	g := parisGrid()
	query := Point{Lat: 48.73, Lng: 2.36}

	matches := g.FindNearPoint(&query, 20, true)
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.LessOrEqual(t, m.Distance, 20.0)
	}
}

func TestFindNearPointMissing(t *testing.T) {
	g := parisGrid()
	assert.Empty(t, g.FindNearPoint(nil, 20, false))
}

func TestFindNearPointRadiusFilter(t *testing.T) {
	g := parisGrid()
	g.Add("JFK", Point{Lat: 40.64, Lng: -73.78})

	matches := g.FindNearPoint(&oryPoint, 20, true)
	for _, m := range matches {
		assert.NotEqual(t, "JFK", m.Key)
	}
}

func TestFindClosestFromPoint(t *testing.T) {
	g := parisGrid()

	matches, err := g.FindClosestFromPoint(cdgPoint, 2, true, nil)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "CDG", matches[0].Key)
	assert.Equal(t, 0.0, matches[0].Distance)
	assert.Equal(t, "ORY", matches[1].Key)
	assert.InDelta(t, 3.33, matches[1].Distance, 0.01)
}

func TestFindClosestFromPointUnrefined(t *testing.T) {
	g := parisGrid()

	matches, err := g.FindClosestFromPoint(cdgPoint, 2, false, nil)
	require.NoError(t, err)

	// Without refinement results are approximate and unordered by contract;
	// only membership is checked.
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		assert.Equal(t, 0.0, m.Distance)
		keys = append(keys, m.Key)
	}
	assert.ElementsMatch(t, []string{"ORY", "CDG"}, keys)
}

func TestFindClosestFromPointEmptyRestriction(t *testing.T) {
	g := parisGrid()

	matches, err := g.FindClosestFromPoint(cdgPoint, 2, true, []string{})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindClosestFromPointRestriction(t *testing.T) {
	g := parisGrid()

	matches, err := g.FindClosestFromPoint(cdgPoint, 1, true, []string{"ORY"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "ORY", matches[0].Key)
}

func TestFindClosestFromPointExhaustion(t *testing.T) {
	// Precision 1 keeps the cell space tiny, so the expansion saturates it
	// quickly and then walks empty rings until the cap.
	g := NewGrid(1, false)
	g.Add("ORY", oryPoint)

	// The restriction names a key that was never indexed, so the search can
	// never collect enough candidates and must report exhaustion instead of
	// silently returning a partial result.
	matches, err := g.FindClosestFromPoint(cdgPoint, 1, true, []string{"LHR"})
	assert.ErrorIs(t, err, ErrExpansionExhausted)
	assert.Empty(t, matches)
}

func TestFindClosestFromPointClampsN(t *testing.T) {
	g := parisGrid()

	matches, err := g.FindClosestFromPoint(cdgPoint, 10, true, nil)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestQueriesAreIdempotent(t *testing.T) {
	g := parisGrid()

	first := g.FindNearKey("ORY", 20, true)
	second := g.FindNearKey("ORY", 20, true)
	assert.Equal(t, first, second)

	c1, err := g.FindClosestFromPoint(cdgPoint, 2, true, nil)
	require.NoError(t, err)
	c2, err := g.FindClosestFromPoint(cdgPoint, 2, true, nil)
	require.NoError(t, err)
	assert.Equal(t, c1, c2)
}

func TestRingsForRadius(t *testing.T) {
	g := NewGridWithRadius(20, false)

	// A radius equal to the average cell error uses 2 rings; anything else
	// over-covers by floor(R/avg)+2.
	assert.Equal(t, 2, g.ringsForRadius(20))
	assert.Equal(t, 2, g.ringsForRadius(15))
	assert.Equal(t, 4, g.ringsForRadius(45))
	assert.Equal(t, 7, g.ringsForRadius(100))
}
