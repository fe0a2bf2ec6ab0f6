package geogrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuadtreeSearchNearby(t *testing.T) {
	qt := NewQuadtree(QuadtreeBounds{MinLat: -90, MinLng: -180, MaxLat: 90, MaxLng: 180})
	qt.Add("ORY", Point{Lat: 48.72, Lng: 2.359})
	qt.Add("CDG", Point{Lat: 48.75, Lng: 2.361})
	qt.Add("JFK", Point{Lat: 40.64, Lng: -73.78})

	keys := qt.SearchNearby(Point{Lat: 48.73, Lng: 2.36}, 0.1)
	assert.ElementsMatch(t, []string{"ORY", "CDG"}, keys)

	assert.Empty(t, qt.SearchNearby(Point{Lat: 0, Lng: 0}, 0.1))
}

func TestQuadtreeSubdivides(t *testing.T) {
	qt := NewQuadtree(QuadtreeBounds{MinLat: 40, MinLng: 0, MaxLat: 50, MaxLng: 10})

	// More points than a leaf holds, forcing subdivision.
	points := []Point{
		{48.1, 2.1}, {48.2, 2.2}, {48.3, 2.3}, {48.4, 2.4},
		{48.5, 2.5}, {48.6, 2.6}, {48.7, 2.7},
	}
	for i, p := range points {
		qt.Add(string(rune('A'+i)), p)
	}

	keys := qt.SearchNearby(Point{Lat: 48.4, Lng: 2.4}, 1)
	assert.Len(t, keys, len(points))
}

func TestRTreeSearchNearby(t *testing.T) {
	idx := NewRTreeIndex()
	idx.Add("ORY", Point{Lat: 48.72, Lng: 2.359})
	idx.Add("CDG", Point{Lat: 48.75, Lng: 2.361})
	idx.Add("JFK", Point{Lat: 40.64, Lng: -73.78})

	keys := idx.SearchNearby(Point{Lat: 48.73, Lng: 2.36}, 0.1)
	assert.ElementsMatch(t, []string{"ORY", "CDG"}, keys)
}

func TestSearchNearbyWithRetries(t *testing.T) {
	g := NewGridWithRadius(20, false)
	g.Add("ORY", Point{Lat: 48.72, Lng: 2.359})

	keys, err := SearchNearbyWithRetries(g, Point{Lat: 48.73, Lng: 2.36}, GridTechnique, 5)
	require.NoError(t, err)
	assert.Contains(t, keys, "ORY")
}

func TestSearchNearbyWithRetriesUnsupported(t *testing.T) {
	g := NewGrid(4, false)

	_, err := SearchNearbyWithRetries(g, Point{}, IndexingTechnique("voronoi"), 3)
	assert.Error(t, err)
}

func TestSearchNearbyWithRetriesEmpty(t *testing.T) {
	g := NewGridWithRadius(20, false)

	_, err := SearchNearbyWithRetries(g, Point{Lat: 48.73, Lng: 2.36}, GridTechnique, 3)
	assert.Error(t, err)
}
