package geogrid

import (
	"sync"

	"github.com/dhconnelly/rtreego"
)

// pointTolerance sizes the bounding box used to index a bare point.
const pointTolerance = 0.0001

// spatialEntity wraps an indexed key to satisfy the rtreego.Spatial
// interface. Coordinates are stored as {lat, lng} in degrees.
type spatialEntity struct {
	key string
	loc rtreego.Point
}

func (e *spatialEntity) Bounds() rtreego.Rect {
	return e.loc.ToRect(pointTolerance)
}

// RTreeIndex is an alternate spatial index over the same entities, used by
// the technique comparison endpoint. Unlike Grid it is safe for concurrent
// use.
type RTreeIndex struct {
	mu   sync.Mutex
	tree *rtreego.Rtree
}

// NewRTreeIndex creates an empty 2-dimensional R-tree.
func NewRTreeIndex() *RTreeIndex {
	return &RTreeIndex{tree: rtreego.NewTree(2, 25, 50)}
}

// Add inserts a keyed point.
func (idx *RTreeIndex) Add(key string, p Point) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.tree.Insert(&spatialEntity{key: key, loc: rtreego.Point{p.Lat, p.Lng}})
}

// SearchNearby returns the keys within a bounding box of the given size in
// degrees around the point.
func (idx *RTreeIndex) SearchNearby(p Point, radiusDeg float64) []string {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	center := rtreego.Point{p.Lat, p.Lng}

	var keys []string
	for _, s := range idx.tree.SearchIntersect(center.ToRect(radiusDeg)) {
		if e, ok := s.(*spatialEntity); ok {
			keys = append(keys, e.key)
		}
	}
	return keys
}
