package geogrid

import (
	"math"
	"sync"
)

// QuadtreeBounds delimits a lat/lng region covered by a quadtree.
type QuadtreeBounds struct {
	MinLat, MinLng, MaxLat, MaxLng float64
}

type quadtreePoint struct {
	key string
	lat float64
	lng float64
}

type quadtreeNode struct {
	bounds   QuadtreeBounds
	points   []quadtreePoint
	children [4]*quadtreeNode
}

// Quadtree is an alternate region-subdivision index over keyed points, used
// by the technique comparison endpoint. Distances are planar degrees, which
// is adequate for the small regions it is meant to cover.
type Quadtree struct {
	root *quadtreeNode
	mu   sync.Mutex
}

// NewQuadtree creates a quadtree covering the given region.
func NewQuadtree(bounds QuadtreeBounds) *Quadtree {
	return &Quadtree{root: &quadtreeNode{bounds: bounds}}
}

// Add inserts a keyed point. Points outside the tree's bounds are dropped.
func (qt *Quadtree) Add(key string, p Point) {
	qt.mu.Lock()
	defer qt.mu.Unlock()
	qt.root.insert(quadtreePoint{key: key, lat: p.Lat, lng: p.Lng})
}

func (node *quadtreeNode) insert(p quadtreePoint) {
	if !node.contains(p) {
		return
	}
	if len(node.points) < 4 && node.children[0] == nil {
		node.points = append(node.points, p)
		return
	}
	if node.children[0] == nil {
		node.subdivide()
	}
	for i := 0; i < 4; i++ {
		node.children[i].insert(p)
	}
}

func (node *quadtreeNode) contains(p quadtreePoint) bool {
	return p.lat >= node.bounds.MinLat && p.lat <= node.bounds.MaxLat &&
		p.lng >= node.bounds.MinLng && p.lng <= node.bounds.MaxLng
}

func (node *quadtreeNode) subdivide() {
	midLat := (node.bounds.MinLat + node.bounds.MaxLat) / 2
	midLng := (node.bounds.MinLng + node.bounds.MaxLng) / 2
	node.children[0] = &quadtreeNode{bounds: QuadtreeBounds{node.bounds.MinLat, node.bounds.MinLng, midLat, midLng}}
	node.children[1] = &quadtreeNode{bounds: QuadtreeBounds{node.bounds.MinLat, midLng, midLat, node.bounds.MaxLng}}
	node.children[2] = &quadtreeNode{bounds: QuadtreeBounds{midLat, node.bounds.MinLng, node.bounds.MaxLat, midLng}}
	node.children[3] = &quadtreeNode{bounds: QuadtreeBounds{midLat, midLng, node.bounds.MaxLat, node.bounds.MaxLng}}
}

// SearchNearby returns the keys within radiusDeg planar degrees of a point.
func (qt *Quadtree) SearchNearby(p Point, radiusDeg float64) []string {
	qt.mu.Lock()
	defer qt.mu.Unlock()

	found := qt.root.searchNearby(quadtreePoint{lat: p.Lat, lng: p.Lng}, radiusDeg)

	keys := make([]string, 0, len(found))
	for _, fp := range found {
		keys = append(keys, fp.key)
	}
	return keys
}

func (node *quadtreeNode) searchNearby(center quadtreePoint, radius float64) []quadtreePoint {
	if !node.intersectsCircle(center, radius) {
		return nil
	}
	var result []quadtreePoint
	for _, p := range node.points {
		if planarDistance(p, center) <= radius {
			result = append(result, p)
		}
	}
	if node.children[0] != nil {
		for i := 0; i < 4; i++ {
			result = append(result, node.children[i].searchNearby(center, radius)...)
		}
	}
	return result
}

func (node *quadtreeNode) intersectsCircle(center quadtreePoint, radius float64) bool {
	closestLat := math.Max(node.bounds.MinLat, math.Min(center.lat, node.bounds.MaxLat))
	closestLng := math.Max(node.bounds.MinLng, math.Min(center.lng, node.bounds.MaxLng))
	dLat := closestLat - center.lat
	dLng := closestLng - center.lng
	return (dLat*dLat + dLng*dLng) <= (radius * radius)
}

func planarDistance(a, b quadtreePoint) float64 {
	dLat := a.lat - b.lat
	dLng := a.lng - b.lng
	return math.Sqrt(dLat*dLat + dLng*dLng)
}
