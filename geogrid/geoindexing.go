package geogrid

import (
	"errors"
)

// IndexingTechnique selects which spatial index answers a nearby search.
type IndexingTechnique string

const (
	GridTechnique     IndexingTechnique = "grid"
	RTreeTechnique    IndexingTechnique = "rtree"
	QuadtreeTechnique IndexingTechnique = "quadtree"
)

// kmPerDegree approximates one degree of latitude for converting the search
// radius to the planar indexes.
const kmPerDegree = 111.0

var defaultTechnique = GridTechnique

var (
	rtreeInstance    *RTreeIndex
	quadtreeInstance *Quadtree
)

// SetDefaultTechnique sets the technique used when a search names none.
func SetDefaultTechnique(technique IndexingTechnique) {
	defaultTechnique = technique
}

// InitRTreeIndex initializes the package-wide R-tree instance.
func InitRTreeIndex() {
	rtreeInstance = NewRTreeIndex()
}

// InitQuadtree initializes the package-wide quadtree instance over a region.
func InitQuadtree(bounds QuadtreeBounds) {
	quadtreeInstance = NewQuadtree(bounds)
}

// IndexPoint feeds a keyed point into whichever alternate indexes have been
// initialized. The grid itself is fed separately through Grid.Add.
func IndexPoint(key string, p Point) {
	if rtreeInstance != nil {
		rtreeInstance.Add(key, p)
	}
	if quadtreeInstance != nil {
		quadtreeInstance.Add(key, p)
	}
}

// SearchNearbyWithRetries looks for keys near a point with the chosen
// technique, doubling the search radius (starting at 1km) after each empty
// attempt.
func SearchNearbyWithRetries(g *Grid, p Point, technique IndexingTechnique, maxRetries int) ([]string, error) {
	if technique == "" {
		technique = defaultTechnique
	}

	radius := 1.0
	var results []string

	for i := 0; i < maxRetries; i++ {
		switch technique {
		case GridTechnique:
			for _, m := range g.FindNearPoint(&p, radius, true) {
				results = append(results, m.Key)
			}
		case RTreeTechnique:
			if rtreeInstance != nil {
				results = rtreeInstance.SearchNearby(p, radius/kmPerDegree)
			}
		case QuadtreeTechnique:
			if quadtreeInstance != nil {
				results = quadtreeInstance.SearchNearby(p, radius/kmPerDegree)
			}
		default:
			return nil, errors.New("unsupported geo-indexing technique")
		}

		if len(results) > 0 {
			break
		}

		radius *= 2
	}

	if len(results) == 0 {
		return nil, errors.New("no nearby points found after maximum retries")
	}

	return results, nil
}
