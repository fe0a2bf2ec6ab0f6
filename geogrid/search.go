package geogrid

import (
	"math"
	"sort"
)

// infRadius disables the radius filter when refining top-N candidates.
var infRadius = math.Inf(1)

// Match pairs a found key with its distance from the query point in
// kilometers. Distance is 0 when exact refinement was not requested.
type Match struct {
	Distance float64 `json:"distance"`
	Key      string  `json:"key"`
}

// ringsForRadius converts a search radius into a ring count. The extra rings
// deliberately over-cover to compensate for the grid's approximate cell
// sizing.
func (g *Grid) ringsForRadius(radius float64) int {
	if radius == g.avgRadius {
		return 2
	}
	return int(radius/g.avgRadius) + 2
}

// findNearCell collects the keys in the rings covering a radius around a
// cell, in discovery order.
func (g *Grid) findNearCell(cell string, radius float64) []string {
	var keys []string
	for _, ring := range Rings(cell, g.ringsForRadius(radius)) {
		keys = append(keys, g.KeysInCells(ring)...)
	}
	return keys
}

// checkDistance keeps the candidates within radius of ref, paired with their
// exact distances, in candidate order.
func (g *Grid) checkDistance(candidates []string, ref Point, radius float64) []Match {
	var matches []Match
	for _, key := range candidates {
		e, ok := g.keys[key]
		if !ok {
			continue
		}
		if dist := Distance(ref, e.point); dist <= radius {
			matches = append(matches, Match{Distance: dist, Key: key})
		}
	}
	return matches
}

func placeholderMatches(keys []string) []Match {
	matches := make([]Match, 0, len(keys))
	for _, key := range keys {
		matches = append(matches, Match{Key: key})
	}
	return matches
}

// FindNearPoint finds the keys within radius kilometers of a point. Without
// doubleCheck the result holds every key found in the covering cells, in cell
// order, with distance 0; with doubleCheck each candidate is verified against
// its exact great-circle distance. A nil point yields an empty result.
func (g *Grid) FindNearPoint(p *Point, radius float64, doubleCheck bool) []Match {
	if p == nil {
		return nil
	}

	candidates := g.findNearCell(g.cellFor(*p), radius)

	if doubleCheck {
		return g.checkDistance(candidates, *p, radius)
	}
	return placeholderMatches(candidates)
}

// FindNearKey finds the keys within radius kilometers of an indexed key. An
// unknown key yields an empty result.
func (g *Grid) FindNearKey(key string, radius float64, doubleCheck bool) []Match {
	e, ok := g.keys[key]
	if !ok {
		return nil
	}

	candidates := g.findNearCell(e.cell, radius)

	if doubleCheck {
		return g.checkDistance(candidates, e.point, radius)
	}
	return placeholderMatches(candidates)
}

// FindClosestFromPoint finds up to n keys closest to a point, expanding rings
// outward until enough candidates are found. A non-nil restrictTo limits the
// candidates to that set; an empty restriction short-circuits to an empty
// result. The expansion stops once at least n keys are found and the last
// ring spanned more than one cell; that boundary heuristic makes unrefined
// results approximate. With doubleCheck the candidates are sorted by exact
// distance (stable, so discovery order breaks ties) and truncated to n.
// ErrExpansionExhausted is returned if the ring cap is hit before the stop
// condition holds.
func (g *Grid) FindClosestFromPoint(p Point, n int, doubleCheck bool, restrictTo []string) ([]Match, error) {
	var restrict map[string]struct{}
	if restrictTo != nil {
		restrict = make(map[string]struct{}, len(restrictTo))
		for _, key := range restrictTo {
			restrict[key] = struct{}{}
		}
		// An empty restriction can never satisfy the stop condition; bail
		// out before expansion instead of running into the ring cap.
		if len(restrict) == 0 {
			return nil, nil
		}
	}

	if n > g.Len() {
		n = g.Len()
	}

	var (
		found []string
		seen  = make(map[string]struct{})
		f     = NewFrontier(g.cellFor(p))
	)

	for {
		ring, err := f.Next()
		if err != nil {
			return nil, err
		}

		for _, key := range g.KeysInCells(ring) {
			if _, dup := seen[key]; dup {
				continue
			}
			if restrict != nil {
				if _, ok := restrict[key]; !ok {
					continue
				}
			}
			seen[key] = struct{}{}
			found = append(found, key)
		}

		if len(found) >= n && len(ring) > 1 {
			break
		}
	}

	if !doubleCheck {
		return placeholderMatches(found), nil
	}

	matches := g.checkDistance(found, p, infRadius)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	if len(matches) > n {
		matches = matches[:n]
	}
	return matches, nil
}
