package geogrid

import "errors"

// MaxFrontierRings caps unbounded frontier expansion. Past this many rings
// the expansion reports exhaustion instead of looping forever.
const MaxFrontierRings = 5000

// ErrExpansionExhausted is returned by Frontier.Next once the ring cap is
// reached. It signals that a query could not be satisfied within the cap,
// which is distinct from a legitimately empty result.
var ErrExpansionExhausted = errors.New("geogrid: frontier expansion exhausted")

// Frontier enumerates concentric rings of cells around an origin cell. Ring 0
// is the origin itself; ring i holds the cells adjacent to ring i-1 that were
// not reached before. The interior is the union of all rings emitted so far.
type Frontier struct {
	interior map[string]struct{}
	ring     []string
	step     int
	maxRings int
}

// NewFrontier starts an expansion at the given cell.
func NewFrontier(cell string) *Frontier {
	return &Frontier{
		interior: map[string]struct{}{cell: {}},
		ring:     []string{cell},
		maxRings: MaxFrontierRings,
	}
}

// Next emits the next ring. The first call returns ring 0. Once the ring cap
// is exceeded it returns ErrExpansionExhausted on every subsequent call.
func (f *Frontier) Next() ([]string, error) {
	if f.step > f.maxRings {
		return nil, ErrExpansionExhausted
	}

	if f.step > 0 {
		f.ring = f.advance()
	}
	f.step++

	return f.ring, nil
}

// advance computes the next ring from the current one and folds it into the
// interior.
func (f *Frontier) advance() []string {
	var next []string
	for _, cell := range f.ring {
		for _, adj := range Neighbors(cell) {
			if _, seen := f.interior[adj]; seen {
				continue
			}
			f.interior[adj] = struct{}{}
			next = append(next, adj)
		}
	}
	return next
}

// Rings returns the first n rings (n >= 1, including ring 0) around a cell.
func Rings(cell string, n int) [][]string {
	f := NewFrontier(cell)

	rings := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		ring, err := f.Next()
		if err != nil {
			break
		}
		rings = append(rings, ring)
	}
	return rings
}
