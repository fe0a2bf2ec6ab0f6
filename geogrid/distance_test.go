package geogrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	ory := Point{Lat: 48.72, Lng: 2.359}
	cdg := Point{Lat: 48.75, Lng: 2.361}

	assert.InDelta(t, 3.33, Distance(ory, cdg), 0.01)
	assert.Equal(t, Distance(ory, cdg), Distance(cdg, ory))
	assert.Equal(t, 0.0, Distance(ory, ory))
}

func TestDistanceLongHaul(t *testing.T) {
	ory := Point{Lat: 48.72, Lng: 2.359}
	jfk := Point{Lat: 40.64, Lng: -73.78}

	// Paris to New York is roughly 5830km.
	assert.InDelta(t, 5830, Distance(ory, jfk), 50)
}
