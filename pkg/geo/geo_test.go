package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	paris  = Point{Lat: 48.8566, Lng: 2.3522}
	lyon   = Point{Lat: 45.7640, Lng: 4.8357}
	berlin = Point{Lat: 52.5200, Lng: 13.4050}
)

func newTestCalculator() *Calculator {
	return NewCalculator(zap.NewNop())
}

func TestDistanceSymmetryAndIdentity(t *testing.T) {
	calc := newTestCalculator()

	assert.Equal(t, calc.Distance(paris, lyon), calc.Distance(lyon, paris))
	assert.Equal(t, 0.0, calc.Distance(paris, paris))
}

func TestDistanceKnownPair(t *testing.T) {
	calc := newTestCalculator()

	// Paris to Lyon is roughly 390 km great-circle.
	d := calc.Distance(paris, lyon)
	assert.InDelta(t, 392, d, 5)
}

func TestDistanceInvalidCoordinatesReturnsZero(t *testing.T) {
	calc := newTestCalculator()

	assert.Equal(t, 0.0, calc.Distance(Point{Lat: 95, Lng: 0}, paris))
	assert.Equal(t, 0.0, calc.Distance(paris, Point{Lat: 0, Lng: 181}))
}

func TestRouteDistance(t *testing.T) {
	calc := newTestCalculator()

	assert.Equal(t, 0.0, calc.RouteDistance(nil))
	assert.Equal(t, 0.0, calc.RouteDistance([]Point{paris}))

	total := calc.RouteDistance([]Point{paris, lyon, berlin})
	assert.InDelta(t, calc.Distance(paris, lyon)+calc.Distance(lyon, berlin), total, 0.11)
}

func TestNearestFirstWinsTies(t *testing.T) {
	calc := newTestCalculator()

	_, _, ok := calc.Nearest(paris, nil)
	assert.False(t, ok)

	duplicate := lyon
	best, dist, ok := calc.Nearest(paris, []Point{lyon, duplicate, berlin})
	require.True(t, ok)
	assert.Equal(t, lyon, best)
	assert.Equal(t, calc.Distance(paris, lyon), dist)
}

func TestGreedyClustersAreSeedBased(t *testing.T) {
	calc := newTestCalculator()

	// Three points on the equator, each ~1.1 km from its neighbor. P2 is
	// within 1.5 km of P1 but P3 is not, so the seed-based pass leaves P3
	// in its own cluster even though P2-P3 is under the threshold.
	p1 := Point{Lat: 0, Lng: 0}
	p2 := Point{Lat: 0, Lng: 0.01}
	p3 := Point{Lat: 0, Lng: 0.02}

	clusters := calc.GreedyClusters([]Point{p1, p2, p3}, 1.5)
	require.Len(t, clusters, 2)
	assert.Equal(t, []Point{p1, p2}, clusters[0])
	assert.Equal(t, []Point{p3}, clusters[1])
}

func TestSortByProximityStable(t *testing.T) {
	calc := newTestCalculator()

	far := Point{Lat: 0, Lng: 1}
	near := Point{Lat: 0, Lng: 0.001}
	nearTwin := Point{Lat: 0, Lng: 0.001}

	sorted := calc.SortByProximity(Point{}, []Point{far, near, nearTwin})
	require.Len(t, sorted, 3)
	assert.Equal(t, near, sorted[0])
	assert.Equal(t, nearTwin, sorted[1])
	assert.Equal(t, far, sorted[2])
}

func TestCentroid(t *testing.T) {
	calc := newTestCalculator()

	_, ok := calc.Centroid(nil)
	assert.False(t, ok)

	centroid, ok := calc.Centroid([]Point{{Lat: 0, Lng: 0}, {Lat: 2, Lng: 4}})
	require.True(t, ok)
	assert.Equal(t, Point{Lat: 1, Lng: 2}, centroid)
}

func TestTravelTimeEstimates(t *testing.T) {
	calc := newTestCalculator()

	assert.Equal(t, 60, calc.WalkingMinutes(5))
	assert.Equal(t, 12, calc.WalkingMinutes(1))
	assert.Equal(t, 10, calc.DrivingMinutes(5))
	assert.Equal(t, 60, calc.DrivingMinutes(30))
}
