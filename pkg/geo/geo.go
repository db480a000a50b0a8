// Package geo provides the coarse geographic arithmetic used for ordering
// itinerary stops: haversine distances, greedy proximity clustering and
// city-scale travel time estimates. All of it is deliberately approximate.
package geo

import (
	"math"
	"sort"

	"go.uber.org/zap"
)

const (
	earthRadiusKm = 6371.0

	walkingSpeedKmh = 5.0
	drivingSpeedKmh = 30.0
)

// Point is a coordinate pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the point lies inside the WGS84 coordinate ranges.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Calculator performs distance math over points. Invalid coordinates are
// logged and treated as distance 0 rather than failing the caller.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator constructs a calculator.
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// Distance returns the haversine great-circle distance in kilometres,
// rounded to one decimal place.
func (c *Calculator) Distance(a, b Point) float64 {
	if !a.Valid() || !b.Valid() {
		c.logger.Warn("distance requested for out-of-range coordinates",
			zap.Float64("lat1", a.Lat), zap.Float64("lng1", a.Lng),
			zap.Float64("lat2", b.Lat), zap.Float64("lng2", b.Lng),
		)
		return 0
	}

	latDelta := radians(b.Lat - a.Lat)
	lngDelta := radians(b.Lng - a.Lng)

	h := math.Sin(latDelta/2)*math.Sin(latDelta/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*
			math.Sin(lngDelta/2)*math.Sin(lngDelta/2)
	d := 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return math.Round(d*10) / 10
}

// RouteDistance sums the consecutive-pair distances along the given points.
func (c *Calculator) RouteDistance(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < len(points)-1; i++ {
		total += c.Distance(points[i], points[i+1])
	}
	return math.Round(total*10) / 10
}

// Nearest scans candidates linearly and returns the closest one to ref along
// with its distance. The first candidate wins ties. ok is false when the
// candidate list is empty.
func (c *Calculator) Nearest(ref Point, candidates []Point) (Point, float64, bool) {
	if len(candidates) == 0 {
		return Point{}, 0, false
	}
	best := candidates[0]
	bestDist := c.Distance(ref, best)
	for _, candidate := range candidates[1:] {
		if d := c.Distance(ref, candidate); d < bestDist {
			best = candidate
			bestDist = d
		}
	}
	return best, bestDist, true
}

// GreedyClusters groups points by single-pass greedy proximity: each
// unvisited point seeds a cluster and pulls in every other unvisited point
// within thresholdKm of the seed. Membership is measured from the seed only,
// so chains of nearby points are not merged transitively. This is a cheap
// approximation, not hierarchical clustering.
func (c *Calculator) GreedyClusters(points []Point, thresholdKm float64) [][]Point {
	visited := make([]bool, len(points))
	var clusters [][]Point

	for i, seed := range points {
		if visited[i] {
			continue
		}
		visited[i] = true
		cluster := []Point{seed}
		for j := i + 1; j < len(points); j++ {
			if visited[j] {
				continue
			}
			if c.Distance(seed, points[j]) <= thresholdKm {
				visited[j] = true
				cluster = append(cluster, points[j])
			}
		}
		clusters = append(clusters, cluster)
	}
	return clusters
}

// SortByProximity returns the points stably sorted by ascending distance to
// ref. The input slice is not modified.
func (c *Calculator) SortByProximity(ref Point, points []Point) []Point {
	type measured struct {
		point Point
		dist  float64
	}
	entries := make([]measured, len(points))
	for i, p := range points {
		entries[i] = measured{point: p, dist: c.Distance(ref, p)}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].dist < entries[j].dist
	})

	sorted := make([]Point, len(entries))
	for i, e := range entries {
		sorted[i] = e.point
	}
	return sorted
}

// Centroid returns the arithmetic mean of the coordinates. Good enough at
// city scale; not a spherical centroid. ok is false for an empty input.
func (c *Calculator) Centroid(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	var latSum, lngSum float64
	for _, p := range points {
		latSum += p.Lat
		lngSum += p.Lng
	}
	n := float64(len(points))
	return Point{Lat: latSum / n, Lng: lngSum / n}, true
}

// WalkingMinutes estimates walking time for the distance at 5 km/h.
func (c *Calculator) WalkingMinutes(km float64) int {
	return int(math.Round(km / walkingSpeedKmh * 60))
}

// DrivingMinutes estimates city driving time for the distance at 30 km/h.
func (c *Calculator) DrivingMinutes(km float64) int {
	return int(math.Round(km / drivingSpeedKmh * 60))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
