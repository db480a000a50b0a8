package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/wayplan-api/internal/models"
	"github.com/noah-isme/wayplan-api/pkg/geo"
	"github.com/noah-isme/wayplan-api/pkg/timetext"
)

const noonMinutes = 12 * 60

// ScheduleConfig tunes the scheduling engine.
type ScheduleConfig struct {
	DayStart               string
	BufferMinutes          int
	DefaultDurationMinutes int
	MinGapMinutes          int
	ClusterRadiusKm        float64
}

// ScheduleService implements the itinerary consistency engine: conflict
// detection, the greedy proximity reorder, auto time assignment and the
// per-day schedule status projection. All methods are pure over the day
// snapshots they receive.
type ScheduleService struct {
	calc      *geo.Calculator
	logger    *zap.Logger
	dayStart  timetext.Clock
	buffer    int
	fallback  int
	minGap    int
	clusterKm float64
}

// NewScheduleService wires the engine.
func NewScheduleService(calc *geo.Calculator, logger *zap.Logger, cfg ScheduleConfig) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if calc == nil {
		calc = geo.NewCalculator(logger)
	}

	dayStart, ok := timetext.ParseClock(cfg.DayStart)
	if !ok {
		dayStart = timetext.Clock{Hour: 9}
	}
	if cfg.BufferMinutes <= 0 {
		cfg.BufferMinutes = 30
	}
	if cfg.DefaultDurationMinutes <= 0 {
		cfg.DefaultDurationMinutes = 60
	}
	if cfg.MinGapMinutes <= 0 {
		cfg.MinGapMinutes = 60
	}
	if cfg.ClusterRadiusKm <= 0 {
		cfg.ClusterRadiusKm = 2
	}

	return &ScheduleService{
		calc:      calc,
		logger:    logger,
		dayStart:  dayStart,
		buffer:    cfg.BufferMinutes,
		fallback:  cfg.DefaultDurationMinutes,
		minGap:    cfg.MinGapMinutes,
		clusterKm: cfg.ClusterRadiusKm,
	}
}

// scheduledSpan resolves an item's [start,end) window in minutes since
// midnight. ok is false when the item lacks a parseable time or carries no
// duration text at all; an unscheduled item can never conflict.
func (s *ScheduleService) scheduledSpan(item models.TripItem) (timetext.Span, bool) {
	if !timetext.Scheduled(item.Time) || item.Duration == "" {
		return timetext.Span{}, false
	}
	start, ok := timetext.ParseClock(item.Time)
	if !ok {
		return timetext.Span{}, false
	}
	minutes := timetext.ParseDurationText(item.Duration)
	if minutes == 0 {
		minutes = s.fallback
	}
	return timetext.Span{Start: start.Minutes(), End: start.Minutes() + minutes}, true
}

// CheckConflicts reports every overlapping pair of scheduled items, day by
// day. Pairs are compared once each (i<j).
func (s *ScheduleService) CheckConflicts(days []models.TripDay) []models.Conflict {
	var conflicts []models.Conflict
	for dayIdx, day := range days {
		type scheduled struct {
			item models.TripItem
			span timetext.Span
		}
		var windows []scheduled
		for _, item := range day.Items {
			if span, ok := s.scheduledSpan(item); ok {
				windows = append(windows, scheduled{item: item, span: span})
			}
		}

		for i := 0; i < len(windows); i++ {
			for j := i + 1; j < len(windows); j++ {
				a, b := windows[i], windows[j]
				if !timetext.Overlaps(a.span.Start, a.span.End, b.span.Start, b.span.End) {
					continue
				}
				conflicts = append(conflicts, models.Conflict{
					DayIndex:    dayIdx,
					FirstItemID: a.item.ID,
					FirstTitle:  a.item.Title,
					SecondID:    b.item.ID,
					SecondTitle: b.item.Title,
					Description: describeOverlap(a.item.Title, a.span, b.item.Title, b.span),
				})
			}
		}
	}
	return conflicts
}

func describeOverlap(title1 string, span1 timetext.Span, title2 string, span2 timetext.Span) string {
	return fmt.Sprintf("%s (%s - %s) overlaps %s (%s - %s)",
		title1,
		timetext.ClockFromMinutes(span1.Start).Format(timetext.Layout12),
		timetext.ClockFromMinutes(span1.End).Format(timetext.Layout12),
		title2,
		timetext.ClockFromMinutes(span2.Start).Format(timetext.Layout12),
		timetext.ClockFromMinutes(span2.End).Format(timetext.Layout12),
	)
}

// Optimize reorders each day's non-logistics items with a greedy
// nearest-neighbor pass over their coordinates, leaving logistics anchors
// in place: morning (or unscheduled) logistics stay first, afternoon and
// evening logistics stay last. Days with fewer than three non-logistics
// items are returned unchanged; the heuristic has no value at that size.
func (s *ScheduleService) Optimize(days []models.TripDay) []models.TripDay {
	out := make([]models.TripDay, len(days))
	for i, day := range days {
		out[i] = s.optimizeDay(day)
	}
	return out
}

func (s *ScheduleService) optimizeDay(day models.TripDay) models.TripDay {
	var anchorsFirst, anchorsLast, rest []models.TripItem
	for _, item := range day.Items {
		if item.Type != models.ItemTypeLogistics {
			rest = append(rest, item)
			continue
		}
		if start, ok := timetext.ParseClock(item.Time); ok && start.Minutes() >= noonMinutes {
			anchorsLast = append(anchorsLast, item)
		} else {
			anchorsFirst = append(anchorsFirst, item)
		}
	}

	if len(rest) < 3 {
		return day
	}

	routed := s.nearestNeighborOrder(rest)

	items := make([]models.TripItem, 0, len(day.Items))
	items = append(items, anchorsFirst...)
	items = append(items, routed...)
	items = append(items, anchorsLast...)
	day.Items = items
	return day
}

// nearestNeighborOrder greedily chains items with coordinates, starting
// from the first located item and always hopping to the closest unvisited
// one (lowest index wins ties). Items without coordinates keep their
// relative order and follow the routed ones. Deterministic by construction.
func (s *ScheduleService) nearestNeighborOrder(items []models.TripItem) []models.TripItem {
	var located, unlocated []models.TripItem
	for _, item := range items {
		if item.HasCoordinates() {
			located = append(located, item)
		} else {
			unlocated = append(unlocated, item)
		}
	}
	if len(located) < 2 {
		return items
	}

	visited := make([]bool, len(located))
	ordered := make([]models.TripItem, 0, len(located))

	current := 0
	visited[0] = true
	ordered = append(ordered, located[0])

	for len(ordered) < len(located) {
		best := -1
		bestDist := 0.0
		from := geo.Point{Lat: *located[current].Lat, Lng: *located[current].Lng}
		for i, candidate := range located {
			if visited[i] {
				continue
			}
			d := s.calc.Distance(from, geo.Point{Lat: *candidate.Lat, Lng: *candidate.Lng})
			if best < 0 || d < bestDist {
				best = i
				bestDist = d
			}
		}
		visited[best] = true
		ordered = append(ordered, located[best])
		current = best
	}

	return append(ordered, unlocated...)
}

// AutoSchedule assigns start times to a day's items in their current order:
// the first item starts at the configured day start, every later item at
// the previous item's end plus the travel buffer. Durations default when
// the item carries none. The result has no conflicts by construction.
func (s *ScheduleService) AutoSchedule(day models.TripDay) models.TripDay {
	items := make([]models.TripItem, len(day.Items))
	copy(items, day.Items)

	cursor := s.dayStart.Minutes()
	for i := range items {
		items[i].Time = timetext.ClockFromMinutes(cursor).Format(timetext.Layout12)
		minutes := timetext.ParseDurationText(items[i].Duration)
		if minutes == 0 {
			minutes = s.fallback
		}
		cursor += minutes + s.buffer
	}

	day.Items = items
	return day
}

// DayState projects the scheduling status of a single day. The states are
// derived, never stored.
func (s *ScheduleService) DayState(day models.TripDay) models.DayScheduleState {
	if len(day.Items) == 0 {
		return models.DayEmpty
	}

	scheduled := 0
	for _, item := range day.Items {
		if _, ok := s.scheduledSpan(item); ok {
			scheduled++
		}
	}

	switch {
	case scheduled == 0:
		return models.DayUnscheduled
	case scheduled < len(day.Items):
		return models.DayPartiallyScheduled
	}

	if len(s.CheckConflicts([]models.TripDay{day})) > 0 {
		return models.DayConflicted
	}
	return models.DayFullyScheduled
}

// FindGaps reports idle stretches of at least minGap minutes between a
// day's scheduled items. Items whose time fails to parse are silently
// dropped from the analysis. A non-positive minGap falls back to the
// configured default.
func (s *ScheduleService) FindGaps(day models.TripDay, minGap int) []models.ScheduleGap {
	if minGap <= 0 {
		minGap = s.minGap
	}

	var spans []timetext.Span
	for _, item := range day.Items {
		if !timetext.Scheduled(item.Time) {
			continue
		}
		start, ok := timetext.ParseClock(item.Time)
		if !ok {
			continue
		}
		minutes := timetext.ParseDurationText(item.Duration)
		if minutes == 0 {
			minutes = s.fallback
		}
		spans = append(spans, timetext.Span{Start: start.Minutes(), End: start.Minutes() + minutes})
	}

	raw := timetext.FindGaps(spans, minGap)
	gaps := make([]models.ScheduleGap, len(raw))
	for i, g := range raw {
		gaps[i] = models.ScheduleGap{
			Start:    timetext.ClockFromMinutes(g.Start).Format(timetext.Layout12),
			End:      timetext.ClockFromMinutes(g.End).Format(timetext.Layout12),
			Duration: timetext.FormatMinutes(g.Minutes),
		}
	}
	return gaps
}

// RouteSummary estimates the walking and driving effort of a day's located
// items in their current order. Areas counts proximity clusters at the
// configured radius, a rough "how spread out is this day" signal.
type RouteSummary struct {
	DistanceKm     float64 `json:"distance_km"`
	WalkingMinutes int     `json:"walking_minutes"`
	DrivingMinutes int     `json:"driving_minutes"`
	Stops          int     `json:"stops"`
	Areas          int     `json:"areas"`
}

// SummarizeRoute computes the consecutive travel distance across a day.
func (s *ScheduleService) SummarizeRoute(day models.TripDay) RouteSummary {
	var points []geo.Point
	for _, item := range day.Items {
		if item.HasCoordinates() {
			points = append(points, geo.Point{Lat: *item.Lat, Lng: *item.Lng})
		}
	}
	km := s.calc.RouteDistance(points)
	return RouteSummary{
		DistanceKm:     km,
		WalkingMinutes: s.calc.WalkingMinutes(km),
		DrivingMinutes: s.calc.DrivingMinutes(km),
		Stops:          len(points),
		Areas:          len(s.calc.GreedyClusters(points, s.clusterKm)),
	}
}
