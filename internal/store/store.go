// Package store holds the authoritative in-memory itinerary state for a
// trip: an ordered list of days, each an ordered list of items.
//
// Every mutation replaces the day array wholesale and hands observers a
// fresh snapshot, so change detection is a pointer comparison for callers.
// Mutations come in two flavors: the plain methods absorb unknown day
// indices and item ids as silent no-ops and never corrupt visible state,
// while the Strict variants report the miss as a NotFound error.
package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/noah-isme/wayplan-api/internal/models"
	appErrors "github.com/noah-isme/wayplan-api/pkg/errors"
)

// Observer receives the new snapshot after every successful mutation.
type Observer func(days []models.TripDay)

// ItineraryStore is the single writer for a trip's days.
type ItineraryStore struct {
	mu        sync.RWMutex
	days      []models.TripDay
	observers []Observer
}

// New builds a store seeded with the given days. The input is copied.
func New(days []models.TripDay) *ItineraryStore {
	return &ItineraryStore{days: cloneDays(days)}
}

// Subscribe registers an observer for future mutations.
func (s *ItineraryStore) Subscribe(obs Observer) {
	if obs == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs)
}

// Snapshot returns a deep copy of the current days.
func (s *ItineraryStore) Snapshot() []models.TripDay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDays(s.days)
}

// Replace swaps in an externally produced day array (e.g. the output of a
// scheduling pass) and notifies observers.
func (s *ItineraryStore) Replace(days []models.TripDay) {
	s.mu.Lock()
	s.days = cloneDays(days)
	s.notifyLocked()
	s.mu.Unlock()
}

// EnsureDay grows the day list until index is addressable. Synthesized days
// get the next position-based number and a "Day N" placeholder label.
func (s *ItineraryStore) EnsureDay(index int) {
	if index < 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ensureDayLocked(index) {
		s.notifyLocked()
	}
}

func (s *ItineraryStore) ensureDayLocked(index int) bool {
	grown := false
	for len(s.days) <= index {
		n := len(s.days) + 1
		s.days = append(s.days, models.TripDay{
			Day:  n,
			Date: fmt.Sprintf("Day %d", n),
		})
		grown = true
	}
	return grown
}

// AddItem appends the item to the end of the day's list, assigning a fresh
// id. A missing day is synthesized first; the caller validates bounds if it
// wants to reject out-of-range writes.
func (s *ItineraryStore) AddItem(dayIndex int, item models.TripItem) models.TripItem {
	if dayIndex < 0 {
		return models.TripItem{}
	}

	item.ID = uuid.NewString()
	if item.Status == "" {
		item.Status = models.ItemStatusPlanned
	}

	s.mu.Lock()
	s.ensureDayLocked(dayIndex)
	day := s.days[dayIndex]
	day.Items = append(cloneItems(day.Items), item)
	s.days = replaceDay(s.days, dayIndex, day)
	s.notifyLocked()
	s.mu.Unlock()

	return item
}

// UpdateItem merges the patch into the matching item. Unknown day or item
// is a silent no-op.
func (s *ItineraryStore) UpdateItem(dayIndex int, itemID string, patch models.ItemPatch) {
	_ = s.UpdateItemStrict(dayIndex, itemID, patch)
}

// UpdateItemStrict merges the patch and reports a NotFound miss.
func (s *ItineraryStore) UpdateItemStrict(dayIndex int, itemID string, patch models.ItemPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dayIndex < 0 || dayIndex >= len(s.days) {
		return appErrors.ErrDayNotFound
	}
	day := s.days[dayIndex]
	items := cloneItems(day.Items)
	for i := range items {
		if items[i].ID != itemID {
			continue
		}
		applyPatch(&items[i], patch)
		day.Items = items
		s.days = replaceDay(s.days, dayIndex, day)
		s.notifyLocked()
		return nil
	}
	return appErrors.ErrItemNotFound
}

// DeleteItem removes the matching item; absent targets are ignored.
func (s *ItineraryStore) DeleteItem(dayIndex int, itemID string) {
	_ = s.DeleteItemStrict(dayIndex, itemID)
}

// DeleteItemStrict removes the matching item and reports a NotFound miss.
func (s *ItineraryStore) DeleteItemStrict(dayIndex int, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dayIndex < 0 || dayIndex >= len(s.days) {
		return appErrors.ErrDayNotFound
	}
	day := s.days[dayIndex]
	for i, item := range day.Items {
		if item.ID != itemID {
			continue
		}
		items := cloneItems(day.Items)
		day.Items = append(items[:i], items[i+1:]...)
		s.days = replaceDay(s.days, dayIndex, day)
		s.notifyLocked()
		return nil
	}
	return appErrors.ErrItemNotFound
}

// MoveItem relocates an item to the end of the target day's list. Position
// within the source list is not preserved; moving an item to its own day
// sends it to the end. Missing source, item or target is a silent no-op.
func (s *ItineraryStore) MoveItem(fromDayIndex, toDayIndex int, itemID string) {
	_ = s.MoveItemStrict(fromDayIndex, toDayIndex, itemID)
}

// MoveItemStrict relocates an item and reports a NotFound miss.
func (s *ItineraryStore) MoveItemStrict(fromDayIndex, toDayIndex int, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fromDayIndex < 0 || fromDayIndex >= len(s.days) ||
		toDayIndex < 0 || toDayIndex >= len(s.days) {
		return appErrors.ErrDayNotFound
	}

	source := s.days[fromDayIndex]
	idx := -1
	for i, item := range source.Items {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return appErrors.ErrItemNotFound
	}

	moved := source.Items[idx]
	sourceItems := cloneItems(source.Items)
	source.Items = append(sourceItems[:idx], sourceItems[idx+1:]...)
	s.days = replaceDay(s.days, fromDayIndex, source)

	target := s.days[toDayIndex]
	target.Items = append(cloneItems(target.Items), moved)
	s.days = replaceDay(s.days, toDayIndex, target)

	s.notifyLocked()
	return nil
}

// AddDay appends a new day numbered one past the current last day's number,
// which stays stable even after earlier days were removed.
func (s *ItineraryStore) AddDay() models.TripDay {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 1
	if len(s.days) > 0 {
		n = s.days[len(s.days)-1].Day + 1
	}
	day := models.TripDay{Day: n, Date: fmt.Sprintf("Day %d", n)}
	s.days = append(cloneDays(s.days), day)
	s.notifyLocked()
	return day
}

// RemoveDay splices out a day by position. Remaining days keep their
// numbers; gaps are tolerated.
func (s *ItineraryStore) RemoveDay(dayIndex int) {
	_ = s.RemoveDayStrict(dayIndex)
}

// RemoveDayStrict splices out a day and reports a NotFound miss.
func (s *ItineraryStore) RemoveDayStrict(dayIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dayIndex < 0 || dayIndex >= len(s.days) {
		return appErrors.ErrDayNotFound
	}
	days := cloneDays(s.days)
	s.days = append(days[:dayIndex], days[dayIndex+1:]...)
	s.notifyLocked()
	return nil
}

// notifyLocked hands every observer its own snapshot. Callers hold the lock.
func (s *ItineraryStore) notifyLocked() {
	if len(s.observers) == 0 {
		return
	}
	for _, obs := range s.observers {
		obs(cloneDays(s.days))
	}
}

func applyPatch(item *models.TripItem, patch models.ItemPatch) {
	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.Type != nil {
		item.Type = *patch.Type
	}
	if patch.Time != nil {
		item.Time = *patch.Time
	}
	if patch.Duration != nil {
		item.Duration = *patch.Duration
	}
	if patch.Cost != nil {
		cost := *patch.Cost
		item.Cost = &cost
	}
	if patch.Status != nil {
		item.Status = *patch.Status
	}
	if patch.Lat != nil {
		lat := *patch.Lat
		item.Lat = &lat
	}
	if patch.Lng != nil {
		lng := *patch.Lng
		item.Lng = &lng
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}
}

func replaceDay(days []models.TripDay, index int, day models.TripDay) []models.TripDay {
	next := make([]models.TripDay, len(days))
	copy(next, days)
	next[index] = day
	return next
}

func cloneDays(days []models.TripDay) []models.TripDay {
	if days == nil {
		return nil
	}
	out := make([]models.TripDay, len(days))
	for i, day := range days {
		day.Items = cloneItems(day.Items)
		out[i] = day
	}
	return out
}

func cloneItems(items []models.TripItem) []models.TripItem {
	if items == nil {
		return nil
	}
	out := make([]models.TripItem, len(items))
	for i, item := range items {
		if item.Cost != nil {
			cost := *item.Cost
			item.Cost = &cost
		}
		if item.Lat != nil {
			lat := *item.Lat
			item.Lat = &lat
		}
		if item.Lng != nil {
			lng := *item.Lng
			item.Lng = &lng
		}
		out[i] = item
	}
	return out
}
