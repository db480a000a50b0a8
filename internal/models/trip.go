package models

import "time"

// ItemType classifies a trip item. The set is closed; callers cannot extend it.
type ItemType string

const (
	ItemTypeLogistics ItemType = "logistics"
	ItemTypeFood      ItemType = "food"
	ItemTypeActivity  ItemType = "activity"
	ItemTypeStay      ItemType = "stay"
)

// ValidItemType reports whether raw names one of the closed item types.
func ValidItemType(raw string) bool {
	switch ItemType(raw) {
	case ItemTypeLogistics, ItemTypeFood, ItemTypeActivity, ItemTypeStay:
		return true
	default:
		return false
	}
}

// ItemStatus tracks the booking state of an item.
type ItemStatus string

const (
	ItemStatusPlanned   ItemStatus = "planned"
	ItemStatusBooked    ItemStatus = "booked"
	ItemStatusConfirmed ItemStatus = "confirmed"
)

// ValidItemStatus reports whether raw names a known item status.
func ValidItemStatus(raw string) bool {
	switch ItemStatus(raw) {
	case ItemStatusPlanned, ItemStatusBooked, ItemStatusConfirmed:
		return true
	default:
		return false
	}
}

// TimeTBD is the sentinel a client may send instead of omitting a time.
const TimeTBD = "TBD"

// TripItem is one scheduled unit of activity within a day.
//
// Time and Duration are loose display strings ("10:00 AM", "2h 30m"); an
// empty Time or the TBD sentinel means the item is unscheduled. Cost and the
// coordinates are optional.
type TripItem struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Type     ItemType   `json:"type"`
	Time     string     `json:"time,omitempty"`
	Duration string     `json:"duration,omitempty"`
	Cost     *float64   `json:"cost,omitempty"`
	Status   ItemStatus `json:"status"`
	Lat      *float64   `json:"location_lat,omitempty"`
	Lng      *float64   `json:"location_lng,omitempty"`
	Notes    string     `json:"notes,omitempty"`
}

// HasCoordinates reports whether both coordinates are present.
func (i TripItem) HasCoordinates() bool {
	return i.Lat != nil && i.Lng != nil
}

// CostValue returns the cost, treating an absent cost as 0.
func (i TripItem) CostValue() float64 {
	if i.Cost == nil {
		return 0
	}
	return *i.Cost
}

// TripDay is one calendar day of the trip. Items is itinerary order, which
// is semantically meaningful; this is not a set.
type TripDay struct {
	Day   int        `json:"day"`
	Date  string     `json:"date"`
	Items []TripItem `json:"items"`
}

// TotalSpend sums the item costs for the day. Always recomputed, never cached.
func (d TripDay) TotalSpend() float64 {
	total := 0.0
	for _, item := range d.Items {
		total += item.CostValue()
	}
	return total
}

// Trip is the persisted aggregate: metadata plus the ordered day list.
type Trip struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	Travelers int       `db:"travelers" json:"travelers"`
	Budget    float64   `db:"budget" json:"budget"`
	Days      []TripDay `db:"-" json:"days"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ItemPatch carries a partial update for an item; nil fields are left alone.
type ItemPatch struct {
	Title    *string     `json:"title,omitempty"`
	Type     *ItemType   `json:"type,omitempty"`
	Time     *string     `json:"time,omitempty"`
	Duration *string     `json:"duration,omitempty"`
	Cost     *float64    `json:"cost,omitempty"`
	Status   *ItemStatus `json:"status,omitempty"`
	Lat      *float64    `json:"location_lat,omitempty"`
	Lng      *float64    `json:"location_lng,omitempty"`
	Notes    *string     `json:"notes,omitempty"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
