package dto

import "github.com/noah-isme/wayplan-api/internal/models"

// AddItemRequest payload for appending an item to a day. The day is created
// on demand when it does not exist yet.
type AddItemRequest struct {
	Day      int      `json:"day" validate:"required,min=1"`
	Title    string   `json:"title" validate:"required"`
	Type     string   `json:"type" validate:"required"`
	Time     string   `json:"time"`
	Duration string   `json:"duration"`
	Cost     *float64 `json:"cost" validate:"omitempty,min=0"`
	Status   string   `json:"status"`
	Lat      *float64 `json:"location_lat" validate:"omitempty,min=-90,max=90"`
	Lng      *float64 `json:"location_lng" validate:"omitempty,min=-180,max=180"`
	Notes    string   `json:"notes"`
}

// Item builds the model the store will assign an id to.
func (r AddItemRequest) Item() models.TripItem {
	status := models.ItemStatus(r.Status)
	return models.TripItem{
		Title:    r.Title,
		Type:     models.ItemType(r.Type),
		Time:     r.Time,
		Duration: r.Duration,
		Cost:     r.Cost,
		Status:   status,
		Lat:      r.Lat,
		Lng:      r.Lng,
		Notes:    r.Notes,
	}
}

// UpdateItemRequest partial update of an item; absent fields keep their value.
type UpdateItemRequest struct {
	Title    *string  `json:"title"`
	Type     *string  `json:"type"`
	Time     *string  `json:"time"`
	Duration *string  `json:"duration"`
	Cost     *float64 `json:"cost" validate:"omitempty,min=0"`
	Status   *string  `json:"status"`
	Lat      *float64 `json:"location_lat" validate:"omitempty,min=-90,max=90"`
	Lng      *float64 `json:"location_lng" validate:"omitempty,min=-180,max=180"`
	Notes    *string  `json:"notes"`
}

// Patch converts the request into a model patch.
func (r UpdateItemRequest) Patch() models.ItemPatch {
	patch := models.ItemPatch{
		Title:    r.Title,
		Time:     r.Time,
		Duration: r.Duration,
		Cost:     r.Cost,
		Lat:      r.Lat,
		Lng:      r.Lng,
		Notes:    r.Notes,
	}
	if r.Type != nil {
		t := models.ItemType(*r.Type)
		patch.Type = &t
	}
	if r.Status != nil {
		s := models.ItemStatus(*r.Status)
		patch.Status = &s
	}
	return patch
}

// MoveItemRequest relocates an item to another day.
type MoveItemRequest struct {
	ToDay int `json:"toDay" validate:"required,min=1"`
}
