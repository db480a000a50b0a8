package dto

import "github.com/noah-isme/wayplan-api/internal/models"

// CreateTripRequest payload for starting a new trip. Days seeds that many
// empty itinerary days.
type CreateTripRequest struct {
	Name      string  `json:"name" validate:"required"`
	StartDate string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	Travelers int     `json:"travelers" validate:"omitempty,min=1"`
	Budget    float64 `json:"budget" validate:"omitempty,min=0"`
	Days      int     `json:"days" validate:"omitempty,min=1,max=60"`
}

// UpdateTripRequest partial update of trip metadata. The itinerary itself is
// edited through the itinerary endpoints.
type UpdateTripRequest struct {
	Name      *string  `json:"name" validate:"omitempty,min=1"`
	StartDate *string  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	Travelers *int     `json:"travelers" validate:"omitempty,min=1"`
	Budget    *float64 `json:"budget" validate:"omitempty,min=0"`
}

// TripListResponse wraps a page of trips.
type TripListResponse struct {
	Trips      []models.Trip     `json:"trips"`
	Pagination models.Pagination `json:"pagination"`
}
