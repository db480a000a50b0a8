package dto

import "time"

// ExportArtifact describes a generated export file and the signed token
// needed to download it.
type ExportArtifact struct {
	ID        string    `json:"id"`
	TripID    string    `json:"tripId"`
	Format    string    `json:"format"`
	File      string    `json:"file"`
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
