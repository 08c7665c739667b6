package entity

import "time"

const (
	SightingStatusPending   = "pending"
	SightingStatusConfirmed = "confirmed"
	SightingStatusDiscarded = "discarded"
)

// Sighting is a report that someone has seen a listed item.
type Sighting struct {
	ID          string    `json:"id" firestore:"id"`
	ItemID      string    `json:"item_id" firestore:"itemId"`
	ReporterID  string    `json:"reporter_id" firestore:"reporterId"`
	Location    string    `json:"location" firestore:"location"`
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	ContactInfo string    `json:"contact_info,omitempty" firestore:"contactInfo,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty" firestore:"photoUrl,omitempty"`
	Status      string    `json:"status" firestore:"status"` // "pending", "confirmed", "discarded"
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}
