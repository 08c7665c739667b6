package entity

import "time"

const (
	ItemStatusLost     = "lost"
	ItemStatusFound    = "found"
	ItemStatusResolved = "resolved"
)

type Item struct {
	ID          string     `json:"id" firestore:"id"`
	OwnerID     string     `json:"owner_id" firestore:"ownerId"`
	Title       string     `json:"title" firestore:"title"`
	Description string     `json:"description,omitempty" firestore:"description,omitempty"`
	Category    string     `json:"category,omitempty" firestore:"category,omitempty"`
	Location    string     `json:"location,omitempty" firestore:"location,omitempty"`
	Status      string     `json:"status" firestore:"status"` // "lost", "found", "resolved"
	ResolvedAt  *time.Time `json:"resolved_at,omitempty" firestore:"resolvedAt,omitempty"`
	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
}

type ItemPhoto struct {
	ID        string    `json:"id" firestore:"id"`
	ItemID    string    `json:"item_id" firestore:"itemId"`
	URL       string    `json:"url" firestore:"url"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// ItemStatistics feeds the dashboard counters.
type ItemStatistics struct {
	Total    int64 `json:"total"`
	Lost     int64 `json:"lost"`
	Found    int64 `json:"found"`
	Resolved int64 `json:"resolved"`
}
