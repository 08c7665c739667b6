package entity

import "time"

const (
	NotificationTypeSighting    = "sighting_reported"
	NotificationTypeRewardClaim = "reward_claim"
	NotificationTypeResolution  = "resolution_prompt"
)

// Notification is a persisted feed entry, distinct from the ephemeral
// in-process events the badge components react to. EmailSent is recorded for
// parity with the delivery pipeline, which lives outside this service.
type Notification struct {
	ID            string    `json:"id" firestore:"id"`
	UserID        string    `json:"user_id" firestore:"userId"`
	Type          string    `json:"type" firestore:"type"`
	Title         string    `json:"title" firestore:"title"`
	Message       string    `json:"message,omitempty" firestore:"message,omitempty"`
	ItemID        string    `json:"item_id,omitempty" firestore:"itemId,omitempty"`
	RelatedUserID string    `json:"related_user_id,omitempty" firestore:"relatedUserId,omitempty"`
	Read          bool      `json:"read" firestore:"read"`
	EmailSent     bool      `json:"email_sent" firestore:"emailSent"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
}
