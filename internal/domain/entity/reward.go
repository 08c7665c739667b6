package entity

import "time"

const (
	RewardStatusActive    = "active"
	RewardStatusCancelled = "cancelled"
	RewardStatusClaimed   = "claimed"

	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)

// Reward is a monetary reward offered on an item. Amount is a stored number
// only; no payment gateway exists.
type Reward struct {
	ID          string    `json:"id" firestore:"id"`
	ItemID      string    `json:"item_id" firestore:"itemId"`
	OwnerID     string    `json:"owner_id" firestore:"ownerId"`
	Amount      float64   `json:"amount" firestore:"amount"`
	Currency    string    `json:"currency" firestore:"currency"`
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	Status      string    `json:"status" firestore:"status"` // "active", "cancelled", "claimed"
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

type RewardClaim struct {
	ID         string    `json:"id" firestore:"id"`
	RewardID   string    `json:"reward_id" firestore:"rewardId"`
	ClaimantID string    `json:"claimant_id" firestore:"claimantId"`
	Message    string    `json:"message,omitempty" firestore:"message,omitempty"`
	Status     string    `json:"status" firestore:"status"` // "pending", "approved", "rejected"
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time `json:"updated_at" firestore:"updatedAt"`
}
