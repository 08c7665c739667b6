package entity

import "time"

// Message is a directed point-to-point communication unit. A message is
// immutable once created, except for Read/ReadAt which may only transition
// from unread to read, never back.
type Message struct {
	ID         string     `json:"id" firestore:"id"`
	SenderID   string     `json:"sender_id" firestore:"senderId"`
	ReceiverID string     `json:"receiver_id" firestore:"receiverId"`
	ItemID     string     `json:"item_id,omitempty" firestore:"itemId,omitempty"` // empty means the "general" conversation
	Content    string     `json:"content" firestore:"content"`
	PhotoURL   string     `json:"photo_url,omitempty" firestore:"photoUrl,omitempty"`
	ReplyToID  string     `json:"reply_to_id,omitempty" firestore:"replyToId,omitempty"`
	Read       bool       `json:"read" firestore:"read"`
	ReadAt     *time.Time `json:"read_at,omitempty" firestore:"readAt,omitempty"`
	CreatedAt  time.Time  `json:"created_at" firestore:"createdAt"` // server timestamp, authoritative ordering key
}

// IsUnreadFor reports whether the message is addressed to userID and has not
// been read yet.
func (m *Message) IsUnreadFor(userID string) bool {
	return m.ReceiverID == userID && !m.Read
}
