package entity

// GeneralItemID is the bucket sentinel for messages that reference no item.
const GeneralItemID = "general"

// Conversation is derived, never persisted: the set of messages exchanged
// with one counterparty about one item (or the general bucket), from the
// viewing user's perspective. It is recomputed from the flat message list on
// every aggregation pass, so staleness is bounded by the polling interval.
type Conversation struct {
	Key              string     `json:"key"`
	CounterpartyID   string     `json:"counterparty_id"`
	CounterpartyName string     `json:"counterparty_name,omitempty"`
	ItemID           string     `json:"item_id,omitempty"`
	Messages         []*Message `json:"messages"` // ascending by CreatedAt
	LastMessage      *Message   `json:"last_message"`
	UnreadCount      int        `json:"unread_count"`
}

// ConversationKey builds the symmetric bucket key: the same message must land
// in the same bucket no matter which side of it is "me".
func ConversationKey(counterpartyID, itemID string) string {
	if itemID == "" {
		itemID = GeneralItemID
	}
	return counterpartyID + ":" + itemID
}
