package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationKey(t *testing.T) {
	assert.Equal(t, "bob:item-1", ConversationKey("bob", "item-1"))
	assert.Equal(t, "bob:general", ConversationKey("bob", ""))
	assert.Equal(t, "bob:general", ConversationKey("bob", GeneralItemID))
}

func TestIsUnreadFor(t *testing.T) {
	m := &Message{SenderID: "alice", ReceiverID: "bob", Read: false}

	assert.True(t, m.IsUnreadFor("bob"))
	assert.False(t, m.IsUnreadFor("alice"), "own outgoing message never counts as unread")

	m.Read = true
	assert.False(t, m.IsUnreadFor("bob"))
}

func TestDisplayNameFallbacks(t *testing.T) {
	assert.Equal(t, "Alice", (&User{Name: "Alice", Email: "a@example.com"}).DisplayName())
	assert.Equal(t, "alice", (&User{Email: "alice@example.com"}).DisplayName())
	assert.Equal(t, "Unknown user", (&User{}).DisplayName())
}
