package usecase

import (
	"context"
	"log"
	"sort"
	"sync"

	"reclaim/internal/domain/entity"
	"reclaim/internal/domain/repository"
	"reclaim/internal/infrastructure/eventbus"
)

// BuildConversations groups a flat bidirectional message list into
// conversation threads from currentUserID's perspective. It is a pure
// function: buckets are recomputed from scratch on every call, so it stays
// correct after arbitrary external mutation (a message read on another
// device shows up on the next pass). Input messages are not mutated.
//
// Grouping is symmetric: the bucket key is the counterparty plus the item
// (or the general sentinel), so the same message lands in the same thread
// no matter which side of it is "me".
func BuildConversations(messages []*entity.Message, currentUserID string) []*entity.Conversation {
	buckets := make(map[string]*entity.Conversation)

	for _, msg := range messages {
		counterpartyID := msg.SenderID
		if msg.SenderID == currentUserID {
			counterpartyID = msg.ReceiverID
		}

		key := entity.ConversationKey(counterpartyID, msg.ItemID)
		conv, ok := buckets[key]
		if !ok {
			conv = &entity.Conversation{
				Key:            key,
				CounterpartyID: counterpartyID,
				ItemID:         msg.ItemID,
			}
			buckets[key] = conv
		}

		conv.Messages = append(conv.Messages, msg)
		if conv.LastMessage == nil || msg.CreatedAt.After(conv.LastMessage.CreatedAt) {
			conv.LastMessage = msg
		}
		if msg.IsUnreadFor(currentUserID) {
			conv.UnreadCount++
		}
	}

	conversations := make([]*entity.Conversation, 0, len(buckets))
	for _, conv := range buckets {
		// Stable sort keeps equal timestamps in input order across repeated
		// calls on the same snapshot.
		sort.SliceStable(conv.Messages, func(i, j int) bool {
			return conv.Messages[i].CreatedAt.Before(conv.Messages[j].CreatedAt)
		})
		conversations = append(conversations, conv)
	}

	sort.Slice(conversations, func(i, j int) bool {
		a, b := conversations[i], conversations[j]
		if a.LastMessage.CreatedAt.Equal(b.LastMessage.CreatedAt) {
			return a.Key < b.Key
		}
		return a.LastMessage.CreatedAt.After(b.LastMessage.CreatedAt)
	})

	return conversations
}

// TotalUnread sums per-conversation unread counts; it must always agree with
// the unread counter's direct query for the same state.
func TotalUnread(conversations []*entity.Conversation) int {
	total := 0
	for _, conv := range conversations {
		total += conv.UnreadCount
	}
	return total
}

const placeholderName = "Unknown user"

// ProfileNameCache is an explicit display-name cache owned by whoever runs
// the aggregation, not a package-level map. It is evicted wholesale when a
// profile-updated event fires.
type ProfileNameCache struct {
	userRepo repository.UserRepository

	mu    sync.Mutex
	names map[string]string
}

func NewProfileNameCache(userRepo repository.UserRepository, bus *eventbus.Bus) *ProfileNameCache {
	c := &ProfileNameCache{
		userRepo: userRepo,
		names:    make(map[string]string),
	}
	if bus != nil {
		bus.Subscribe(eventbus.ProfileUpdated, func(eventbus.Event) {
			c.Invalidate()
		})
	}
	return c
}

func (c *ProfileNameCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = make(map[string]string)
}

// Lookup resolves display names for the given user ids, batch-fetching only
// the ones the cache is missing. Lookup failure degrades to a placeholder
// label; it never blocks message delivery or read-state logic.
func (c *ProfileNameCache) Lookup(ctx context.Context, ids []string) map[string]string {
	result := make(map[string]string, len(ids))

	c.mu.Lock()
	var missing []string
	for _, id := range ids {
		if name, ok := c.names[id]; ok {
			result[id] = name
		} else {
			missing = append(missing, id)
		}
	}
	c.mu.Unlock()

	if len(missing) > 0 {
		users, err := c.userRepo.GetByIDs(ctx, missing)
		if err != nil {
			log.Printf("ProfileNameCache: batch lookup failed for %d ids: %v", len(missing), err)
			users = nil
		}

		c.mu.Lock()
		for _, id := range missing {
			if user, ok := users[id]; ok {
				c.names[id] = user.DisplayName()
				result[id] = c.names[id]
			} else {
				// Not cached: a later lookup may still find the profile.
				result[id] = placeholderName
			}
		}
		c.mu.Unlock()
	}

	return result
}
