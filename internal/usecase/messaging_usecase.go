package usecase

import (
	"context"
	"encoding/json"
	"log"

	"reclaim/internal/domain/entity"
	"reclaim/internal/domain/repository"
	"reclaim/internal/infrastructure/eventbus"
	"reclaim/internal/infrastructure/ratelimit"
	ws "reclaim/internal/infrastructure/websocket"
	"reclaim/pkg/errors"
)

type MessagingUseCase struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	itemRepo    repository.ItemRepository
	bus         *eventbus.Bus
	wsManager   *ws.Manager
	rateLimiter *ratelimit.RateLimiter
	nameCache   *ProfileNameCache
}

func NewMessagingUseCase(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	bus *eventbus.Bus,
	wsManager *ws.Manager,
) *MessagingUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &MessagingUseCase{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		itemRepo:    itemRepo,
		bus:         bus,
		wsManager:   wsManager,
		rateLimiter: rateLimiter,
		nameCache:   NewProfileNameCache(userRepo, bus),
	}
}

type SendMessageInput struct {
	ReceiverID string
	ItemID     string
	Content    string
	PhotoURL   string
	ReplyToID  string
}

// validateSend runs synchronously, before any I/O is attempted.
func validateSend(senderID string, input SendMessageInput) error {
	if input.ReceiverID == "" {
		return errors.Validation("receiver_id is required", nil)
	}
	if senderID == input.ReceiverID {
		return errors.Validation("You cannot send a message to yourself", nil)
	}
	if input.Content == "" && input.PhotoURL == "" {
		return errors.Validation("Message needs text content or a photo", nil)
	}
	return nil
}

func (uc *MessagingUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*entity.Message, error) {
	allowed, waitTime := uc.rateLimiter.Allow(senderID, "send_message")
	if !allowed {
		log.Printf("SendMessage Rate Limited: User %s must wait %v", senderID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before sending another message", waitTime)
	}

	if err := validateSend(senderID, input); err != nil {
		return nil, err
	}

	message := &entity.Message{
		SenderID:   senderID,
		ReceiverID: input.ReceiverID,
		ItemID:     input.ItemID,
		Content:    input.Content,
		PhotoURL:   input.PhotoURL,
		ReplyToID:  input.ReplyToID,
		Read:       false,
	}

	if err := uc.messageRepo.Create(ctx, message); err != nil {
		log.Printf("SendMessage Error: Failed to persist message from %s to %s: %v", senderID, input.ReceiverID, err)
		return nil, err
	}

	uc.bus.Publish(eventbus.Event{Kind: eventbus.NewMessage})
	uc.pushToUser(input.ReceiverID, map[string]interface{}{
		"type":       "new_message",
		"message_id": message.ID,
		"sender_id":  senderID,
		"item_id":    input.ItemID,
	})

	return message, nil
}

// Inbox returns the user's conversation list, display-enriched. Name lookup
// failures degrade to a placeholder label and never fail the call.
func (uc *MessagingUseCase) Inbox(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	messages, err := uc.messageRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("Inbox Error: Failed to list messages for user %s: %v", userID, err)
		return nil, err
	}

	conversations := BuildConversations(messages, userID)

	ids := make([]string, 0, len(conversations))
	for _, conv := range conversations {
		ids = append(ids, conv.CounterpartyID)
	}
	names := uc.nameCache.Lookup(ctx, ids)
	for _, conv := range conversations {
		conv.CounterpartyName = names[conv.CounterpartyID]
	}

	return conversations, nil
}

// OpenConversation marks every unread message in one bucket as read. Each
// message is persisted individually: the successful subset commits even when
// others fail, and the failed ids are reported so the unread counter is
// never silently under-counted. Opening a bucket with nothing unread is a
// no-op with no writes and no event.
func (uc *MessagingUseCase) OpenConversation(ctx context.Context, userID, counterpartyID, itemID string) (int, error) {
	messages, err := uc.messageRepo.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	key := entity.ConversationKey(counterpartyID, itemID)
	var unread []*entity.Message
	for _, msg := range messages {
		other := msg.SenderID
		if msg.SenderID == userID {
			other = msg.ReceiverID
		}
		if entity.ConversationKey(other, msg.ItemID) == key && msg.IsUnreadFor(userID) {
			unread = append(unread, msg)
		}
	}

	if len(unread) == 0 {
		return 0, nil
	}

	var failedIDs []string
	var firstErr error
	for _, msg := range unread {
		if err := uc.messageRepo.MarkRead(ctx, msg.ID); err != nil {
			log.Printf("OpenConversation Error: Failed to mark message %s as read: %v", msg.ID, err)
			failedIDs = append(failedIDs, msg.ID)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	committed := len(unread) - len(failedIDs)
	if committed > 0 {
		uc.bus.Publish(eventbus.Event{Kind: eventbus.MessagesRead})
		uc.pushToUser(counterpartyID, map[string]interface{}{
			"type":      "messages_read",
			"reader_id": userID,
			"item_id":   itemID,
		})
	}

	if len(failedIDs) > 0 {
		return committed, errors.PartialReadFailure(failedIDs, firstErr)
	}

	return committed, nil
}

// MarkMessageRead marks a single message as read. Marking an already-read
// message is a no-op, not an error.
func (uc *MessagingUseCase) MarkMessageRead(ctx context.Context, userID, messageID string) error {
	message, err := uc.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.ReceiverID != userID {
		return errors.Forbidden("Only the receiver can mark a message as read", nil)
	}
	if message.Read {
		return nil
	}

	if err := uc.messageRepo.MarkRead(ctx, messageID); err != nil {
		return err
	}

	uc.bus.Publish(eventbus.Event{Kind: eventbus.MessagesRead})
	return nil
}

// UnreadTotal reports the persisted unread count across all conversations.
func (uc *MessagingUseCase) UnreadTotal(ctx context.Context, userID string) (int64, error) {
	return uc.messageRepo.CountUnread(ctx, userID)
}

func (uc *MessagingUseCase) pushToUser(userID string, payload map[string]interface{}) {
	if uc.wsManager == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	uc.wsManager.SendToUser(userID, data)
}
