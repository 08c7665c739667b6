package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"reclaim/internal/domain/entity"
	"reclaim/internal/domain/repository"
	"reclaim/internal/infrastructure/eventbus"
	"reclaim/pkg/errors"
	"reclaim/pkg/logger"
)

// OutgoingState tracks a locally-sent message that may not have reached the
// backend yet.
type OutgoingState int

const (
	OutgoingPending OutgoingState = iota
	OutgoingConfirmed
	OutgoingFailed
)

type outgoingMessage struct {
	message *entity.Message
	state   OutgoingState
}

// InboxSession is the client-side view of one user's inbox. It owns a
// snapshot of the persisted transcript, an optimistic outbox for in-flight
// sends, and a polling loop that refreshes the snapshot. All state is
// guarded by a single mutex; the session is safe for concurrent use.
type InboxSession struct {
	userID      string
	messageRepo repository.MessageRepository
	bus         *eventbus.Bus
	interval    time.Duration

	mu       sync.Mutex
	snapshot []*entity.Message
	known    map[string]bool
	pending  map[string]*outgoingMessage

	// ids this session persisted itself that no fetch has carried yet; a
	// refresh keeps them in the snapshot so a stale fetch cannot drop a
	// just-sent message.
	unconfirmed map[string]bool

	stop     chan struct{}
	stopOnce sync.Once
}

func NewInboxSession(userID string, messageRepo repository.MessageRepository, bus *eventbus.Bus, interval time.Duration) *InboxSession {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &InboxSession{
		userID:      userID,
		messageRepo: messageRepo,
		bus:         bus,
		interval:    interval,
		known:       make(map[string]bool),
		pending:     make(map[string]*outgoingMessage),
		unconfirmed: make(map[string]bool),
		stop:        make(chan struct{}),
	}
}

// Start runs the polling loop until Stop is called or ctx is cancelled. An
// initial refresh runs immediately so the first tick is not a blank screen.
func (s *InboxSession) Start(ctx context.Context) {
	go func() {
		s.Refresh(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Refresh(ctx)
			case <-s.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (s *InboxSession) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

// Refresh fetches the persisted transcript and swaps it in only when it
// differs from the current snapshot. Difference is judged on the (id, read)
// pairs: a fetch that brings nothing new is discarded without touching state.
// Messages addressed to this user and not seen before raise a NewMessage
// event, which is how a badge elsewhere in the process hears about traffic
// that arrived via another device.
func (s *InboxSession) Refresh(ctx context.Context) {
	messages, err := s.messageRepo.ListByUser(ctx, s.userID)
	if err != nil {
		logger.Error("InboxSession: refresh failed for user %s: %v", s.userID, err)
		return
	}

	s.mu.Lock()
	merged := s.mergeOwnSends(messages)
	if !s.snapshotChanged(merged) {
		s.mu.Unlock()
		return
	}

	var arrived int
	for _, msg := range merged {
		if !s.known[msg.ID] {
			s.known[msg.ID] = true
			if msg.ReceiverID == s.userID {
				arrived++
			}
		}
	}
	s.snapshot = merged
	s.mu.Unlock()

	if arrived > 0 && s.bus != nil {
		s.bus.Publish(eventbus.Event{Kind: eventbus.NewMessage})
	}
}

// mergeOwnSends re-appends messages this session persisted itself when a
// fetch issued before their commit does not carry them yet. Once a fetch
// includes such an id the entry is served from the fetch alone. Caller holds
// the mutex.
func (s *InboxSession) mergeOwnSends(fetched []*entity.Message) []*entity.Message {
	if len(s.unconfirmed) == 0 {
		return fetched
	}

	seen := make(map[string]bool, len(fetched))
	for _, msg := range fetched {
		seen[msg.ID] = true
	}
	for id := range s.unconfirmed {
		if seen[id] {
			delete(s.unconfirmed, id)
		}
	}

	for _, msg := range s.snapshot {
		if s.unconfirmed[msg.ID] && !seen[msg.ID] {
			fetched = append(fetched, msg)
		}
	}
	return fetched
}

func (s *InboxSession) snapshotChanged(fetched []*entity.Message) bool {
	if len(fetched) != len(s.snapshot) {
		return true
	}
	current := make(map[string]bool, len(s.snapshot))
	for _, msg := range s.snapshot {
		current[msg.ID] = msg.Read
	}
	for _, msg := range fetched {
		read, ok := current[msg.ID]
		if !ok || read != msg.Read {
			return true
		}
	}
	return false
}

// Send persists a message while keeping an optimistic local copy visible.
// The local copy carries a temporary id and is replaced by the persisted
// message on success; the persisted id is marked known so the next poll does
// not surface it as a duplicate arrival. On failure the local copy is
// removed and the error returned to the caller.
func (s *InboxSession) Send(ctx context.Context, input SendMessageInput) (*entity.Message, error) {
	if err := validateSend(s.userID, input); err != nil {
		return nil, err
	}

	localID := "local-" + uuid.New().String()
	local := &entity.Message{
		ID:         localID,
		SenderID:   s.userID,
		ReceiverID: input.ReceiverID,
		ItemID:     input.ItemID,
		Content:    input.Content,
		PhotoURL:   input.PhotoURL,
		ReplyToID:  input.ReplyToID,
		CreatedAt:  time.Now(),
	}

	s.mu.Lock()
	s.pending[localID] = &outgoingMessage{message: local, state: OutgoingPending}
	s.mu.Unlock()

	persisted := &entity.Message{
		SenderID:   s.userID,
		ReceiverID: input.ReceiverID,
		ItemID:     input.ItemID,
		Content:    input.Content,
		PhotoURL:   input.PhotoURL,
		ReplyToID:  input.ReplyToID,
	}
	err := s.messageRepo.Create(ctx, persisted)

	s.mu.Lock()
	if err != nil {
		delete(s.pending, localID)
		s.mu.Unlock()
		return nil, err
	}

	delete(s.pending, localID)
	// A refresh racing the commit may have installed the persisted message
	// already; appending again would double it in the transcript.
	if !s.known[persisted.ID] {
		s.known[persisted.ID] = true
		s.unconfirmed[persisted.ID] = true
		s.snapshot = append(s.snapshot, persisted)
	}
	s.mu.Unlock()

	return persisted, nil
}

// OpenConversation flips the unread messages of one bucket to read, locally
// first so the reader sees the effect at once, then message by message in
// the backend. Flips that fail to persist are reverted and their ids
// reported; the ones that succeeded stay committed.
func (s *InboxSession) OpenConversation(ctx context.Context, counterpartyID, itemID string) error {
	key := entity.ConversationKey(counterpartyID, itemID)

	s.mu.Lock()
	var flipped []*entity.Message
	for _, msg := range s.snapshot {
		other := msg.SenderID
		if msg.SenderID == s.userID {
			other = msg.ReceiverID
		}
		if entity.ConversationKey(other, msg.ItemID) == key && msg.IsUnreadFor(s.userID) {
			now := time.Now()
			msg.Read = true
			msg.ReadAt = &now
			flipped = append(flipped, msg)
		}
	}
	s.mu.Unlock()

	if len(flipped) == 0 {
		return nil
	}

	var failedIDs []string
	var firstErr error
	for _, msg := range flipped {
		if err := s.messageRepo.MarkRead(ctx, msg.ID); err != nil {
			failedIDs = append(failedIDs, msg.ID)
			if firstErr == nil {
				firstErr = err
			}
			s.mu.Lock()
			msg.Read = false
			msg.ReadAt = nil
			s.mu.Unlock()
		}
	}

	if len(flipped) > len(failedIDs) && s.bus != nil {
		s.bus.Publish(eventbus.Event{Kind: eventbus.MessagesRead})
	}

	if len(failedIDs) > 0 {
		return errors.PartialReadFailure(failedIDs, firstErr)
	}
	return nil
}

// Conversations merges the persisted snapshot with the optimistic outbox and
// aggregates the result into the bucketed inbox view.
func (s *InboxSession) Conversations() []*entity.Conversation {
	s.mu.Lock()
	merged := make([]*entity.Message, 0, len(s.snapshot)+len(s.pending))
	merged = append(merged, s.snapshot...)
	for _, entry := range s.pending {
		if entry.state != OutgoingFailed {
			merged = append(merged, entry.message)
		}
	}
	s.mu.Unlock()

	return BuildConversations(merged, s.userID)
}

// UnreadCount reports the unread total across the current snapshot without
// touching the backend.
func (s *InboxSession) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, msg := range s.snapshot {
		if msg.IsUnreadFor(s.userID) {
			count++
		}
	}
	return count
}
