package usecase

import (
	"context"
	"sync"
	"time"

	"reclaim/internal/domain/repository"
	"reclaim/internal/infrastructure/eventbus"
	"reclaim/pkg/logger"
)

// UnreadCounter maintains the unread-message badge for whoever is currently
// signed in. It refreshes on an interval and whenever read state or new
// traffic is announced on the bus, always by querying the persisted counts
// rather than adjusting locally.
//
// Refreshes coalesce: while one fetch is in flight, any number of further
// triggers collapse into at most one queued follow-up. A fetch failure keeps
// the previous count rather than zeroing the badge.
type UnreadCounter struct {
	messageRepo repository.MessageRepository
	bus         *eventbus.Bus
	interval    time.Duration

	// CurrentUserFunc reports the signed-in user id, empty when nobody is.
	CurrentUserFunc func() string

	// OnChange, when set, runs with the new badge value whenever a refresh
	// lands a different count. Called outside the counter's lock.
	OnChange func(count int)

	mu       sync.Mutex
	count    int
	fetching bool
	queued   bool

	stop        chan struct{}
	stopOnce    sync.Once
	unsubscribe []func()
}

func NewUnreadCounter(messageRepo repository.MessageRepository, bus *eventbus.Bus, interval time.Duration, currentUser func() string) *UnreadCounter {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &UnreadCounter{
		messageRepo:     messageRepo,
		bus:             bus,
		interval:        interval,
		CurrentUserFunc: currentUser,
		stop:            make(chan struct{}),
	}
}

// Start subscribes to the bus and begins the periodic refresh. An immediate
// refresh seeds the badge.
func (c *UnreadCounter) Start(ctx context.Context) {
	if c.bus != nil {
		c.unsubscribe = append(c.unsubscribe,
			c.bus.Subscribe(eventbus.MessagesRead, func(eventbus.Event) { c.Trigger(ctx) }),
			c.bus.Subscribe(eventbus.NewMessage, func(eventbus.Event) { c.Trigger(ctx) }),
		)
	}

	c.Trigger(ctx)

	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.Trigger(ctx)
			case <-c.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (c *UnreadCounter) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
		for _, unsub := range c.unsubscribe {
			unsub()
		}
		c.unsubscribe = nil
	})
}

// Trigger requests a refresh. It returns immediately; the fetch runs on its
// own goroutine. Triggers arriving while a fetch is in flight fold into one
// queued follow-up.
func (c *UnreadCounter) Trigger(ctx context.Context) {
	c.mu.Lock()
	if c.fetching {
		c.queued = true
		c.mu.Unlock()
		return
	}
	c.fetching = true
	c.mu.Unlock()

	go c.fetch(ctx)
}

func (c *UnreadCounter) fetch(ctx context.Context) {
	for {
		userID := ""
		if c.CurrentUserFunc != nil {
			userID = c.CurrentUserFunc()
		}

		var changed bool
		if userID == "" {
			c.mu.Lock()
			changed = c.count != 0
			c.count = 0
		} else {
			count, err := c.messageRepo.CountUnread(ctx, userID)
			c.mu.Lock()
			if err != nil {
				logger.Error("UnreadCounter: refresh failed for user %s: %v", userID, err)
			} else {
				changed = c.count != int(count)
				c.count = int(count)
			}
		}
		newCount := c.count

		if !c.queued {
			c.fetching = false
			c.mu.Unlock()
			if changed && c.OnChange != nil {
				c.OnChange(newCount)
			}
			return
		}
		c.queued = false
		c.mu.Unlock()
		if changed && c.OnChange != nil {
			c.OnChange(newCount)
		}
	}
}

// Count returns the last known badge value.
func (c *UnreadCounter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}
