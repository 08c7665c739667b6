package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"reclaim/internal/infrastructure/eventbus"
	"reclaim/pkg/errors"
)

func TestUnreadCounterCountsForSignedInUser(t *testing.T) {
	messages := newFakeMessageRepo()
	messages.seed(msg("m1", "bob", "alice", "", false, time.Now()))
	messages.seed(msg("m2", "bob", "alice", "", false, time.Now()))
	messages.seed(msg("m3", "alice", "bob", "", false, time.Now()))

	counter := NewUnreadCounter(messages, nil, time.Hour, func() string { return "alice" })
	counter.Trigger(context.Background())

	assert.Eventually(t, func() bool {
		return counter.Count() == 2
	}, time.Second, 5*time.Millisecond)
}

func TestUnreadCounterZeroWhenSignedOut(t *testing.T) {
	messages := newFakeMessageRepo()
	messages.seed(msg("m1", "bob", "alice", "", false, time.Now()))

	counter := NewUnreadCounter(messages, nil, time.Hour, func() string { return "" })
	counter.Trigger(context.Background())

	assert.Eventually(t, func() bool {
		return counter.Count() == 0 && messages.countUnreadCalls() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestUnreadCounterCoalescesTriggers(t *testing.T) {
	messages := newFakeMessageRepo()
	messages.seed(msg("m1", "bob", "alice", "", false, time.Now()))
	gate := make(chan struct{})
	messages.countGate = gate

	counter := NewUnreadCounter(messages, nil, time.Hour, func() string { return "alice" })
	ctx := context.Background()

	// One fetch goes in flight; the burst behind it folds into a single
	// queued follow-up.
	counter.Trigger(ctx)
	counter.Trigger(ctx)
	counter.Trigger(ctx)
	counter.Trigger(ctx)

	gate <- struct{}{}
	gate <- struct{}{}

	assert.Eventually(t, func() bool {
		return counter.Count() == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, messages.countUnreadCalls())
}

func TestUnreadCounterKeepsStaleValueOnError(t *testing.T) {
	messages := newFakeMessageRepo()
	messages.seed(msg("m1", "bob", "alice", "", false, time.Now()))

	counter := NewUnreadCounter(messages, nil, time.Hour, func() string { return "alice" })
	ctx := context.Background()

	counter.Trigger(ctx)
	assert.Eventually(t, func() bool {
		return counter.Count() == 1
	}, time.Second, 5*time.Millisecond)

	messages.setCountErr(errors.BackendUnavailable("down", nil))
	calls := messages.countUnreadCalls()
	counter.Trigger(ctx)

	assert.Eventually(t, func() bool {
		return messages.countUnreadCalls() > calls
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, counter.Count())
}

func TestUnreadCounterNotifiesOnChangeOnly(t *testing.T) {
	messages := newFakeMessageRepo()
	messages.seed(msg("m1", "bob", "alice", "", false, time.Now()))

	counter := NewUnreadCounter(messages, nil, time.Hour, func() string { return "alice" })

	var mu sync.Mutex
	var notified []int
	counter.OnChange = func(count int) {
		mu.Lock()
		notified = append(notified, count)
		mu.Unlock()
	}
	ctx := context.Background()

	counter.Trigger(ctx)
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(notified) == 1 && notified[0] == 1
	}, time.Second, 5*time.Millisecond)

	// Same count again: no notification.
	calls := messages.countUnreadCalls()
	counter.Trigger(ctx)
	assert.Eventually(t, func() bool {
		return messages.countUnreadCalls() > calls
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []int{1}, notified)
	mu.Unlock()
}

func TestUnreadCounterRefreshesOnBusEvents(t *testing.T) {
	messages := newFakeMessageRepo()
	bus := eventbus.NewBus()

	counter := NewUnreadCounter(messages, bus, time.Hour, func() string { return "alice" })
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	counter.Start(ctx)
	defer counter.Stop()

	assert.Eventually(t, func() bool {
		return counter.Count() == 0
	}, time.Second, 5*time.Millisecond)

	m := messages.seed(msg("m1", "bob", "alice", "", false, time.Now()))
	bus.Publish(eventbus.Event{Kind: eventbus.NewMessage})

	assert.Eventually(t, func() bool {
		return counter.Count() == 1
	}, time.Second, 5*time.Millisecond)

	_ = messages.MarkRead(ctx, m.ID)
	bus.Publish(eventbus.Event{Kind: eventbus.MessagesRead})

	assert.Eventually(t, func() bool {
		return counter.Count() == 0
	}, time.Second, 5*time.Millisecond)
}
