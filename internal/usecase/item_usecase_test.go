package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reclaim/internal/domain/entity"
	"reclaim/internal/infrastructure/eventbus"
	"reclaim/pkg/errors"
)

func newItemFixture() (*ItemUseCase, *fakeItemRepo, *fakeMessageRepo, *fakeSightingRepo, *fakeRewardRepo, *fakeNotificationRepo, *fakeFileService) {
	items := newFakeItemRepo()
	messages := newFakeMessageRepo()
	sightings := newFakeSightingRepo()
	rewards := newFakeRewardRepo()
	notifications := newFakeNotificationRepo()
	files := &fakeFileService{}
	uc := NewItemUseCase(items, messages, sightings, rewards, notifications, files, eventbus.NewBus())
	return uc, items, messages, sightings, rewards, notifications, files
}

func TestCreateItemRejectsInvalidStatus(t *testing.T) {
	uc, _, _, _, _, _, _ := newItemFixture()

	_, err := uc.CreateItem(context.Background(), "alice", CreateItemInput{Title: "Keys", Status: "resolved"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	item, err := uc.CreateItem(context.Background(), "alice", CreateItemInput{Title: "Keys", Status: "lost"})
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusLost, item.Status)
}

func TestResolveItemCancelsActiveReward(t *testing.T) {
	uc, items, _, _, rewards, _, _ := newItemFixture()
	ctx := context.Background()

	item := items.seed(&entity.Item{OwnerID: "alice", Title: "Wallet", Status: entity.ItemStatusLost})
	require.NoError(t, rewards.Create(ctx, &entity.Reward{
		ItemID: item.ID, OwnerID: "alice", Amount: 50, Currency: "USD", Status: entity.RewardStatusActive,
	}))

	resolved, err := uc.ResolveItem(ctx, item.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)

	reward, err := rewards.GetByItemID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RewardStatusCancelled, reward.Status)

	// Resolving twice is a no-op, not an error.
	again, err := uc.ResolveItem(ctx, item.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusResolved, again.Status)
}

func TestResolveItemOwnerOnly(t *testing.T) {
	uc, items, _, _, _, _, _ := newItemFixture()

	item := items.seed(&entity.Item{OwnerID: "alice", Title: "Wallet", Status: entity.ItemStatusLost})
	_, err := uc.ResolveItem(context.Background(), item.ID, "mallory")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestDeleteItemCascades(t *testing.T) {
	uc, items, messages, _, _, _, files := newItemFixture()
	ctx := context.Background()

	item := items.seed(&entity.Item{OwnerID: "alice", Title: "Wallet", Status: entity.ItemStatusLost})
	require.NoError(t, items.AddPhoto(ctx, &entity.ItemPhoto{ItemID: item.ID, URL: "https://storage.googleapis.com/b/p1"}))
	messages.seed(msg("m1", "bob", "alice", item.ID, false, time.Now()))
	keep := messages.seed(msg("m2", "bob", "alice", "", false, time.Now()))

	require.NoError(t, uc.DeleteItem(ctx, item.ID, "alice"))

	_, err := items.GetByID(ctx, item.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	// Item-scoped messages go, the general thread stays.
	assert.Nil(t, messages.get("m1"))
	assert.NotNil(t, messages.get(keep.ID))

	// The stored photo file was deleted too.
	assert.Equal(t, []string{"https://storage.googleapis.com/b/p1"}, files.deleted)

	photos, err := items.ListPhotos(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestStatisticsCountByStatus(t *testing.T) {
	uc, items, _, _, _, _, _ := newItemFixture()

	items.seed(&entity.Item{OwnerID: "a", Title: "1", Status: entity.ItemStatusLost})
	items.seed(&entity.Item{OwnerID: "a", Title: "2", Status: entity.ItemStatusLost})
	items.seed(&entity.Item{OwnerID: "b", Title: "3", Status: entity.ItemStatusFound})
	items.seed(&entity.Item{OwnerID: "b", Title: "4", Status: entity.ItemStatusResolved})

	stats, err := uc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(2), stats.Lost)
	assert.Equal(t, int64(1), stats.Found)
	assert.Equal(t, int64(1), stats.Resolved)
}

func TestPromptStaleResolutions(t *testing.T) {
	uc, items, _, sightings, _, notifications, _ := newItemFixture()
	ctx := context.Background()

	old := time.Now().Add(-60 * 24 * time.Hour)
	stale := items.seed(&entity.Item{OwnerID: "alice", Title: "Old wallet", Status: entity.ItemStatusLost, CreatedAt: old})
	items.seed(&entity.Item{OwnerID: "alice", Title: "Quiet item", Status: entity.ItemStatusLost, CreatedAt: old})
	items.seed(&entity.Item{OwnerID: "alice", Title: "Fresh item", Status: entity.ItemStatusLost})

	// Only the stale item with recent sightings draws a prompt.
	require.NoError(t, sightings.Create(ctx, &entity.Sighting{ItemID: stale.ID, ReporterID: "bob", Location: "Park", Status: entity.SightingStatusPending}))

	prompted, err := uc.PromptStaleResolutions(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, prompted)

	feed := notifications.forUser("alice")
	require.Len(t, feed, 1)
	assert.Equal(t, entity.NotificationTypeResolution, feed[0].Type)
	assert.Equal(t, stale.ID, feed[0].ItemID)
}

func TestAdminDeleteItemIgnoresOwner(t *testing.T) {
	uc, items, _, _, _, _, _ := newItemFixture()
	ctx := context.Background()

	item := items.seed(&entity.Item{OwnerID: "alice", Title: "Wallet", Status: entity.ItemStatusLost})

	require.NoError(t, uc.AdminDeleteItem(ctx, item.ID))

	_, err := items.GetByID(ctx, item.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
