package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reclaim/internal/domain/entity"
	"reclaim/pkg/errors"
)

func newSightingFixture() (*SightingUseCase, *fakeItemRepo, *fakeSightingRepo, *fakeNotificationRepo) {
	items := newFakeItemRepo()
	sightings := newFakeSightingRepo()
	notifications := newFakeNotificationRepo()
	uc := NewSightingUseCase(sightings, items, notifications, nil)
	return uc, items, sightings, notifications
}

func TestReportSightingNotifiesOwner(t *testing.T) {
	uc, items, _, notifications := newSightingFixture()
	ctx := context.Background()

	item := items.seed(&entity.Item{OwnerID: "alice", Title: "Red backpack", Status: entity.ItemStatusLost})

	sighting, err := uc.ReportSighting(ctx, "bob", ReportSightingInput{
		ItemID:   item.ID,
		Location: "Central station",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SightingStatusPending, sighting.Status)

	feed := notifications.forUser("alice")
	require.Len(t, feed, 1)
	assert.Equal(t, entity.NotificationTypeSighting, feed[0].Type)
	assert.Equal(t, "bob", feed[0].RelatedUserID)
	assert.False(t, feed[0].EmailSent)
}

func TestReportSightingRejectsOwnerAndResolved(t *testing.T) {
	uc, items, _, _ := newSightingFixture()
	ctx := context.Background()

	item := items.seed(&entity.Item{OwnerID: "alice", Title: "Backpack", Status: entity.ItemStatusLost})
	_, err := uc.ReportSighting(ctx, "alice", ReportSightingInput{ItemID: item.ID, Location: "Park"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	resolved := items.seed(&entity.Item{OwnerID: "alice", Title: "Done", Status: entity.ItemStatusResolved})
	_, err = uc.ReportSighting(ctx, "bob", ReportSightingInput{ItemID: resolved.ID, Location: "Park"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSightingStatusTransitions(t *testing.T) {
	uc, items, sightings, _ := newSightingFixture()
	ctx := context.Background()

	item := items.seed(&entity.Item{OwnerID: "alice", Title: "Backpack", Status: entity.ItemStatusLost})
	sighting := &entity.Sighting{ItemID: item.ID, ReporterID: "bob", Location: "Park", Status: entity.SightingStatusPending}
	require.NoError(t, sightings.Create(ctx, sighting))

	// Only the item owner judges sightings.
	_, err := uc.SetStatus(ctx, sighting.ID, "bob", entity.SightingStatusConfirmed)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	updated, err := uc.SetStatus(ctx, sighting.ID, "alice", entity.SightingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, entity.SightingStatusConfirmed, updated.Status)

	// Discarded is terminal.
	_, err = uc.SetStatus(ctx, sighting.ID, "alice", entity.SightingStatusDiscarded)
	require.NoError(t, err)
	_, err = uc.SetStatus(ctx, sighting.ID, "alice", entity.SightingStatusPending)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestListByItemOwnerOnly(t *testing.T) {
	uc, items, sightings, _ := newSightingFixture()
	ctx := context.Background()

	item := items.seed(&entity.Item{OwnerID: "alice", Title: "Backpack", Status: entity.ItemStatusLost})
	require.NoError(t, sightings.Create(ctx, &entity.Sighting{ItemID: item.ID, ReporterID: "bob", Location: "Park", Status: entity.SightingStatusPending}))

	_, err := uc.ListByItem(ctx, item.ID, "bob")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	got, err := uc.ListByItem(ctx, item.ID, "alice")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestAdminSetStatusSkipsOwnerCheck(t *testing.T) {
	uc, items, sightings, _ := newSightingFixture()
	ctx := context.Background()

	item := items.seed(&entity.Item{OwnerID: "alice", Title: "Backpack", Status: entity.ItemStatusLost})
	sighting := &entity.Sighting{ItemID: item.ID, ReporterID: "bob", Location: "Park", Status: entity.SightingStatusPending}
	require.NoError(t, sightings.Create(ctx, sighting))

	updated, err := uc.AdminSetStatus(ctx, sighting.ID, entity.SightingStatusDiscarded)
	require.NoError(t, err)
	assert.Equal(t, entity.SightingStatusDiscarded, updated.Status)

	// Discarded stays terminal for moderators too.
	_, err = uc.AdminSetStatus(ctx, sighting.ID, entity.SightingStatusPending)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}
