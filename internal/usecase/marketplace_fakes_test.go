package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"reclaim/internal/domain/entity"
	"reclaim/internal/domain/repository"
	"reclaim/pkg/errors"
)

type fakeItemRepo struct {
	mu     sync.Mutex
	items  map[string]*entity.Item
	photos map[string][]*entity.ItemPhoto
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{
		items:  make(map[string]*entity.Item),
		photos: make(map[string][]*entity.ItemPhoto),
	}
}

func (r *fakeItemRepo) Create(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	stored := *item
	r.items[item.ID] = &stored
	return nil
}

func (r *fakeItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, errors.NotFound("Item", nil)
	}
	copied := *item
	return &copied, nil
}

func (r *fakeItemRepo) List(ctx context.Context, filter repository.ItemFilter, limit, offset int) ([]*entity.Item, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Item
	for _, item := range r.items {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.OwnerID != "" && item.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(item.Title), strings.ToLower(filter.Query)) {
			continue
		}
		copied := *item
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *fakeItemRepo) Update(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return errors.NotFound("Item", nil)
	}
	stored := *item
	r.items[item.ID] = &stored
	return nil
}

func (r *fakeItemRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) Statistics(ctx context.Context) (*entity.ItemStatistics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &entity.ItemStatistics{}
	for _, item := range r.items {
		stats.Total++
		switch item.Status {
		case entity.ItemStatusLost:
			stats.Lost++
		case entity.ItemStatusFound:
			stats.Found++
		case entity.ItemStatusResolved:
			stats.Resolved++
		}
	}
	return stats, nil
}

func (r *fakeItemRepo) ListUnresolvedOlderThan(ctx context.Context, ownerID string, cutoff time.Time) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Item
	for _, item := range r.items {
		if item.OwnerID == ownerID && item.Status != entity.ItemStatusResolved && item.CreatedAt.Before(cutoff) {
			copied := *item
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) AddPhoto(ctx context.Context, photo *entity.ItemPhoto) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if photo.ID == "" {
		photo.ID = uuid.New().String()
	}
	photo.CreatedAt = time.Now()
	stored := *photo
	r.photos[photo.ItemID] = append(r.photos[photo.ItemID], &stored)
	return nil
}

func (r *fakeItemRepo) ListPhotos(ctx context.Context, itemID string) ([]*entity.ItemPhoto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.ItemPhoto(nil), r.photos[itemID]...), nil
}

func (r *fakeItemRepo) DeletePhotosByItemID(ctx context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.photos, itemID)
	return nil
}

func (r *fakeItemRepo) seed(item *entity.Item) *entity.Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	stored := *item
	r.items[item.ID] = &stored
	return item
}

type fakeSightingRepo struct {
	mu        sync.Mutex
	sightings map[string]*entity.Sighting
}

func newFakeSightingRepo() *fakeSightingRepo {
	return &fakeSightingRepo{sightings: make(map[string]*entity.Sighting)}
}

func (r *fakeSightingRepo) Create(ctx context.Context, sighting *entity.Sighting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sighting.ID == "" {
		sighting.ID = uuid.New().String()
	}
	now := time.Now()
	sighting.CreatedAt = now
	sighting.UpdatedAt = now
	stored := *sighting
	r.sightings[sighting.ID] = &stored
	return nil
}

func (r *fakeSightingRepo) GetByID(ctx context.Context, id string) (*entity.Sighting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sighting, ok := r.sightings[id]
	if !ok {
		return nil, errors.NotFound("Sighting", nil)
	}
	copied := *sighting
	return &copied, nil
}

func (r *fakeSightingRepo) ListByItemID(ctx context.Context, itemID string) ([]*entity.Sighting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Sighting
	for _, s := range r.sightings {
		if s.ItemID == itemID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeSightingRepo) ListByReporterID(ctx context.Context, reporterID string) ([]*entity.Sighting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Sighting
	for _, s := range r.sightings {
		if s.ReporterID == reporterID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeSightingRepo) Update(ctx context.Context, sighting *entity.Sighting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sightings[sighting.ID]; !ok {
		return errors.NotFound("Sighting", nil)
	}
	stored := *sighting
	r.sightings[sighting.ID] = &stored
	return nil
}

func (r *fakeSightingRepo) CountRecentByItemID(ctx context.Context, itemID string, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, s := range r.sightings {
		if s.ItemID == itemID && s.CreatedAt.After(cutoff) {
			count++
		}
	}
	return count, nil
}

type fakeRewardRepo struct {
	mu      sync.Mutex
	rewards map[string]*entity.Reward
	claims  map[string]*entity.RewardClaim
}

func newFakeRewardRepo() *fakeRewardRepo {
	return &fakeRewardRepo{
		rewards: make(map[string]*entity.Reward),
		claims:  make(map[string]*entity.RewardClaim),
	}
}

func (r *fakeRewardRepo) Create(ctx context.Context, reward *entity.Reward) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reward.ID == "" {
		reward.ID = uuid.New().String()
	}
	now := time.Now()
	reward.CreatedAt = now
	reward.UpdatedAt = now
	stored := *reward
	r.rewards[reward.ID] = &stored
	return nil
}

func (r *fakeRewardRepo) GetByID(ctx context.Context, id string) (*entity.Reward, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reward, ok := r.rewards[id]
	if !ok {
		return nil, errors.NotFound("Reward", nil)
	}
	copied := *reward
	return &copied, nil
}

func (r *fakeRewardRepo) GetByItemID(ctx context.Context, itemID string) (*entity.Reward, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, reward := range r.rewards {
		if reward.ItemID == itemID {
			copied := *reward
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Reward", nil)
}

func (r *fakeRewardRepo) ListByOwnerID(ctx context.Context, ownerID string) ([]*entity.Reward, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Reward
	for _, reward := range r.rewards {
		if reward.OwnerID == ownerID {
			copied := *reward
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRewardRepo) Update(ctx context.Context, reward *entity.Reward) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rewards[reward.ID]; !ok {
		return errors.NotFound("Reward", nil)
	}
	stored := *reward
	r.rewards[reward.ID] = &stored
	return nil
}

func (r *fakeRewardRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rewards, id)
	return nil
}

func (r *fakeRewardRepo) CreateClaim(ctx context.Context, claim *entity.RewardClaim) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if claim.ID == "" {
		claim.ID = uuid.New().String()
	}
	now := time.Now()
	claim.CreatedAt = now
	claim.UpdatedAt = now
	stored := *claim
	r.claims[claim.ID] = &stored
	return nil
}

func (r *fakeRewardRepo) GetClaimByID(ctx context.Context, id string) (*entity.RewardClaim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	claim, ok := r.claims[id]
	if !ok {
		return nil, errors.NotFound("Claim", nil)
	}
	copied := *claim
	return &copied, nil
}

func (r *fakeRewardRepo) ListClaimsByRewardID(ctx context.Context, rewardID string) ([]*entity.RewardClaim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.RewardClaim
	for _, claim := range r.claims {
		if claim.RewardID == rewardID {
			copied := *claim
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRewardRepo) ListClaimsByClaimantID(ctx context.Context, claimantID string) ([]*entity.RewardClaim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.RewardClaim
	for _, claim := range r.claims {
		if claim.ClaimantID == claimantID {
			copied := *claim
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRewardRepo) UpdateClaim(ctx context.Context, claim *entity.RewardClaim) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.claims[claim.ID]; !ok {
		return errors.NotFound("Claim", nil)
	}
	stored := *claim
	r.claims[claim.ID] = &stored
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*entity.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	notification.CreatedAt = time.Now()
	stored := *notification
	r.notifications = append(r.notifications, &stored)
	return nil
}

func (r *fakeNotificationRepo) ListByUserID(ctx context.Context, userID string, limit int) ([]*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			copied := *n
			out = append(out, &copied)
		}
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.notifications {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return errors.NotFound("Notification", nil)
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) forUser(userID string) []*entity.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			copied := *n
			out = append(out, &copied)
		}
	}
	return out
}
