package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"reclaim/internal/domain/entity"
	"reclaim/internal/domain/repository"
	"reclaim/pkg/errors"
)

type firestoreRewardRepository struct {
	client *firestore.Client
}

func NewFirestoreRewardRepository(client *firestore.Client) repository.RewardRepository {
	return &firestoreRewardRepository{
		client: client,
	}
}

func (r *firestoreRewardRepository) Create(ctx context.Context, reward *entity.Reward) error {
	if reward.ID == "" {
		reward.ID = uuid.New().String()
	}
	if reward.Status == "" {
		reward.Status = entity.RewardStatusActive
	}

	now := time.Now()
	reward.CreatedAt = now
	reward.UpdatedAt = now

	_, err := r.client.Collection("rewards").Doc(reward.ID).Set(ctx, reward)
	if err != nil {
		return errors.BackendUnavailable("Failed to create reward", err)
	}
	return nil
}

func (r *firestoreRewardRepository) GetByID(ctx context.Context, id string) (*entity.Reward, error) {
	doc, err := r.client.Collection("rewards").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Reward", err)
		}
		return nil, errors.BackendUnavailable("Failed to get reward", err)
	}

	var reward entity.Reward
	if err := doc.DataTo(&reward); err != nil {
		return nil, errors.Internal("Failed to parse reward data", err)
	}
	return &reward, nil
}

func (r *firestoreRewardRepository) GetByItemID(ctx context.Context, itemID string) (*entity.Reward, error) {
	iter := r.client.Collection("rewards").Where("itemId", "==", itemID).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Reward", err)
	}
	if err != nil {
		return nil, errors.BackendUnavailable("Failed to query reward by item", err)
	}

	var reward entity.Reward
	if err := doc.DataTo(&reward); err != nil {
		return nil, errors.Internal("Failed to parse reward data", err)
	}
	return &reward, nil
}

func (r *firestoreRewardRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*entity.Reward, error) {
	iter := r.client.Collection("rewards").Where("ownerId", "==", ownerID).Documents(ctx)

	var rewards []*entity.Reward
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.BackendUnavailable("Failed to list rewards", err)
		}

		var reward entity.Reward
		if err := doc.DataTo(&reward); err != nil {
			continue
		}
		rewards = append(rewards, &reward)
	}

	sort.Slice(rewards, func(i, j int) bool {
		return rewards[i].CreatedAt.After(rewards[j].CreatedAt)
	})

	return rewards, nil
}

func (r *firestoreRewardRepository) Update(ctx context.Context, reward *entity.Reward) error {
	reward.UpdatedAt = time.Now()

	_, err := r.client.Collection("rewards").Doc(reward.ID).Set(ctx, reward)
	if err != nil {
		return errors.BackendUnavailable("Failed to update reward", err)
	}
	return nil
}

func (r *firestoreRewardRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("rewards").Doc(id).Delete(ctx)
	if err != nil {
		return errors.BackendUnavailable("Failed to delete reward", err)
	}
	return nil
}

func (r *firestoreRewardRepository) CreateClaim(ctx context.Context, claim *entity.RewardClaim) error {
	if claim.ID == "" {
		claim.ID = uuid.New().String()
	}
	if claim.Status == "" {
		claim.Status = entity.ClaimStatusPending
	}

	now := time.Now()
	claim.CreatedAt = now
	claim.UpdatedAt = now

	_, err := r.client.Collection("reward_claims").Doc(claim.ID).Set(ctx, claim)
	if err != nil {
		return errors.BackendUnavailable("Failed to create reward claim", err)
	}
	return nil
}

func (r *firestoreRewardRepository) GetClaimByID(ctx context.Context, id string) (*entity.RewardClaim, error) {
	doc, err := r.client.Collection("reward_claims").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Reward claim", err)
		}
		return nil, errors.BackendUnavailable("Failed to get reward claim", err)
	}

	var claim entity.RewardClaim
	if err := doc.DataTo(&claim); err != nil {
		return nil, errors.Internal("Failed to parse reward claim data", err)
	}
	return &claim, nil
}

func (r *firestoreRewardRepository) listClaims(ctx context.Context, field, value string) ([]*entity.RewardClaim, error) {
	iter := r.client.Collection("reward_claims").Where(field, "==", value).Documents(ctx)

	var claims []*entity.RewardClaim
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.BackendUnavailable("Failed to list reward claims", err)
		}

		var claim entity.RewardClaim
		if err := doc.DataTo(&claim); err != nil {
			continue
		}
		claims = append(claims, &claim)
	}

	sort.Slice(claims, func(i, j int) bool {
		return claims[i].CreatedAt.After(claims[j].CreatedAt)
	})

	return claims, nil
}

func (r *firestoreRewardRepository) ListClaimsByRewardID(ctx context.Context, rewardID string) ([]*entity.RewardClaim, error) {
	return r.listClaims(ctx, "rewardId", rewardID)
}

func (r *firestoreRewardRepository) ListClaimsByClaimantID(ctx context.Context, claimantID string) ([]*entity.RewardClaim, error) {
	return r.listClaims(ctx, "claimantId", claimantID)
}

func (r *firestoreRewardRepository) UpdateClaim(ctx context.Context, claim *entity.RewardClaim) error {
	claim.UpdatedAt = time.Now()

	_, err := r.client.Collection("reward_claims").Doc(claim.ID).Set(ctx, claim)
	if err != nil {
		return errors.BackendUnavailable("Failed to update reward claim", err)
	}
	return nil
}
