package repository

import (
	"context"

	"reclaim/internal/domain/entity"
)

type RewardRepository interface {
	Create(ctx context.Context, reward *entity.Reward) error
	GetByID(ctx context.Context, id string) (*entity.Reward, error)
	GetByItemID(ctx context.Context, itemID string) (*entity.Reward, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*entity.Reward, error)
	Update(ctx context.Context, reward *entity.Reward) error
	Delete(ctx context.Context, id string) error

	CreateClaim(ctx context.Context, claim *entity.RewardClaim) error
	GetClaimByID(ctx context.Context, id string) (*entity.RewardClaim, error)
	ListClaimsByRewardID(ctx context.Context, rewardID string) ([]*entity.RewardClaim, error)
	ListClaimsByClaimantID(ctx context.Context, claimantID string) ([]*entity.RewardClaim, error)
	UpdateClaim(ctx context.Context, claim *entity.RewardClaim) error
}
