package usecase

import (
	"context"
	"fmt"
	"time"

	"reclaim/internal/domain/entity"
	"reclaim/internal/domain/repository"
	"reclaim/internal/infrastructure/ratelimit"
	"reclaim/pkg/errors"
	"reclaim/pkg/logger"
)

type RewardUseCase struct {
	rewardRepo       repository.RewardRepository
	itemRepo         repository.ItemRepository
	notificationRepo repository.NotificationRepository
	rateLimiter      *ratelimit.RateLimiter
}

func NewRewardUseCase(
	rewardRepo repository.RewardRepository,
	itemRepo repository.ItemRepository,
	notificationRepo repository.NotificationRepository,
	rateLimiter *ratelimit.RateLimiter,
) *RewardUseCase {
	return &RewardUseCase{
		rewardRepo:       rewardRepo,
		itemRepo:         itemRepo,
		notificationRepo: notificationRepo,
		rateLimiter:      rateLimiter,
	}
}

type CreateRewardInput struct {
	ItemID      string  `json:"item_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
}

// CreateReward attaches a reward to one of the caller's unresolved items. An
// item carries at most one reward.
func (uc *RewardUseCase) CreateReward(ctx context.Context, ownerID string, input CreateRewardInput) (*entity.Reward, error) {
	if uc.rateLimiter != nil {
		allowed, waitTime := uc.rateLimiter.Allow(ownerID, "create_reward")
		if !allowed {
			return nil, errors.TooManyRequests("Too many rewards created. Please wait before creating another", waitTime)
		}
	}

	if input.Amount <= 0 {
		return nil, errors.BadRequest("Reward amount must be positive", nil)
	}

	item, err := uc.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, errors.Forbidden("You can only offer rewards on your own items", nil)
	}
	if item.Status == entity.ItemStatusResolved {
		return nil, errors.BadRequest("Resolved items cannot carry a reward", nil)
	}

	if existing, err := uc.rewardRepo.GetByItemID(ctx, input.ItemID); err == nil && existing.Status == entity.RewardStatusActive {
		return nil, errors.BadRequest("This item already has an active reward", nil)
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	reward := &entity.Reward{
		ItemID:      input.ItemID,
		OwnerID:     ownerID,
		Amount:      input.Amount,
		Currency:    currency,
		Description: input.Description,
		Status:      entity.RewardStatusActive,
	}

	if err := uc.rewardRepo.Create(ctx, reward); err != nil {
		return nil, err
	}

	return reward, nil
}

func (uc *RewardUseCase) GetByItem(ctx context.Context, itemID string) (*entity.Reward, error) {
	return uc.rewardRepo.GetByItemID(ctx, itemID)
}

func (uc *RewardUseCase) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Reward, error) {
	return uc.rewardRepo.ListByOwnerID(ctx, ownerID)
}

// CancelReward withdraws an active reward. Claimed rewards stay claimed.
func (uc *RewardUseCase) CancelReward(ctx context.Context, rewardID, ownerID string) (*entity.Reward, error) {
	reward, err := uc.rewardRepo.GetByID(ctx, rewardID)
	if err != nil {
		return nil, err
	}
	if reward.OwnerID != ownerID {
		return nil, errors.Forbidden("You can only cancel your own rewards", nil)
	}
	if reward.Status == entity.RewardStatusClaimed {
		return nil, errors.BadRequest("A claimed reward cannot be cancelled", nil)
	}
	if reward.Status == entity.RewardStatusCancelled {
		return reward, nil
	}

	reward.Status = entity.RewardStatusCancelled
	reward.UpdatedAt = time.Now()

	if err := uc.rewardRepo.Update(ctx, reward); err != nil {
		return nil, err
	}

	return reward, nil
}

type ClaimRewardInput struct {
	RewardID string `json:"reward_id" validate:"required"`
	Message  string `json:"message"`
}

// ClaimReward files a pending claim on an active reward and notifies the
// reward's owner. The owner cannot claim their own reward, and one claimant
// gets one open claim per reward.
func (uc *RewardUseCase) ClaimReward(ctx context.Context, claimantID string, input ClaimRewardInput) (*entity.RewardClaim, error) {
	reward, err := uc.rewardRepo.GetByID(ctx, input.RewardID)
	if err != nil {
		return nil, err
	}
	if reward.Status != entity.RewardStatusActive {
		return nil, errors.BadRequest("This reward is not open for claims", nil)
	}
	if reward.OwnerID == claimantID {
		return nil, errors.BadRequest("You cannot claim your own reward", nil)
	}

	existing, err := uc.rewardRepo.ListClaimsByRewardID(ctx, input.RewardID)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if c.ClaimantID == claimantID && c.Status == entity.ClaimStatusPending {
			return nil, errors.BadRequest("You already have a pending claim on this reward", nil)
		}
	}

	claim := &entity.RewardClaim{
		RewardID:   input.RewardID,
		ClaimantID: claimantID,
		Message:    input.Message,
		Status:     entity.ClaimStatusPending,
	}

	if err := uc.rewardRepo.CreateClaim(ctx, claim); err != nil {
		return nil, err
	}

	notification := &entity.Notification{
		UserID:        reward.OwnerID,
		Type:          entity.NotificationTypeRewardClaim,
		Title:         "New reward claim",
		Message:       fmt.Sprintf("Someone claimed the %s %.2f reward", reward.Currency, reward.Amount),
		ItemID:        reward.ItemID,
		RelatedUserID: claimantID,
	}
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		logger.Error("ClaimReward: failed to notify owner %s: %v", reward.OwnerID, err)
	}

	return claim, nil
}

func (uc *RewardUseCase) ListClaims(ctx context.Context, rewardID, ownerID string) ([]*entity.RewardClaim, error) {
	reward, err := uc.rewardRepo.GetByID(ctx, rewardID)
	if err != nil {
		return nil, err
	}
	if reward.OwnerID != ownerID {
		return nil, errors.Forbidden("Only the reward owner can view its claims", nil)
	}
	return uc.rewardRepo.ListClaimsByRewardID(ctx, rewardID)
}

func (uc *RewardUseCase) ListMyClaims(ctx context.Context, claimantID string) ([]*entity.RewardClaim, error) {
	return uc.rewardRepo.ListClaimsByClaimantID(ctx, claimantID)
}

// ApproveClaim accepts one pending claim, marks the reward claimed, and
// rejects the remaining pending claims on it.
func (uc *RewardUseCase) ApproveClaim(ctx context.Context, claimID, ownerID string) (*entity.RewardClaim, error) {
	claim, err := uc.rewardRepo.GetClaimByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	reward, err := uc.rewardRepo.GetByID(ctx, claim.RewardID)
	if err != nil {
		return nil, err
	}
	if reward.OwnerID != ownerID {
		return nil, errors.Forbidden("Only the reward owner can approve claims", nil)
	}
	if claim.Status != entity.ClaimStatusPending {
		return nil, errors.BadRequest("Only pending claims can be approved", nil)
	}
	if reward.Status != entity.RewardStatusActive {
		return nil, errors.BadRequest("This reward is not open for claims", nil)
	}

	now := time.Now()
	claim.Status = entity.ClaimStatusApproved
	claim.UpdatedAt = now
	if err := uc.rewardRepo.UpdateClaim(ctx, claim); err != nil {
		return nil, err
	}

	reward.Status = entity.RewardStatusClaimed
	reward.UpdatedAt = now
	if err := uc.rewardRepo.Update(ctx, reward); err != nil {
		return nil, err
	}

	siblings, err := uc.rewardRepo.ListClaimsByRewardID(ctx, claim.RewardID)
	if err != nil {
		logger.Error("ApproveClaim: failed to list sibling claims for reward %s: %v", claim.RewardID, err)
		return claim, nil
	}
	for _, sibling := range siblings {
		if sibling.ID == claim.ID || sibling.Status != entity.ClaimStatusPending {
			continue
		}
		sibling.Status = entity.ClaimStatusRejected
		sibling.UpdatedAt = now
		if err := uc.rewardRepo.UpdateClaim(ctx, sibling); err != nil {
			logger.Error("ApproveClaim: failed to reject sibling claim %s: %v", sibling.ID, err)
		}
	}

	return claim, nil
}

// RejectClaim turns down a pending claim without touching the reward.
func (uc *RewardUseCase) RejectClaim(ctx context.Context, claimID, ownerID string) (*entity.RewardClaim, error) {
	claim, err := uc.rewardRepo.GetClaimByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	reward, err := uc.rewardRepo.GetByID(ctx, claim.RewardID)
	if err != nil {
		return nil, err
	}
	if reward.OwnerID != ownerID {
		return nil, errors.Forbidden("Only the reward owner can reject claims", nil)
	}
	if claim.Status != entity.ClaimStatusPending {
		return nil, errors.BadRequest("Only pending claims can be rejected", nil)
	}

	claim.Status = entity.ClaimStatusRejected
	claim.UpdatedAt = time.Now()
	if err := uc.rewardRepo.UpdateClaim(ctx, claim); err != nil {
		return nil, err
	}

	return claim, nil
}
