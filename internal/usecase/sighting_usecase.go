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

type SightingUseCase struct {
	sightingRepo     repository.SightingRepository
	itemRepo         repository.ItemRepository
	notificationRepo repository.NotificationRepository
	rateLimiter      *ratelimit.RateLimiter
}

func NewSightingUseCase(
	sightingRepo repository.SightingRepository,
	itemRepo repository.ItemRepository,
	notificationRepo repository.NotificationRepository,
	rateLimiter *ratelimit.RateLimiter,
) *SightingUseCase {
	return &SightingUseCase{
		sightingRepo:     sightingRepo,
		itemRepo:         itemRepo,
		notificationRepo: notificationRepo,
		rateLimiter:      rateLimiter,
	}
}

type ReportSightingInput struct {
	ItemID      string `json:"item_id" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Description string `json:"description"`
	ContactInfo string `json:"contact_info"`
	PhotoURL    string `json:"photo_url"`
}

// ReportSighting files a pending sighting on an item and notifies the
// owner. Owners cannot report sightings on their own items.
func (uc *SightingUseCase) ReportSighting(ctx context.Context, reporterID string, input ReportSightingInput) (*entity.Sighting, error) {
	if uc.rateLimiter != nil {
		allowed, waitTime := uc.rateLimiter.Allow(reporterID, "report_sighting")
		if !allowed {
			return nil, errors.TooManyRequests("Too many sighting reports. Please wait before reporting again", waitTime)
		}
	}

	item, err := uc.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID == reporterID {
		return nil, errors.BadRequest("You cannot report a sighting of your own item", nil)
	}
	if item.Status == entity.ItemStatusResolved {
		return nil, errors.BadRequest("This item has already been resolved", nil)
	}

	sighting := &entity.Sighting{
		ItemID:      input.ItemID,
		ReporterID:  reporterID,
		Location:    input.Location,
		Description: input.Description,
		ContactInfo: input.ContactInfo,
		PhotoURL:    input.PhotoURL,
		Status:      entity.SightingStatusPending,
	}

	if err := uc.sightingRepo.Create(ctx, sighting); err != nil {
		return nil, err
	}

	notification := &entity.Notification{
		UserID:        item.OwnerID,
		Type:          entity.NotificationTypeSighting,
		Title:         "New sighting reported",
		Message:       fmt.Sprintf("Someone reported seeing %q near %s", item.Title, input.Location),
		ItemID:        item.ID,
		RelatedUserID: reporterID,
	}
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		logger.Error("ReportSighting: failed to notify owner %s: %v", item.OwnerID, err)
	}

	return sighting, nil
}

func (uc *SightingUseCase) ListByItem(ctx context.Context, itemID, requesterID string) ([]*entity.Sighting, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != requesterID {
		return nil, errors.Forbidden("Only the item owner can view its sightings", nil)
	}
	return uc.sightingRepo.ListByItemID(ctx, itemID)
}

func (uc *SightingUseCase) ListByReporter(ctx context.Context, reporterID string) ([]*entity.Sighting, error) {
	return uc.sightingRepo.ListByReporterID(ctx, reporterID)
}

// SetStatus moves a sighting between pending, confirmed and discarded. Only
// the owner of the sighted item may judge it, and discarded is terminal.
func (uc *SightingUseCase) SetStatus(ctx context.Context, sightingID, requesterID, status string) (*entity.Sighting, error) {
	sighting, err := uc.sightingRepo.GetByID(ctx, sightingID)
	if err != nil {
		return nil, err
	}

	item, err := uc.itemRepo.GetByID(ctx, sighting.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != requesterID {
		return nil, errors.Forbidden("Only the item owner can update a sighting", nil)
	}

	return uc.transition(ctx, sighting, status)
}

// AdminSetStatus is the moderation path. It skips the owner check so
// abusive or spam sightings can be discarded by staff.
func (uc *SightingUseCase) AdminSetStatus(ctx context.Context, sightingID, status string) (*entity.Sighting, error) {
	sighting, err := uc.sightingRepo.GetByID(ctx, sightingID)
	if err != nil {
		return nil, err
	}
	return uc.transition(ctx, sighting, status)
}

func (uc *SightingUseCase) transition(ctx context.Context, sighting *entity.Sighting, status string) (*entity.Sighting, error) {
	if status != entity.SightingStatusConfirmed && status != entity.SightingStatusDiscarded && status != entity.SightingStatusPending {
		return nil, errors.BadRequest("Invalid sighting status", nil)
	}

	if sighting.Status == entity.SightingStatusDiscarded {
		return nil, errors.BadRequest("Discarded sightings cannot be reopened", nil)
	}
	if sighting.Status == status {
		return sighting, nil
	}

	sighting.Status = status
	sighting.UpdatedAt = time.Now()

	if err := uc.sightingRepo.Update(ctx, sighting); err != nil {
		return nil, err
	}

	return sighting, nil
}
