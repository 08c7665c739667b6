package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"reclaim/internal/domain/entity"
	"reclaim/internal/domain/repository"
	"reclaim/internal/domain/service"
	"reclaim/internal/infrastructure/eventbus"
	"reclaim/pkg/errors"
	"reclaim/pkg/logger"
)

// resolutionPromptAge is how old an unresolved item must be before the owner
// is prompted to close it out.
const resolutionPromptAge = 30 * 24 * time.Hour

type ItemUseCase struct {
	itemRepo         repository.ItemRepository
	messageRepo      repository.MessageRepository
	sightingRepo     repository.SightingRepository
	rewardRepo       repository.RewardRepository
	notificationRepo repository.NotificationRepository
	fileService      service.FileUploadService
	bus              *eventbus.Bus
}

func NewItemUseCase(
	itemRepo repository.ItemRepository,
	messageRepo repository.MessageRepository,
	sightingRepo repository.SightingRepository,
	rewardRepo repository.RewardRepository,
	notificationRepo repository.NotificationRepository,
	fileService service.FileUploadService,
	bus *eventbus.Bus,
) *ItemUseCase {
	return &ItemUseCase{
		itemRepo:         itemRepo,
		messageRepo:      messageRepo,
		sightingRepo:     sightingRepo,
		rewardRepo:       rewardRepo,
		notificationRepo: notificationRepo,
		fileService:      fileService,
		bus:              bus,
	}
}

type CreateItemInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Status      string `json:"status" validate:"required"` // "lost" or "found"
}

func (uc *ItemUseCase) CreateItem(ctx context.Context, ownerID string, input CreateItemInput) (*entity.Item, error) {
	if input.Status != entity.ItemStatusLost && input.Status != entity.ItemStatusFound {
		return nil, errors.BadRequest("Status must be lost or found", nil)
	}

	item := &entity.Item{
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		Status:      input.Status,
	}

	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (uc *ItemUseCase) GetItem(ctx context.Context, id string) (*entity.Item, error) {
	return uc.itemRepo.GetByID(ctx, id)
}

func (uc *ItemUseCase) ListItems(ctx context.Context, filter repository.ItemFilter, page, limit int) ([]*entity.Item, int64, error) {
	offset := (page - 1) * limit
	return uc.itemRepo.List(ctx, filter, limit, offset)
}

func (uc *ItemUseCase) UpdateItem(ctx context.Context, id, ownerID string, input CreateItemInput) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, errors.Forbidden("You don't have permission to update this item", nil)
	}
	if item.Status == entity.ItemStatusResolved {
		return nil, errors.BadRequest("Resolved items cannot be edited", nil)
	}

	item.Title = input.Title
	item.Description = input.Description
	item.Category = input.Category
	item.Location = input.Location
	if input.Status == entity.ItemStatusLost || input.Status == entity.ItemStatusFound {
		item.Status = input.Status
	}
	item.UpdatedAt = time.Now()

	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// ResolveItem closes an item out. Any active reward on it is cancelled so it
// no longer advertises money for a solved case.
func (uc *ItemUseCase) ResolveItem(ctx context.Context, id, ownerID string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, errors.Forbidden("You don't have permission to resolve this item", nil)
	}
	if item.Status == entity.ItemStatusResolved {
		return item, nil
	}

	now := time.Now()
	item.Status = entity.ItemStatusResolved
	item.ResolvedAt = &now
	item.UpdatedAt = now

	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	if reward, err := uc.rewardRepo.GetByItemID(ctx, id); err == nil && reward.Status == entity.RewardStatusActive {
		reward.Status = entity.RewardStatusCancelled
		reward.UpdatedAt = now
		if err := uc.rewardRepo.Update(ctx, reward); err != nil {
			logger.Error("ResolveItem: failed to cancel reward %s: %v", reward.ID, err)
		}
	}

	return item, nil
}

// DeleteItem removes an item together with its photos, their stored files,
// and the messages that reference it. Storage deletions that fail are logged
// and skipped so a missing blob never strands the record.
func (uc *ItemUseCase) DeleteItem(ctx context.Context, id, ownerID string) error {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item.OwnerID != ownerID {
		return errors.Forbidden("You don't have permission to delete this item", nil)
	}

	return uc.deleteCascade(ctx, id)
}

// AdminDeleteItem removes any item regardless of owner. The caller is
// expected to have passed the admin gate.
func (uc *ItemUseCase) AdminDeleteItem(ctx context.Context, id string) error {
	if _, err := uc.itemRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.deleteCascade(ctx, id)
}

func (uc *ItemUseCase) deleteCascade(ctx context.Context, id string) error {
	photos, err := uc.itemRepo.ListPhotos(ctx, id)
	if err != nil {
		return err
	}
	for _, photo := range photos {
		if err := uc.fileService.DeleteFile(ctx, photo.URL); err != nil {
			logger.Error("DeleteItem: failed to delete photo file %s: %v", photo.URL, err)
		}
	}
	if err := uc.itemRepo.DeletePhotosByItemID(ctx, id); err != nil {
		return err
	}

	if err := uc.messageRepo.DeleteByItemID(ctx, id); err != nil {
		return err
	}

	return uc.itemRepo.Delete(ctx, id)
}

func (uc *ItemUseCase) UploadItemPhoto(ctx context.Context, itemID, ownerID string, file io.Reader, contentType string) (*entity.ItemPhoto, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, errors.Forbidden("You don't have permission to add photos to this item", nil)
	}

	url, err := uc.fileService.UploadFile(ctx, file, contentType, "item_photos", true)
	if err != nil {
		return nil, errors.BackendUnavailable("Failed to upload photo", err)
	}

	photo := &entity.ItemPhoto{
		ItemID: itemID,
		URL:    url,
	}
	if err := uc.itemRepo.AddPhoto(ctx, photo); err != nil {
		return nil, err
	}

	return photo, nil
}

func (uc *ItemUseCase) ListItemPhotos(ctx context.Context, itemID string) ([]*entity.ItemPhoto, error) {
	return uc.itemRepo.ListPhotos(ctx, itemID)
}

func (uc *ItemUseCase) Statistics(ctx context.Context) (*entity.ItemStatistics, error) {
	return uc.itemRepo.Statistics(ctx)
}

// PromptStaleResolutions files a resolution-prompt notification for each of
// the owner's unresolved items older than the prompt age that has drawn at
// least one recent sighting. Returns how many prompts were filed.
func (uc *ItemUseCase) PromptStaleResolutions(ctx context.Context, ownerID string) (int, error) {
	cutoff := time.Now().Add(-resolutionPromptAge)
	items, err := uc.itemRepo.ListUnresolvedOlderThan(ctx, ownerID, cutoff)
	if err != nil {
		return 0, err
	}

	prompted := 0
	for _, item := range items {
		count, err := uc.sightingRepo.CountRecentByItemID(ctx, item.ID, cutoff)
		if err != nil {
			logger.Error("PromptStaleResolutions: sighting count failed for item %s: %v", item.ID, err)
			continue
		}
		if count == 0 {
			continue
		}

		notification := &entity.Notification{
			UserID:  ownerID,
			Type:    entity.NotificationTypeResolution,
			Title:   "Is this still unresolved?",
			Message: fmt.Sprintf("Your listing %q has had recent sightings. Mark it resolved if it's been returned.", item.Title),
			ItemID:  item.ID,
		}
		if err := uc.notificationRepo.Create(ctx, notification); err != nil {
			logger.Error("PromptStaleResolutions: failed to file prompt for item %s: %v", item.ID, err)
			continue
		}
		prompted++
	}

	return prompted, nil
}
