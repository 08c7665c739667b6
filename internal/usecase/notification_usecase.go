package usecase

import (
	"context"

	"reclaim/internal/domain/entity"
	"reclaim/internal/domain/repository"
	"reclaim/pkg/errors"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationUseCase(notificationRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notificationRepo: notificationRepo}
}

func (uc *NotificationUseCase) Feed(ctx context.Context, userID string, limit int) ([]*entity.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.notificationRepo.ListByUserID(ctx, userID, limit)
}

func (uc *NotificationUseCase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return uc.notificationRepo.CountUnread(ctx, userID)
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, notificationID string) error {
	notifications, err := uc.notificationRepo.ListByUserID(ctx, userID, 0)
	if err != nil {
		return err
	}
	for _, n := range notifications {
		if n.ID == notificationID {
			return uc.notificationRepo.MarkRead(ctx, notificationID)
		}
	}
	return errors.NotFound("Notification", nil)
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.notificationRepo.MarkAllRead(ctx, userID)
}
