package repository

import (
	"context"

	"reclaim/internal/domain/entity"
)

// MessageRepository is the message store adapter. ListByUser returns every
// message where the user is sender or receiver; an empty inbox is an empty
// slice, never an error. MarkRead is idempotent: marking an already-read
// message is a no-op.
type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	GetByID(ctx context.Context, id string) (*entity.Message, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Message, error)
	MarkRead(ctx context.Context, messageID string) error
	CountUnread(ctx context.Context, receiverID string) (int64, error)
	DeleteByItemID(ctx context.Context, itemID string) error
}
