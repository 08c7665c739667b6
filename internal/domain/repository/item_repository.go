package repository

import (
	"context"
	"time"

	"reclaim/internal/domain/entity"
)

type ItemFilter struct {
	Status   string
	Category string
	OwnerID  string
	Query    string // matched against title and description
}

type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	List(ctx context.Context, filter ItemFilter, limit, offset int) ([]*entity.Item, int64, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id string) error

	Statistics(ctx context.Context) (*entity.ItemStatistics, error)
	// ListUnresolvedOlderThan returns non-resolved items of one owner created
	// before the cutoff, used for resolution prompts.
	ListUnresolvedOlderThan(ctx context.Context, ownerID string, cutoff time.Time) ([]*entity.Item, error)

	// Photo records
	AddPhoto(ctx context.Context, photo *entity.ItemPhoto) error
	ListPhotos(ctx context.Context, itemID string) ([]*entity.ItemPhoto, error)
	DeletePhotosByItemID(ctx context.Context, itemID string) error
}
