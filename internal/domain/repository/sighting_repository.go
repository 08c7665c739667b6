package repository

import (
	"context"
	"time"

	"reclaim/internal/domain/entity"
)

type SightingRepository interface {
	Create(ctx context.Context, sighting *entity.Sighting) error
	GetByID(ctx context.Context, id string) (*entity.Sighting, error)
	ListByItemID(ctx context.Context, itemID string) ([]*entity.Sighting, error)
	ListByReporterID(ctx context.Context, reporterID string) ([]*entity.Sighting, error)
	Update(ctx context.Context, sighting *entity.Sighting) error
	// CountRecentByItemID counts sightings on an item reported after the
	// cutoff, used when deciding whether to prompt the owner for resolution.
	CountRecentByItemID(ctx context.Context, itemID string, cutoff time.Time) (int64, error)
}
