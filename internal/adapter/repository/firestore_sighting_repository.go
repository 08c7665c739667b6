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

type firestoreSightingRepository struct {
	client *firestore.Client
}

func NewFirestoreSightingRepository(client *firestore.Client) repository.SightingRepository {
	return &firestoreSightingRepository{
		client: client,
	}
}

func (r *firestoreSightingRepository) Create(ctx context.Context, sighting *entity.Sighting) error {
	if sighting.ID == "" {
		sighting.ID = uuid.New().String()
	}
	if sighting.Status == "" {
		sighting.Status = entity.SightingStatusPending
	}

	now := time.Now()
	sighting.CreatedAt = now
	sighting.UpdatedAt = now

	_, err := r.client.Collection("sightings").Doc(sighting.ID).Set(ctx, sighting)
	if err != nil {
		return errors.BackendUnavailable("Failed to create sighting", err)
	}
	return nil
}

func (r *firestoreSightingRepository) GetByID(ctx context.Context, id string) (*entity.Sighting, error) {
	doc, err := r.client.Collection("sightings").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Sighting", err)
		}
		return nil, errors.BackendUnavailable("Failed to get sighting", err)
	}

	var sighting entity.Sighting
	if err := doc.DataTo(&sighting); err != nil {
		return nil, errors.Internal("Failed to parse sighting data", err)
	}
	return &sighting, nil
}

func (r *firestoreSightingRepository) listByField(ctx context.Context, field, value string) ([]*entity.Sighting, error) {
	iter := r.client.Collection("sightings").Where(field, "==", value).Documents(ctx)

	var sightings []*entity.Sighting
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.BackendUnavailable("Failed to list sightings", err)
		}

		var sighting entity.Sighting
		if err := doc.DataTo(&sighting); err != nil {
			continue
		}
		sightings = append(sightings, &sighting)
	}

	sort.Slice(sightings, func(i, j int) bool {
		return sightings[i].CreatedAt.After(sightings[j].CreatedAt)
	})

	return sightings, nil
}

func (r *firestoreSightingRepository) ListByItemID(ctx context.Context, itemID string) ([]*entity.Sighting, error) {
	return r.listByField(ctx, "itemId", itemID)
}

func (r *firestoreSightingRepository) ListByReporterID(ctx context.Context, reporterID string) ([]*entity.Sighting, error) {
	return r.listByField(ctx, "reporterId", reporterID)
}

func (r *firestoreSightingRepository) Update(ctx context.Context, sighting *entity.Sighting) error {
	sighting.UpdatedAt = time.Now()

	_, err := r.client.Collection("sightings").Doc(sighting.ID).Set(ctx, sighting)
	if err != nil {
		return errors.BackendUnavailable("Failed to update sighting", err)
	}
	return nil
}

func (r *firestoreSightingRepository) CountRecentByItemID(ctx context.Context, itemID string, cutoff time.Time) (int64, error) {
	docs, err := r.client.Collection("sightings").
		Where("itemId", "==", itemID).
		Where("createdAt", ">", cutoff).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.BackendUnavailable("Failed to count recent sightings", err)
	}

	return int64(len(docs)), nil
}
