package repository

import (
	"context"
	"log"
	"sort"
	"strings"
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

type firestoreItemRepository struct {
	client *firestore.Client
}

func NewFirestoreItemRepository(client *firestore.Client) repository.ItemRepository {
	return &firestoreItemRepository{
		client: client,
	}
}

func (r *firestoreItemRepository) Create(ctx context.Context, item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.client.Collection("items").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return errors.BackendUnavailable("Failed to create item", err)
	}
	return nil
}

func (r *firestoreItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	doc, err := r.client.Collection("items").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Item", err)
		}
		return nil, errors.BackendUnavailable("Failed to get item", err)
	}

	var item entity.Item
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.Internal("Failed to parse item data", err)
	}
	return &item, nil
}

// List applies equality filters server-side; the free-text query is matched
// client-side since Firestore has no substring operator.
func (r *firestoreItemRepository) List(ctx context.Context, filter repository.ItemFilter, limit, offset int) ([]*entity.Item, int64, error) {
	query := r.client.Collection("items").Query
	if filter.Status != "" {
		query = query.Where("status", "==", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}
	if filter.OwnerID != "" {
		query = query.Where("ownerId", "==", filter.OwnerID)
	}

	iter := query.Documents(ctx)
	var items []*entity.Item
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Firestore error while listing items: %v", err)
			return nil, 0, errors.BackendUnavailable("Failed to list items", err)
		}

		var item entity.Item
		if err := doc.DataTo(&item); err != nil {
			log.Printf("Error parsing item data: %v", err)
			continue
		}

		if filter.Query != "" {
			q := strings.ToLower(filter.Query)
			if !strings.Contains(strings.ToLower(item.Title), q) &&
				!strings.Contains(strings.ToLower(item.Description), q) {
				continue
			}
		}

		items = append(items, &item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	total := int64(len(items))
	if offset > len(items) {
		offset = len(items)
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	return items, total, nil
}

func (r *firestoreItemRepository) Update(ctx context.Context, item *entity.Item) error {
	item.UpdatedAt = time.Now()

	_, err := r.client.Collection("items").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return errors.BackendUnavailable("Failed to update item", err)
	}
	return nil
}

func (r *firestoreItemRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("items").Doc(id).Delete(ctx)
	if err != nil {
		return errors.BackendUnavailable("Failed to delete item", err)
	}
	return nil
}

func (r *firestoreItemRepository) Statistics(ctx context.Context) (*entity.ItemStatistics, error) {
	docs, err := r.client.Collection("items").Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.BackendUnavailable("Failed to load item statistics", err)
	}

	stats := &entity.ItemStatistics{Total: int64(len(docs))}
	for _, doc := range docs {
		var item entity.Item
		if err := doc.DataTo(&item); err != nil {
			continue
		}
		switch item.Status {
		case entity.ItemStatusLost:
			stats.Lost++
		case entity.ItemStatusFound:
			stats.Found++
		case entity.ItemStatusResolved:
			stats.Resolved++
		}
	}

	return stats, nil
}

func (r *firestoreItemRepository) ListUnresolvedOlderThan(ctx context.Context, ownerID string, cutoff time.Time) ([]*entity.Item, error) {
	iter := r.client.Collection("items").
		Where("ownerId", "==", ownerID).
		Where("status", "in", []string{entity.ItemStatusLost, entity.ItemStatusFound}).
		Documents(ctx)

	var items []*entity.Item
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.BackendUnavailable("Failed to list unresolved items", err)
		}

		var item entity.Item
		if err := doc.DataTo(&item); err != nil {
			continue
		}
		if item.CreatedAt.Before(cutoff) {
			items = append(items, &item)
		}
	}

	return items, nil
}

func (r *firestoreItemRepository) AddPhoto(ctx context.Context, photo *entity.ItemPhoto) error {
	if photo.ID == "" {
		photo.ID = uuid.New().String()
	}
	photo.CreatedAt = time.Now()

	_, err := r.client.Collection("item_photos").Doc(photo.ID).Set(ctx, photo)
	if err != nil {
		return errors.BackendUnavailable("Failed to save item photo", err)
	}
	return nil
}

func (r *firestoreItemRepository) ListPhotos(ctx context.Context, itemID string) ([]*entity.ItemPhoto, error) {
	iter := r.client.Collection("item_photos").Where("itemId", "==", itemID).Documents(ctx)

	var photos []*entity.ItemPhoto
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.BackendUnavailable("Failed to list item photos", err)
		}

		var photo entity.ItemPhoto
		if err := doc.DataTo(&photo); err != nil {
			continue
		}
		photos = append(photos, &photo)
	}

	return photos, nil
}

func (r *firestoreItemRepository) DeletePhotosByItemID(ctx context.Context, itemID string) error {
	iter := r.client.Collection("item_photos").Where("itemId", "==", itemID).Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.BackendUnavailable("Failed to list item photos", err)
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return errors.BackendUnavailable("Failed to delete item photo", err)
		}
	}
	return nil
}
