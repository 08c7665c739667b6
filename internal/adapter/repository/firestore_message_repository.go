package repository

import (
	"context"
	"log"
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

type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{
		client: client,
	}
}

func (r *firestoreMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	message.CreatedAt = time.Now()

	_, err := r.client.Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.BackendUnavailable("Failed to create message", err)
	}

	return nil
}

func (r *firestoreMessageRepository) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	doc, err := r.client.Collection("messages").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Message", err)
		}
		return nil, errors.BackendUnavailable("Failed to get message", err)
	}

	var message entity.Message
	if err := doc.DataTo(&message); err != nil {
		return nil, errors.Internal("Failed to parse message data", err)
	}
	return &message, nil
}

// ListByUser fetches the full bidirectional history for one user. Firestore
// has no OR filter on two fields, so this runs one equality query per side
// and merges, deduping by id (a message can never match both sides since
// sender and receiver differ). createdAt is the one canonical ordering key.
func (r *firestoreMessageRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Message, error) {
	byID := make(map[string]*entity.Message)

	for _, field := range []string{"senderId", "receiverId"} {
		iter := r.client.Collection("messages").Where(field, "==", userID).Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				log.Printf("Firestore error while listing messages for user %s: %v", userID, err)
				return nil, errors.BackendUnavailable("Failed to list messages", err)
			}

			var message entity.Message
			if err := doc.DataTo(&message); err != nil {
				log.Printf("Error parsing message data for user %s: %v", userID, err)
				continue
			}
			byID[message.ID] = &message
		}
	}

	messages := make([]*entity.Message, 0, len(byID))
	for _, m := range byID {
		messages = append(messages, m)
	}
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	return messages, nil
}

// MarkRead flips read/readAt once. Marking an already-read message is a
// no-op, so readAt is written at most one time.
func (r *firestoreMessageRepository) MarkRead(ctx context.Context, messageID string) error {
	docRef := r.client.Collection("messages").Doc(messageID)

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Message", err)
		}
		return errors.BackendUnavailable("Failed to get message", err)
	}

	var message entity.Message
	if err := doc.DataTo(&message); err != nil {
		return errors.Internal("Failed to parse message data", err)
	}

	if message.Read {
		return nil
	}

	_, err = docRef.Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
		{Path: "readAt", Value: time.Now()},
	})
	if err != nil {
		return errors.BackendUnavailable("Failed to mark message as read", err)
	}

	return nil
}

func (r *firestoreMessageRepository) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	docs, err := r.client.Collection("messages").
		Where("receiverId", "==", receiverID).
		Where("read", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while counting unread messages for user %s: %v", receiverID, err)
		return 0, errors.BackendUnavailable("Failed to count unread messages", err)
	}

	return int64(len(docs)), nil
}

func (r *firestoreMessageRepository) DeleteByItemID(ctx context.Context, itemID string) error {
	iter := r.client.Collection("messages").Where("itemId", "==", itemID).Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.BackendUnavailable("Failed to list messages for item", err)
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return errors.BackendUnavailable("Failed to delete message", err)
		}
	}
	return nil
}
