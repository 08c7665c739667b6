package usecase

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"reclaim/internal/domain/entity"
	"reclaim/pkg/errors"
)

// fakeMessageRepo is an in-memory MessageRepository with per-message failure
// injection for the read-state paths.
type fakeMessageRepo struct {
	mu       sync.Mutex
	messages map[string]*entity.Message

	createErr    error
	listErr      error
	countErr     error
	failMarkRead map[string]bool

	// countGate, when set, blocks CountUnread until a value is sent. Used to
	// hold a badge fetch in flight.
	countGate chan struct{}

	// afterCreate, when set, runs after a Create commits and the repo lock is
	// released. Used to interleave a refresh with an in-flight send.
	afterCreate func()

	markReadCalls int
	countCalls    int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{
		messages:     make(map[string]*entity.Message),
		failMarkRead: make(map[string]bool),
	}
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()

	if r.createErr != nil {
		err := r.createErr
		r.mu.Unlock()
		return err
	}

	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	stored := *message
	r.messages[message.ID] = &stored
	hook := r.afterCreate
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil
}

func (r *fakeMessageRepo) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg, ok := r.messages[id]
	if !ok {
		return nil, errors.NotFound("Message", nil)
	}
	copied := *msg
	return &copied, nil
}

func (r *fakeMessageRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listErr != nil {
		return nil, r.listErr
	}

	var out []*entity.Message
	for _, msg := range r.messages {
		if msg.SenderID == userID || msg.ReceiverID == userID {
			copied := *msg
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeMessageRepo) MarkRead(ctx context.Context, messageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.markReadCalls++

	if r.failMarkRead[messageID] {
		return errors.BackendUnavailable("Failed to mark message as read", nil)
	}

	msg, ok := r.messages[messageID]
	if !ok {
		return errors.NotFound("Message", nil)
	}
	if msg.Read {
		return nil
	}
	now := time.Now()
	msg.Read = true
	msg.ReadAt = &now
	return nil
}

func (r *fakeMessageRepo) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	r.mu.Lock()
	gate := r.countGate
	r.mu.Unlock()
	if gate != nil {
		<-gate
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.countCalls++

	if r.countErr != nil {
		return 0, r.countErr
	}

	var count int64
	for _, msg := range r.messages {
		if msg.ReceiverID == receiverID && !msg.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeMessageRepo) DeleteByItemID(ctx context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, msg := range r.messages {
		if msg.ItemID == itemID {
			delete(r.messages, id)
		}
	}
	return nil
}

func (r *fakeMessageRepo) countUnreadCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countCalls
}

func (r *fakeMessageRepo) setCountErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countErr = err
}

func (r *fakeMessageRepo) seed(msg *entity.Message) *entity.Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	stored := *msg
	r.messages[msg.ID] = &stored
	return msg
}

func (r *fakeMessageRepo) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, id)
}

func (r *fakeMessageRepo) get(id string) *entity.Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg, ok := r.messages[id]
	if !ok {
		return nil
	}
	copied := *msg
	return &copied
}

// fakeUserRepo holds profiles keyed by user id.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User

	getByIDsErr error
	lookupCalls int
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lookupCalls++

	if r.getByIDsErr != nil {
		return nil, r.getByIDsErr
	}

	out := make(map[string]*entity.User)
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			copied := *user
			out[id] = &copied
		}
	}
	return out, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

// fakeFileService records uploads and serves canned URLs.
type fakeFileService struct {
	mu        sync.Mutex
	uploads   []string
	deleted   []string
	uploadErr error
}

func (f *fakeFileService) UploadFile(ctx context.Context, file io.Reader, fileType, folder string, isPublic bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	url := "https://storage.googleapis.com/test-bucket/" + folder + "/" + uuid.New().String()
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeFileService) DeleteFile(ctx context.Context, fileURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func (f *fakeFileService) Close() error {
	return nil
}
