package usecase

import (
	"context"
	"io"
	"time"

	"reclaim/internal/domain/entity"
	"reclaim/internal/domain/repository"
	"reclaim/internal/domain/service"
	"reclaim/internal/infrastructure/eventbus"
	"reclaim/internal/infrastructure/firebase"
	"reclaim/pkg/errors"
	"reclaim/pkg/logger"
)

type UserUseCase struct {
	userRepo    repository.UserRepository
	authClient  *firebase.FirebaseAuthClient
	fileService service.FileUploadService
	bus         *eventbus.Bus
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	authClient *firebase.FirebaseAuthClient,
	fileService service.FileUploadService,
	bus *eventbus.Bus,
) *UserUseCase {
	return &UserUseCase{
		userRepo:    userRepo,
		authClient:  authClient,
		fileService: fileService,
		bus:         bus,
	}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
}

// Register creates the auth account and the profile document. A profile
// write failure rolls the auth account back so the two stores never
// disagree about who exists.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	if existing, err := uc.userRepo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, errors.BadRequest("Email is already registered", nil)
	}

	uid, err := uc.authClient.CreateUser(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		return nil, errors.BadRequest("Failed to create account", err)
	}

	user := &entity.User{
		ID:    uid,
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
		Role:  "user",
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if delErr := uc.authClient.DeleteUser(ctx, uid); delErr != nil {
			logger.Error("Register: rollback of auth account %s failed: %v", uid, delErr)
		}
		return nil, err
	}

	return user, nil
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Bio   string `json:"bio"`
}

// UpdateProfile writes the profile fields and announces the change so any
// cached display name is dropped.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Phone = input.Phone
	user.Bio = input.Bio
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if uc.bus != nil {
		uc.bus.Publish(eventbus.Event{Kind: eventbus.ProfileUpdated})
	}

	return user, nil
}

func (uc *UserUseCase) UploadAvatar(ctx context.Context, userID string, file io.Reader, contentType string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := uc.fileService.UploadFile(ctx, file, contentType, "avatars", true)
	if err != nil {
		return nil, errors.BackendUnavailable("Failed to upload avatar", err)
	}

	if user.AvatarURL != "" {
		if err := uc.fileService.DeleteFile(ctx, user.AvatarURL); err != nil {
			logger.Error("UploadAvatar: failed to delete previous avatar for %s: %v", userID, err)
		}
	}

	user.AvatarURL = url
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if uc.bus != nil {
		uc.bus.Publish(eventbus.Event{Kind: eventbus.ProfileUpdated})
	}

	return user, nil
}
