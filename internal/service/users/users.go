package users

import (
	"context"
	"errors"
	"io"
	"strings"

	"EduPortal/internal/app_errors"
	"EduPortal/internal/models"
	"EduPortal/internal/policy"
	"EduPortal/internal/service/serialize"
	"EduPortal/pkg/logger"

	"github.com/google/uuid"
)

type userRepo interface {
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, error)
	CountUsers(ctx context.Context) (int, error)
	UpdateUser(ctx context.Context, user models.User) (*models.User, error)
	SetAvatarKey(ctx context.Context, id uuid.UUID, key string) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type avatarStore interface {
	UploadAvatar(ctx context.Context, userID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

type UserService struct {
	log        logger.Log
	users      userRepo
	avatars    avatarStore
	serializer *serialize.Serializer
}

func NewUserService(log logger.Log, users userRepo, avatars avatarStore, s *serialize.Serializer) *UserService {
	return &UserService{log: log, users: users, avatars: avatars, serializer: s}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.UserProfile, int, error) {
	users, err := s.users.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, 0, err
	}
	profiles := make([]models.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, s.serializer.UserProfile(ctx, u))
	}
	return profiles, total, nil
}

func (s *UserService) UserByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	user, err := s.users.UserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile := s.serializer.UserProfile(ctx, *user)
	return &profile, nil
}

type UpdateInput struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Bio       string
}

// UpdateUser writes a user record. Only the record owner may do this.
func (s *UserService) UpdateUser(ctx context.Context, caller policy.Caller, id uuid.UUID, in UpdateInput) (*models.UserProfile, error) {
	target, err := s.users.UserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModifyUser(caller, *target) {
		return nil, app_errors.ErrForbidden
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, app_errors.NewValidationError("email", "This field is required.")
	}

	updated, err := s.users.UpdateUser(ctx, models.User{
		ID:        id,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Bio:       in.Bio,
	})
	if err != nil {
		if errors.Is(err, app_errors.ErrEmailTaken) {
			return nil, app_errors.NewValidationError("email", err.Error())
		}
		return nil, err
	}
	profile := s.serializer.UserProfile(ctx, *updated)
	return &profile, nil
}

func (s *UserService) DeleteUser(ctx context.Context, caller policy.Caller, id uuid.UUID) error {
	target, err := s.users.UserByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanModifyUser(caller, *target) {
		return app_errors.ErrForbidden
	}
	return s.users.DeleteUser(ctx, id)
}

// UploadAvatar stores a new avatar image and records its object key.
func (s *UserService) UploadAvatar(ctx context.Context, caller policy.Caller, id uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (*models.UserProfile, error) {
	target, err := s.users.UserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModifyUser(caller, *target) {
		return nil, app_errors.ErrForbidden
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, app_errors.ErrNotImage
	}

	key, err := s.avatars.UploadAvatar(ctx, id, filename, reader, size, contentType)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetAvatarKey(ctx, id, key); err != nil {
		return nil, err
	}
	target.AvatarKey = key
	profile := s.serializer.UserProfile(ctx, *target)
	return &profile, nil
}
