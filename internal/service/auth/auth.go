package auth

import (
	"context"
	"errors"

	"EduPortal/internal/app_errors"
	"EduPortal/internal/models"
	"EduPortal/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type userRepo interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type tokenRepo interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.AuthToken, error)
	ByKey(ctx context.Context, key string) (*models.AuthToken, error)
	DeleteUserToken(ctx context.Context, userID uuid.UUID) error
}

type AuthService struct {
	log      logger.Log
	users    userRepo
	tokens   tokenRepo
	sessions *SessionManager
}

func NewAuthService(l logger.Log, sessions *SessionManager, users userRepo, tokens tokenRepo) *AuthService {
	return &AuthService{
		log:      l,
		users:    users,
		tokens:   tokens,
		sessions: sessions,
	}
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Password2 string
	FirstName string
	LastName  string
	Phone     string
}

// Register creates a user and returns it with its API token. All
// failures before the insert are field-level validation errors; the
// username/email unique constraints are reported the same way.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if in.Password != in.Password2 {
		return nil, "", app_errors.NewValidationError("password", "The two password fields did not match.")
	}
	if verr := validatePassword(in.Password, in.Username, in.Email); verr != nil {
		return nil, "", verr
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hashed),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrUsernameTaken):
			return nil, "", app_errors.NewValidationError("username", err.Error())
		case errors.Is(err, app_errors.ErrEmailTaken):
			return nil, "", app_errors.NewValidationError("email", err.Error())
		}
		return nil, "", err
	}

	token, err := s.tokens.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token.Key, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords collapse into the same error so callers cannot probe
// which usernames exist.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, app_errors.ErrUserNotFound) {
			return nil, app_errors.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, app_errors.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and returns the user's API token, minting it on
// first login.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token.Key, nil
}

// Logout deletes the caller's token. A missing token is reported as
// app_errors.ErrTokenNotFound rather than swallowed.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.tokens.DeleteUserToken(ctx, userID)
}

// UserByToken resolves an opaque bearer key to its user.
func (s *AuthService) UserByToken(ctx context.Context, key string) (*models.User, error) {
	token, err := s.tokens.ByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.users.UserByID(ctx, token.UserID)
}

func (s *AuthService) User(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.UserByID(ctx, id)
}

// IssueSession signs a page-auth session cookie value for the user.
func (s *AuthService) IssueSession(userID uuid.UUID) (string, error) {
	return s.sessions.Issue(userID)
}

// ParseSession verifies a session cookie value and returns the user id.
func (s *AuthService) ParseSession(raw string) (uuid.UUID, error) {
	return s.sessions.Parse(raw)
}
