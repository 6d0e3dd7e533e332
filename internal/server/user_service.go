package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/Dileep2896/visapath/internal/config"
	"github.com/Dileep2896/visapath/internal/db"
	"github.com/Dileep2896/visapath/internal/types"
)

// DBClient abstracts the user store so tests can substitute a mock.
type DBClient interface {
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, email, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// UserService provides business logic for account operations.
type UserService struct {
	db             DBClient
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService. db may be a nil *db.DB when
// the server runs without persistence; handlers guard for that.
func NewUserService(database *db.DB, passwordConfig *config.PasswordConfig) *UserService {
	var client DBClient
	if database != nil {
		client = database
	}
	return &UserService{db: client, passwordConfig: passwordConfig}
}

// NewUserServiceWithClient wires an explicit DBClient, used by tests.
func NewUserServiceWithClient(client DBClient, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{db: client, passwordConfig: passwordConfig}
}

// toTypesUser converts a db row to the API shape, dropping the password
// hash and decoding the saved profile.
func toTypesUser(dbUser *db.User) *types.User {
	if dbUser == nil {
		return nil
	}
	user := &types.User{
		ID:             dbUser.ID,
		Email:          dbUser.Email,
		CachedTimeline: dbUser.CachedTimeline,
		CachedTaxGuide: dbUser.CachedTaxGuide,
		CreatedAt:      dbUser.CreatedAt,
	}
	if len(dbUser.Profile) > 0 {
		var profile types.UserProfile
		if err := json.Unmarshal(dbUser.Profile, &profile); err == nil {
			user.Profile = &profile
		}
	}
	return user
}

// Register creates a new account.
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	if s.db == nil {
		return nil, fmt.Errorf("user store unavailable")
	}

	exists, err := s.db.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.db.CreateUser(ctx, req.Email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	dbUser, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created user: %w", err)
	}
	if dbUser == nil {
		return nil, fmt.Errorf("created user not found: %s", userID)
	}

	return toTypesUser(dbUser), nil
}

// Login authenticates an account. Missing users and wrong passwords
// return the same generic error.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	if s.db == nil {
		return nil, fmt.Errorf("user store unavailable")
	}

	dbUser, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if dbUser == nil {
		return nil, &ErrInvalidCredentials{}
	}

	if !s.passwordConfig.VerifyPassword(req.Password, dbUser.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return toTypesUser(dbUser), nil
}

// Me loads the account for an authenticated user ID.
func (s *UserService) Me(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	if s.db == nil {
		return nil, fmt.Errorf("user store unavailable")
	}

	dbUser, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if dbUser == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}

	return toTypesUser(dbUser), nil
}

// UpdatePassword changes an account password after verifying the current
// one.
func (s *UserService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if s.db == nil {
		return fmt.Errorf("user store unavailable")
	}

	dbUser, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if dbUser == nil {
		return &ErrUserNotFound{UserID: userID}
	}

	if !s.passwordConfig.VerifyPassword(currentPassword, dbUser.PasswordHash) {
		return &ErrPasswordMismatch{}
	}

	newPasswordHash, err := s.passwordConfig.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.db.UpdatePassword(ctx, userID, newPasswordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
