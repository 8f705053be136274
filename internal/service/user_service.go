package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/oleh-26-01/TaskManagementAPI/internal/domain"
	"github.com/oleh-26-01/TaskManagementAPI/internal/service/auth"
	"github.com/oleh-26-01/TaskManagementAPI/internal/store"
)

// UserService provides registration, login and user lookup operations.
type UserService interface {
	// Register creates a new user account. The password must satisfy the
	// complexity policy; only its hash is stored.
	// Returns store.ErrUsernameExists or store.ErrEmailExists on collision
	// and domain.ErrInvalidPassword when the policy is not met.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)

	// Login verifies the credentials and issues a signed bearer token.
	// Unknown usernames and wrong passwords are indistinguishable: both
	// return auth.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)

	// GetByID retrieves a user by their ID.
	// Returns store.ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore  store.UserStore
	db         *sql.DB
	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	logger     *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	db *sql.DB,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) *UserServiceImpl {
	return &UserServiceImpl{
		userStore:  userStore,
		db:         db,
		jwtService: jwtService,
		hasher:     hasher,
		verifier:   verifier,
		logger:     logger.With("component", "user_service"),
	}
}

// Ensure UserServiceImpl implements UserService interface
var _ UserService = (*UserServiceImpl)(nil)

// Register creates a new user account with a hashed password.
// The uniqueness pre-checks and the insert run inside one transaction for a
// friendly error, but the database unique constraints remain the authority:
// a concurrent registration that slips past the pre-check still surfaces as
// a duplicate error from the store.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	username, email, password string,
) (*domain.User, error) {
	if !domain.ValidPassword(password) {
		s.logger.Debug("registration rejected: password policy not met",
			"username", username)
		return nil, fmt.Errorf(
			"%w: must be at least 8 characters with lower, upper, digit and symbol",
			domain.ErrInvalidPassword,
		)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(username, email, hashed)
	if err != nil {
		s.logger.Debug("registration rejected: invalid user data",
			"error", err, "username", username)
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		if _, err := txStore.GetByUsername(ctx, username); err == nil {
			return store.ErrUsernameExists
		} else if !errors.Is(err, store.ErrUserNotFound) {
			return fmt.Errorf("failed to check username availability: %w", err)
		}

		if _, err := txStore.GetByEmail(ctx, email); err == nil {
			return store.ErrEmailExists
		} else if !errors.Is(err, store.ErrUserNotFound) {
			return fmt.Errorf("failed to check email availability: %w", err)
		}

		return txStore.Create(ctx, user)
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameExists):
			s.logger.Debug("registration rejected: username taken",
				"username", username)
		case errors.Is(err, store.ErrEmailExists):
			s.logger.Debug("registration rejected: email taken", "email", email)
		case store.IsDuplicateError(err):
			s.logger.Debug("registration lost uniqueness race",
				"username", username)
		default:
			s.logger.Error("failed to save user",
				"error", err, "username", username)
		}
		return nil, err
	}

	s.logger.Info("user registered successfully",
		"user_id", user.ID,
		"username", user.Username)
	return user, nil
}

// Login verifies credentials and issues a bearer token valid for the
// configured lifetime.
func (s *UserServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login failed: unknown username", "username", username)
			return "", auth.ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for login",
			"error", err, "username", username)
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login failed: password mismatch", "username", username)
		return "", auth.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID, user.Username)
	if err != nil {
		s.logger.Error("failed to generate token",
			"error", err, "user_id", user.ID)
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user logged in successfully",
		"user_id", user.ID,
		"username", user.Username)
	return token, nil
}

// GetByID retrieves a user by their ID.
func (s *UserServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found", "user_id", id)
		} else {
			s.logger.Error("failed to retrieve user", "error", err, "user_id", id)
		}
		return nil, err
	}

	return user, nil
}
