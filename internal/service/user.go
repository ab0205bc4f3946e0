// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/userhub/userhub/internal/cache"
	"github.com/userhub/userhub/internal/metrics"
	"github.com/userhub/userhub/internal/model"
	"github.com/userhub/userhub/internal/repository"
)

// Service errors.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailExists   = errors.New("email already exists")
	ErrMissingFields = errors.New("name and email are required")
	ErrNoFields      = errors.New("name or email is required")
)

// UserStore is the authoritative record store for users.
type UserStore interface {
	CreateUser(ctx context.Context, name, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, update model.UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// UserCache holds transient, expiring copies of read results. It is an
// optional accelerator: no method here is allowed to fail an operation.
type UserCache interface {
	GetUserList(ctx context.Context) ([]model.User, error)
	SetUserList(ctx context.Context, users []model.User) error
	GetUser(ctx context.Context, id int64) (*model.User, error)
	SetUser(ctx context.Context, user *model.User) error
	InvalidateUserList(ctx context.Context) error
	InvalidateUser(ctx context.Context, id int64) error
}

// UserService coordinates the record store and the cache. Reads go
// cache-first and populate on miss; writes hit the store first and
// invalidate cache keys only after the store confirms.
type UserService struct {
	store   UserStore
	cache   UserCache
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, cache UserCache, logger *slog.Logger, recorder metrics.Recorder) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		store:   store,
		cache:   cache,
		logger:  logger,
		metrics: recorder,
	}
}

// CreateUserInput defines input for creating a user.
type CreateUserInput struct {
	Name  string
	Email string
}

// CreateUser inserts a new user and invalidates the collection key.
// No per-item key exists for a new id, so none is touched.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" {
		return nil, ErrMissingFields
	}

	user, err := s.store.CreateUser(ctx, input.Name, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserCreated()

	// Invalidate only after the store confirmed the write.
	if err := s.cache.InvalidateUserList(ctx); err != nil {
		s.logCacheError(ctx, "invalidate user list", err)
	}

	return user, nil
}

// ListUsers returns all users, cache-first. An empty table yields an
// empty slice, cached like any other result.
func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.cache.GetUserList(ctx)
	if err == nil {
		s.metrics.IncUserListCacheHit()
		return users, nil
	}

	if errors.Is(err, cache.ErrCacheMiss) {
		s.metrics.IncUserListCacheMiss()
	} else {
		// Cache unreachable: degrade to store-only.
		s.logCacheError(ctx, "get user list", err)
	}

	users, err = s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	if err := s.cache.SetUserList(ctx, users); err != nil {
		s.logCacheError(ctx, "set user list", err)
	}

	return users, nil
}

// GetUser returns one user, cache-first. A not-found result is never cached.
func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.cache.GetUser(ctx, id)
	if err == nil {
		s.metrics.IncUserCacheHit()
		return user, nil
	}

	if errors.Is(err, cache.ErrCacheMiss) {
		s.metrics.IncUserCacheMiss()
	} else {
		s.logCacheError(ctx, "get user", err)
	}

	user, err = s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.cache.SetUser(ctx, user); err != nil {
		s.logCacheError(ctx, "set user", err)
	}

	return user, nil
}

// UpdateUserInput defines input for a partial update. Nil fields are
// left unchanged.
type UpdateUserInput struct {
	ID    int64
	Name  *string
	Email *string
}

// UpdateUser applies the present fields and invalidates both the per-item
// key and the collection key once the store confirms.
func (s *UserService) UpdateUser(ctx context.Context, input UpdateUserInput) (*model.User, error) {
	update := model.UserUpdate{
		Name:  input.Name,
		Email: input.Email,
	}

	if update.IsEmpty() {
		return nil, ErrNoFields
	}

	user, err := s.store.UpdateUser(ctx, input.ID, update)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.metrics.IncUserUpdated()

	if err := s.cache.InvalidateUser(ctx, input.ID); err != nil {
		s.logCacheError(ctx, "invalidate user", err)
	}

	return user, nil
}

// DeleteUser removes a user and invalidates both cache keys.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.metrics.IncUserDeleted()

	if err := s.cache.InvalidateUser(ctx, id); err != nil {
		s.logCacheError(ctx, "invalidate user", err)
	}

	return nil
}

// logCacheError records a degraded cache call. Staleness is bounded by the
// key TTLs, so the request proceeds as if the cache were empty.
func (s *UserService) logCacheError(ctx context.Context, op string, err error) {
	s.logger.WarnContext(ctx, "cache degraded",
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
}
