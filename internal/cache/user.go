package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/userhub/userhub/internal/model"
)

// Cache keys and TTLs. The collection key holds the full ordered user list;
// per-item keys hold a single user's fields. Both are deleted, never updated,
// on any write that could make them incorrect.
const (
	userListKey   = "users:all"
	userKeyPrefix = "user:"

	// UserListTTL bounds how stale the cached collection may get.
	UserListTTL = 30 * time.Second

	// UserTTL bounds how stale a cached single user may get.
	UserTTL = 60 * time.Second
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// UserKey builds the per-item cache key for a user id.
func UserKey(id int64) string {
	return userKeyPrefix + strconv.FormatInt(id, 10)
}

// GetUserList retrieves the cached user collection.
// Returns ErrCacheMiss if not present.
func (c *Cache) GetUserList(ctx context.Context) ([]model.User, error) {
	data, err := c.client.Get(ctx, userListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var users []model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to decode cached user list: %w", err)
	}

	return users, nil
}

// SetUserList stores the user collection with the collection TTL.
func (c *Cache) SetUserList(ctx context.Context, users []model.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode user list: %w", err)
	}

	if err := c.client.Set(ctx, userListKey, data, UserListTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache user list: %w", err)
	}

	return nil
}

// GetUser retrieves a cached user by id.
// Returns ErrCacheMiss if not present.
func (c *Cache) GetUser(ctx context.Context, id int64) (*model.User, error) {
	data, err := c.client.Get(ctx, UserKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode cached user: %w", err)
	}

	return &user, nil
}

// SetUser stores a single user with the per-item TTL.
func (c *Cache) SetUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	if err := c.client.Set(ctx, UserKey(user.ID), data, UserTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}

	return nil
}

// InvalidateUserList deletes the collection key.
func (c *Cache) InvalidateUserList(ctx context.Context) error {
	if err := c.client.Del(ctx, userListKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate user list: %w", err)
	}
	return nil
}

// InvalidateUser deletes the per-item key and the collection key in one
// round trip. Used by update and delete, which change both.
func (c *Cache) InvalidateUser(ctx context.Context, id int64) error {
	pipe := c.client.Pipeline()
	pipe.Del(ctx, UserKey(id))
	pipe.Del(ctx, userListKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to invalidate user: %w", err)
	}

	return nil
}
