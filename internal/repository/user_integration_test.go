//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/userhub/userhub/internal/model"
	"github.com/userhub/userhub/internal/testutil"
)

func TestIntegrationUserRepository_CreateUser(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	email := testutil.UniqueEmail("create")
	user, err := repo.CreateUser(ctx, "Ada", email)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if user.ID == 0 {
		t.Error("ID should be assigned by the database")
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreatedAt should be assigned by the database")
	}
	if user.Name != "Ada" || user.Email != email {
		t.Errorf("unexpected user: %+v", user)
	}

	retrieved, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if retrieved.Email != email {
		t.Errorf("Email mismatch: got %q, want %q", retrieved.Email, email)
	}
}

func TestIntegrationUserRepository_CreateUser_DuplicateEmail(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	email := testutil.UniqueEmail("dup")
	if _, err := repo.CreateUser(ctx, "Ada", email); err != nil {
		t.Fatalf("CreateUser (first) failed: %v", err)
	}

	_, err := repo.CreateUser(ctx, "Other", email)
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("Expected ErrEmailExists, got: %v", err)
	}

	// The store still holds exactly one row with that email.
	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	count := 0
	for _, u := range users {
		if u.Email == email {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one row with email %q, got %d", email, count)
	}
}

func TestIntegrationUserRepository_ListUsers_OrderedByID(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	first, err := repo.CreateUser(ctx, "Ada", testutil.UniqueEmail("list1"))
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	second, err := repo.CreateUser(ctx, "Grace", testutil.UniqueEmail("list2"))
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}

	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].ID != first.ID || users[1].ID != second.ID {
		t.Errorf("users not ordered by id: %+v", users)
	}
}

func TestIntegrationUserRepository_GetUserByID_NotFound(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	_, err := repo.GetUserByID(ctx, 999999)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
}

func TestIntegrationUserRepository_UpdateUser_PartialFields(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	email := testutil.UniqueEmail("upd")
	user, err := repo.CreateUser(ctx, "Ada", email)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	// Name only.
	name := "Ada L."
	updated, err := repo.UpdateUser(ctx, user.ID, model.UserUpdate{Name: &name})
	if err != nil {
		t.Fatalf("UpdateUser (name) failed: %v", err)
	}
	if updated.Name != "Ada L." || updated.Email != email {
		t.Errorf("unexpected user after name update: %+v", updated)
	}
	if !updated.CreatedAt.Equal(user.CreatedAt) {
		t.Error("CreatedAt must be immutable")
	}

	// Email only.
	newEmail := testutil.UniqueEmail("upd2")
	updated, err = repo.UpdateUser(ctx, user.ID, model.UserUpdate{Email: &newEmail})
	if err != nil {
		t.Fatalf("UpdateUser (email) failed: %v", err)
	}
	if updated.Name != "Ada L." || updated.Email != newEmail {
		t.Errorf("unexpected user after email update: %+v", updated)
	}

	// Both fields.
	bothName := "Grace"
	bothEmail := testutil.UniqueEmail("upd3")
	updated, err = repo.UpdateUser(ctx, user.ID, model.UserUpdate{Name: &bothName, Email: &bothEmail})
	if err != nil {
		t.Fatalf("UpdateUser (both) failed: %v", err)
	}
	if updated.Name != bothName || updated.Email != bothEmail {
		t.Errorf("unexpected user after full update: %+v", updated)
	}
}

func TestIntegrationUserRepository_UpdateUser_NotFound(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	name := "X"
	_, err := repo.UpdateUser(ctx, 999999, model.UserUpdate{Name: &name})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
}

func TestIntegrationUserRepository_UpdateUser_DuplicateEmail(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	takenEmail := testutil.UniqueEmail("taken")
	if _, err := repo.CreateUser(ctx, "Ada", takenEmail); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	second, err := repo.CreateUser(ctx, "Grace", testutil.UniqueEmail("second"))
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	_, err = repo.UpdateUser(ctx, second.ID, model.UserUpdate{Email: &takenEmail})
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("Expected ErrEmailExists, got: %v", err)
	}
}

func TestIntegrationUserRepository_DeleteUser(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	user, err := repo.CreateUser(ctx, "Ada", testutil.UniqueEmail("del"))
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if err := repo.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	_, err = repo.GetUserByID(ctx, user.ID)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound after delete, got: %v", err)
	}
}

func TestIntegrationUserRepository_DeleteUser_NotFound(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	err := repo.DeleteUser(ctx, 999999)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
}

func TestIntegrationUserRepository_EnsureSchema_Idempotent(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	// Safe to run repeatedly at process start.
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema (second run) failed: %v", err)
	}
}

func newUserTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetUsersSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset users schema: %v", err)
	}

	return ctx, repo
}
