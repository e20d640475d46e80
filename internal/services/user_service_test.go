package services

import (
	"context"
	"errors"
	"testing"

	"github.com/adanyl0v/taskwise/internal/models"
)

func TestUserService_EnsureAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin, err := f.users.EnsureAdmin(ctx, EnsureAdminParams{Email: "Admin@Example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("EnsureAdmin() err=%v, want nil", err)
	}
	if admin.Role != models.RoleAdmin || admin.Email != "admin@example.com" || admin.Name == "" {
		t.Fatalf("EnsureAdmin()=%+v, want an admin", admin)
	}

	again, err := f.users.EnsureAdmin(ctx, EnsureAdminParams{Email: "admin@example.com", Password: "changed"})
	if err != nil {
		t.Fatalf("EnsureAdmin() twice err=%v, want nil", err)
	}
	if again.ID != admin.ID {
		t.Fatalf("EnsureAdmin() twice ID=%q, want %q", again.ID, admin.ID)
	}
}

func TestUserService_UpdateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.UpdateUser(ctx, UpdateUserParams{ID: f.owner.UserID, Role: ptr("superuser")})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("UpdateUser(bad role) err=%v, want %v", err, ErrInvalidRole)
	}

	_, err = f.users.UpdateUser(ctx, UpdateUserParams{ID: f.owner.UserID, Name: ptr(" ")})
	if !errors.Is(err, ErrEmptyName) {
		t.Fatalf("UpdateUser(blank name) err=%v, want %v", err, ErrEmptyName)
	}

	got, err := f.users.UpdateUser(ctx, UpdateUserParams{
		ID:     f.owner.UserID,
		Role:   ptr("admin"),
		Active: ptr(false),
	})
	if err != nil {
		t.Fatalf("UpdateUser() err=%v, want nil", err)
	}
	if got.Role != models.RoleAdmin || got.Active || got.Name != "Owner" {
		t.Fatalf("UpdateUser()=%+v, want admin, inactive, name kept", got)
	}

	_, err = f.users.UpdateUser(ctx, UpdateUserParams{ID: "missing"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("UpdateUser(missing) err=%v, want %v", err, ErrUserNotFound)
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.users.DeleteUser(ctx, f.owner.UserID); err != nil {
		t.Fatalf("DeleteUser() err=%v, want nil", err)
	}
	if _, err := f.users.GetUser(ctx, f.owner.UserID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("GetUser() err=%v, want %v", err, ErrUserNotFound)
	}
	if err := f.users.DeleteUser(ctx, f.owner.UserID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("DeleteUser() twice err=%v, want %v", err, ErrUserNotFound)
	}
}

func TestUserService_CreateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.users.CreateUser(ctx, CreateUserParams{Email: " Kim@Example.com ", Password: "secret123"})
	if err != nil {
		t.Fatalf("CreateUser() err=%v, want nil", err)
	}
	if got.Role != models.RoleMember || got.Email != "kim@example.com" || got.Name != "kim@example.com" || !got.Active {
		t.Fatalf("CreateUser()=%+v, want an active member named after the email", got)
	}
	if got.Password == "secret123" {
		t.Fatalf("CreateUser() stored the plain password")
	}

	manager, err := f.users.CreateUser(ctx, CreateUserParams{Name: "Lee", Email: "lee@example.com", Password: "secret123", Role: "manager"})
	if err != nil || manager.Role != models.RoleManager {
		t.Fatalf("CreateUser(manager)=%+v err=%v, want manager", manager, err)
	}

	_, err = f.users.CreateUser(ctx, CreateUserParams{Email: "kim@example.com", Password: "secret123"})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("CreateUser(duplicate) err=%v, want %v", err, ErrUserAlreadyExists)
	}
	_, err = f.users.CreateUser(ctx, CreateUserParams{Email: "x@example.com", Password: "secret123", Role: "root"})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("CreateUser(bad role) err=%v, want %v", err, ErrInvalidRole)
	}
}
