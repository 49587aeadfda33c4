package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

func seedUser(t *testing.T, repo *stubUserRepo, name, email string, admin bool) *domain.User {
	t.Helper()
	in := profile(name, email, "initial")
	in.IsAdmin = boolPtr(admin)
	u, err := newUser(in)
	if err != nil {
		t.Fatalf("newUser: %v", err)
	}
	created, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return created
}

func TestUserService_Get_Ownership(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)
	alice := seedUser(t, repo, "Alice", "alice@example.com", false)
	bob := seedUser(t, repo, "Bob", "bob@example.com", false)

	got, err := svc.Get(context.Background(), alice.Identity(), alice.ID)
	if err != nil || got.ID != alice.ID {
		t.Fatalf("own profile: got %+v, err %v", got, err)
	}

	_, err = svc.Get(context.Background(), alice.Identity(), bob.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err.Error() != "Forbidden - You can only access your own profile" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	admin := domain.Identity{UserID: "root", IsAdmin: true}
	if _, err := svc.Get(context.Background(), admin, bob.ID); err != nil {
		t.Fatalf("admin should read any profile: %v", err)
	}
}

func TestUserService_Get_ForbiddenBeforeLookup(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), discardLogger)

	_, err := svc.Get(context.Background(), domain.Identity{UserID: "u1"}, "missing")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-owner must be rejected without revealing existence, got %v", err)
	}
}

func TestUserService_Update_SelfCannotEscalate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)
	alice := seedUser(t, repo, "Alice", "alice@example.com", false)

	updated, err := svc.Update(context.Background(), alice.Identity(), alice.ID, ports.ProfileInput{
		Phone:   "+351",
		IsAdmin: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.IsAdmin {
		t.Fatalf("non-admin escalated themselves")
	}
	if updated.Phone != "+351" || updated.Name != "Alice" {
		t.Fatalf("partial update wrong: %+v", updated)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("initial")); err != nil {
		t.Fatalf("password hash should be kept when no password supplied")
	}
}

func TestUserService_Update_AdminSetsFlagAndPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)
	bob := seedUser(t, repo, "Bob", "bob@example.com", false)
	admin := domain.Identity{UserID: "root", IsAdmin: true}

	updated, err := svc.Update(context.Background(), admin, bob.ID, ports.ProfileInput{
		Password: "rotated",
		IsAdmin:  boolPtr(true),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.IsAdmin {
		t.Fatalf("admin should be able to grant admin")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("rotated")); err != nil {
		t.Fatalf("password was not rotated")
	}
}

func TestUserService_Update_OtherUserForbidden(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)
	alice := seedUser(t, repo, "Alice", "alice@example.com", false)
	bob := seedUser(t, repo, "Bob", "bob@example.com", false)

	_, err := svc.Update(context.Background(), alice.Identity(), bob.ID, ports.ProfileInput{Name: "Hacked"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	stored, _ := repo.FindByID(context.Background(), bob.ID)
	if stored.Name != "Bob" {
		t.Fatalf("profile was modified: %+v", stored)
	}
}

func TestUserService_CreateHonoursAdminFlag(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), discardLogger)

	in := profile("Root", "root@example.com", "pw")
	in.IsAdmin = boolPtr(true)
	user, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !user.IsAdmin {
		t.Fatalf("expected admin user")
	}
}

func TestUserService_DeleteAndCount(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)
	alice := seedUser(t, repo, "Alice", "alice@example.com", false)
	seedUser(t, repo, "Bob", "bob@example.com", false)

	if n, _ := svc.Count(context.Background()); n != 2 {
		t.Fatalf("expected 2 users, got %d", n)
	}
	if err := svc.Delete(context.Background(), alice.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), alice.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
	if n, _ := svc.Count(context.Background()); n != 1 {
		t.Fatalf("expected 1 user, got %d", n)
	}
}
