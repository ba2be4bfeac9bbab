package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/classware/gradebook-service/internal/models"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionStore(client, time.Hour), mr
}

func TestSessionStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	user := &models.User{ID: 7, Role: models.RoleTeacher}
	token, err := store.Create(ctx, user)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if token == "" {
		t.Fatal("Create() returned empty token")
	}

	session, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if session.UserID != 7 {
		t.Errorf("UserID = %d, want 7", session.UserID)
	}
	if session.Role != models.RoleTeacher {
		t.Errorf("Role = %s, want teacher", session.Role)
	}
}

func TestSessionStore_UnknownToken(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	if _, err := store.Get(ctx, "nope"); err != ErrSessionNotFound {
		t.Errorf("Get() error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	token, err := store.Create(ctx, &models.User{ID: 1, Role: models.RoleStudent})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := store.Get(ctx, token); err != ErrSessionNotFound {
		t.Errorf("Get() after Delete() error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	token, err := store.Create(ctx, &models.User{ID: 1, Role: models.RoleStudent})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if _, err := store.Get(ctx, token); err != ErrSessionNotFound {
		t.Errorf("Get() after TTL error = %v, want ErrSessionNotFound", err)
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !CheckPassword(hash, "hunter22") {
		t.Error("CheckPassword() should accept the original password")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("CheckPassword() should reject a wrong password")
	}
}
