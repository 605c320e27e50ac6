package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/campusworks/gradebook-service/internal/models"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewStore(client, time.Hour), mr
}

func TestStore_CreateAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, 42, models.UserTypeTeacher)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if token == "" {
		t.Fatal("Create returned an empty token")
	}

	session, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if session.UserID != 42 {
		t.Errorf("Expected user_id 42, got %d", session.UserID)
	}
	if session.UserType != models.UserTypeTeacher {
		t.Errorf("Expected user_type teacher, got %s", session.UserType)
	}
}

func TestStore_TokensAreOpaqueAndUnique(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, 1, models.UserTypeStudent)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := store.Create(ctx, 1, models.UserTypeStudent)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if first == second {
		t.Error("Two sessions for the same user should have distinct tokens")
	}
}

func TestStore_GetUnknownToken(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "not-a-real-token")
	if err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, 7, models.UserTypeStudent)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, token); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound after delete, got %v", err)
	}

	// Second delete of the same token is a no-op success.
	if err := store.Delete(ctx, token); err != nil {
		t.Errorf("Repeated Delete should succeed, got %v", err)
	}
	if err := store.Delete(ctx, ""); err != nil {
		t.Errorf("Delete with empty token should succeed, got %v", err)
	}
}

func TestStore_Expiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewStore(client, time.Minute)
	ctx := context.Background()

	token, err := store.Create(ctx, 9, models.UserTypeStudent)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, token); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound after expiry, got %v", err)
	}
}
