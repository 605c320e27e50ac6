package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/campusworks/gradebook-service/internal/models"
	"github.com/campusworks/gradebook-service/internal/security"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAuthService(repo *memoryRepository) AuthService {
	return NewAuthService(repo, security.NewArgon2Hasher(security.DefaultArgon2Params()), testLogger())
}

func registerRequest(username, email, userType string) *RegisterRequest {
	return &RegisterRequest{
		Username:  username,
		Password:  "password123",
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		UserType:  userType,
	}
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newMemoryRepository()
	service := newTestAuthService(repo)
	ctx := context.Background()

	userID, err := service.Register(ctx, registerRequest("alice", "alice@school.edu", "student"))
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}
	if userID == 0 {
		t.Fatal("Expected non-zero user id")
	}

	user, err := service.Login(ctx, &LoginRequest{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("Failed to log in: %v", err)
	}
	if user.ID != userID {
		t.Errorf("Expected user id %d, got %d", userID, user.ID)
	}
	if user.UserType != models.UserTypeStudent {
		t.Errorf("Expected user type student, got %s", user.UserType)
	}
	if user.PasswordHash == "password123" {
		t.Error("Password was stored in plaintext")
	}
}

func TestAuthService_RegisterDuplicates(t *testing.T) {
	repo := newMemoryRepository()
	service := newTestAuthService(repo)
	ctx := context.Background()

	if _, err := service.Register(ctx, registerRequest("alice", "alice@school.edu", "student")); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	t.Run("DuplicateUsername", func(t *testing.T) {
		_, err := service.Register(ctx, registerRequest("alice", "other@school.edu", "student"))
		if err == nil {
			t.Fatal("Expected duplicate username to be rejected")
		}
		if KindOf(err) != KindConflict {
			t.Errorf("Expected conflict, got kind %d", KindOf(err))
		}
		if MessageOf(err) != "Username already exists" {
			t.Errorf("Unexpected message: %s", MessageOf(err))
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := service.Register(ctx, registerRequest("bob", "alice@school.edu", "teacher"))
		if err == nil {
			t.Fatal("Expected duplicate email to be rejected")
		}
		if KindOf(err) != KindConflict {
			t.Errorf("Expected conflict, got kind %d", KindOf(err))
		}
		if MessageOf(err) != "Email already exists" {
			t.Errorf("Unexpected message: %s", MessageOf(err))
		}
	})
}

func TestAuthService_RegisterInvalidUserType(t *testing.T) {
	repo := newMemoryRepository()
	service := newTestAuthService(repo)

	_, err := service.Register(context.Background(), registerRequest("alice", "alice@school.edu", "admin"))
	if err == nil {
		t.Fatal("Expected invalid user type to be rejected")
	}
	if KindOf(err) != KindValidation {
		t.Errorf("Expected validation error, got kind %d", KindOf(err))
	}
}

func TestAuthService_LoginFailures(t *testing.T) {
	repo := newMemoryRepository()
	service := newTestAuthService(repo)
	ctx := context.Background()

	if _, err := service.Register(ctx, registerRequest("alice", "alice@school.edu", "student")); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "WrongPassword", username: "alice", password: "wrong"},
		{name: "UnknownUser", username: "nobody", password: "password123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(ctx, &LoginRequest{Username: tt.username, Password: tt.password})
			if err == nil {
				t.Fatal("Expected login to fail")
			}
			if KindOf(err) != KindUnauthenticated {
				t.Errorf("Expected authentication error, got kind %d", KindOf(err))
			}
			// Unknown user and wrong password are indistinguishable.
			if MessageOf(err) != "Invalid username or password" {
				t.Errorf("Unexpected message: %s", MessageOf(err))
			}
		})
	}
}
