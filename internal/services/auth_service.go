package services

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/campusworks/gradebook-service/internal/models"
	"github.com/campusworks/gradebook-service/internal/repositories"
	"github.com/campusworks/gradebook-service/internal/security"
)

type authService struct {
	repo   repositories.Repository
	hasher *security.Argon2Hasher
	logger *slog.Logger
}

func NewAuthService(repo repositories.Repository, hasher *security.Argon2Hasher, logger *slog.Logger) AuthService {
	return &authService{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (uint, error) {
	s.logger.Info("Registering user", "username", req.Username, "user_type", req.UserType)

	userType := models.UserType(req.UserType)
	if !userType.Valid() {
		return 0, NewValidationError("user_type must be 'student' or 'teacher'")
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return 0, NewPersistenceError("Failed to hash password", err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		UserType:     userType,
	}

	// Uniqueness checks and the insert share one transaction so a
	// concurrent registration cannot slip between them; the unique
	// indexes on username/email backstop the race at the database.
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		taken, err := tx.User().ExistsByUsername(ctx, req.Username)
		if err != nil {
			return NewPersistenceError("Failed to check username", err)
		}
		if taken {
			return NewConflictError("Username already exists")
		}

		taken, err = tx.User().ExistsByEmail(ctx, req.Email)
		if err != nil {
			return NewPersistenceError("Failed to check email", err)
		}
		if taken {
			return NewConflictError("Email already exists")
		}

		if err := tx.User().Create(ctx, user); err != nil {
			return NewPersistenceError("Failed to create user", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*models.User, error) {
	user, err := s.repo.User().GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same failure as a bad password: do not reveal which
			// part of the credential was wrong.
			return nil, NewAuthenticationError("Invalid username or password")
		}
		return nil, NewPersistenceError("Failed to look up user", err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, NewAuthenticationError("Invalid username or password")
	}

	s.logger.Info("User logged in", "user_id", user.ID, "user_type", user.UserType)
	return user, nil
}
