package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/campusworks/gradebook-service/internal/repositories"
	"github.com/campusworks/gradebook-service/internal/security"
)

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	repo   repositories.Repository
	logger *slog.Logger
	hasher *security.Argon2Hasher

	// Service instances
	authService       AuthService
	classService      ClassService
	enrollmentService EnrollmentService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies.
// Request validation happens in the handlers, so services take no
// validator.
func NewServiceManager(repo repositories.Repository, logger *slog.Logger) ServiceManager {
	return &serviceManager{
		repo:   repo,
		logger: logger,
		hasher: security.NewArgon2Hasher(security.DefaultArgon2Params()),
	}
}

func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if sm.repo == nil {
		return fmt.Errorf("repository is required")
	}

	sm.authService = NewAuthService(sm.repo, sm.hasher, sm.logger)
	sm.classService = NewClassService(sm.repo, sm.logger)
	sm.enrollmentService = NewEnrollmentService(sm.repo, sm.logger)

	sm.initialized = true
	sm.logger.Info("Service manager initialized")
	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.authService
}

func (sm *serviceManager) Class() ClassService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.classService
}

func (sm *serviceManager) Enrollment() EnrollmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.enrollmentService
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	return sm.repo.Ping(ctx)
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down")
	return nil
}
