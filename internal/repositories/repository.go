package repositories

import "context"

// Repository aggregates all entity repositories behind one interface so
// services can run multi-write operations through WithTransaction.
type Repository interface {
	User() UserRepository
	Class() ClassRepository
	Enrollment() EnrollmentRepository

	// WithTransaction runs fn against a repository bound to a single
	// database transaction. Any error returned by fn rolls back every
	// write made through that repository.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
