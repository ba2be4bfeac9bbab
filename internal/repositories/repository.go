package repositories

import "context"

// Repository aggregates all entity repositories.
type Repository interface {
	User() UserRepository
	Roster() RosterRepository
	Assignment() AssignmentRepository
	Submission() SubmissionRepository

	// WithTransaction runs fn against a repository bound to a single
	// transaction; any error rolls the whole unit back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
