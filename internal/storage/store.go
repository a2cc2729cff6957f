// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/fedcoord/backend/internal/models"
)

// Sentinel errors returned by Store implementations. Constraint
// violations raised by the underlying database are translated into
// these values so callers can match with errors.Is.
var (
	// ErrNotFound is returned when a looked-up row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when an account insert hits the
	// unique index on email.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrAlreadyAssigned is returned when an assignment insert hits the
	// unique index on the client reference.
	ErrAlreadyAssigned = errors.New("client is already assigned")
)

// Store defines the interface for account, assignment and iteration
// persistence. This abstraction allows swapping storage backends
// (SQLite, PostgreSQL, etc.) without changing the service layer.
type Store interface {
	// CreateAccount persists a new account. The ID and CreatedAt fields
	// are populated by the store when unset. Returns ErrDuplicateEmail
	// if the email is already registered.
	CreateAccount(ctx context.Context, account *models.Account) error

	// GetAccountByEmail retrieves an account by its exact email.
	// Returns ErrNotFound if no such account exists.
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)

	// GetAccountByID retrieves an account by ID.
	// Returns ErrNotFound if no such account exists.
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)

	// SearchAccounts returns all accounts of the given role whose email
	// or hospital contains the text, case-insensitively, in storage order.
	SearchAccounts(ctx context.Context, text, role string) ([]models.Account, error)

	// CreateAssignment persists a new assignment. Returns
	// ErrAlreadyAssigned if the client already has one.
	CreateAssignment(ctx context.Context, assignment *models.Assignment) error

	// ListAssignmentsByCoordinatorEmail returns all assignments whose
	// coordinator's email matches exactly, with display fields resolved.
	ListAssignmentsByCoordinatorEmail(ctx context.Context, email string) ([]models.Assignment, error)

	// CreateIteration persists a new iteration.
	CreateIteration(ctx context.Context, iteration *models.Iteration) error

	// GetIteration retrieves an iteration by ID.
	// Returns ErrNotFound if no such iteration exists.
	GetIteration(ctx context.Context, id string) (*models.Iteration, error)

	// ListIterationsByOwner returns all iterations owned by the account,
	// newest created first.
	ListIterationsByOwner(ctx context.Context, ownerID string) ([]models.Iteration, error)

	// ListRunningIterations returns the owner's iterations with
	// version > 0, ordered by version descending.
	ListRunningIterations(ctx context.Context, ownerID string) ([]models.Iteration, error)

	// UpdateIteration overwrites the mutable fields of an existing
	// iteration. Returns ErrNotFound if the iteration does not exist.
	UpdateIteration(ctx context.Context, iteration *models.Iteration) error

	// Close releases any resources held by the store.
	Close() error
}
