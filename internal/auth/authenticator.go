package auth

import (
	"context"

	"github.com/fedcoord/backend/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, OAuth, etc.)
// without changing the handler code.
type Authenticator interface {
	// Register creates a new account with the given email, hospital label,
	// role and credential. Returns the created account or an error if
	// registration fails.
	Register(ctx context.Context, email, hospital, role, credential string) (*models.Account, error)

	// Authenticate verifies the credentials and returns the account if valid.
	// The same error comes back whether the email or the password was wrong.
	Authenticate(ctx context.Context, email, credential string) (*models.Account, error)

	// ValidateCredential checks if the credential meets the implementation's
	// requirements (length, format, etc.).
	ValidateCredential(credential string) error
}
