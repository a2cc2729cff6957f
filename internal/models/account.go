package models

// Account roles. A central account coordinates training rounds and owns
// iterations; a client account participates in them and can be assigned
// to at most one central account.
const (
	RoleCentral = "central"
	RoleClient  = "client"
)

// Account represents a registered user of the coordination backend.
type Account struct {
	// ID is the unique identifier for the account (UUID format).
	ID string `json:"id"`

	// Email is the account's email address (unique, exact-match login key).
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the account password.
	// Never serialized in responses.
	PasswordHash string `json:"-"`

	// Hospital is the free-text institution label shown in dashboards.
	Hospital string `json:"hospital"`

	// Role is either RoleCentral or RoleClient. Immutable after signup.
	Role string `json:"role"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"-"`
}
