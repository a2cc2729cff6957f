package models

// Assignment links one client account to the central account that
// coordinates it. A client appears in at most one assignment; the
// uniqueness lives in the storage schema, not in application checks.
type Assignment struct {
	// ID is the unique identifier for the assignment (UUID format).
	ID string `json:"id"`

	// CentralAuthID references the coordinating central account.
	CentralAuthID string `json:"-"`

	// ClientID references the assigned client account (unique).
	ClientID string `json:"-"`

	// DataDomain describes the data the client contributes (e.g. "Healthcare").
	DataDomain string `json:"data_domain"`

	// ModelName is the model the client is assigned to train.
	ModelName string `json:"model_name"`

	// IterationName optionally tags the training round.
	IterationName string `json:"iteration_name,omitempty"`

	// AssignedAt is the Unix timestamp when the assignment was created.
	AssignedAt int64 `json:"assigned_at"`

	// Display fields resolved from the referenced accounts at read time.
	ClientEmail      string `json:"client_email"`
	ClientHospital   string `json:"client_hospital"`
	CentralAuthEmail string `json:"central_auth_email"`
}
