package models

// Iteration is a versioned model-artifact record owned by a central
// account. There is no stored status: an iteration counts as running
// exactly when its version is greater than zero.
type Iteration struct {
	// ID is the unique identifier for the iteration (UUID format).
	ID string `json:"id"`

	// CentralAuthID references the owning central account.
	CentralAuthID string `json:"-"`

	// CentralAuthEmail is resolved from the owner account at read time.
	CentralAuthEmail string `json:"central_auth_email"`

	// ModelName names the model being trained (e.g. "ResNet50").
	ModelName string `json:"model_name"`

	// DatasetDomain describes the dataset (e.g. "chest-xray").
	DatasetDomain string `json:"dataset_domain"`

	// ModelFile is the stored path of the uploaded artifact, relative to
	// the media root.
	ModelFile string `json:"model_file"`

	// Version is the caller-supplied iteration version. Not validated for
	// monotonicity.
	Version int `json:"version"`

	// CreatedAt is the Unix timestamp when the iteration was created.
	// Immutable after creation.
	CreatedAt int64 `json:"created_at"`
}

// Running reports whether the iteration counts as a running round.
func (i *Iteration) Running() bool {
	return i.Version > 0
}
