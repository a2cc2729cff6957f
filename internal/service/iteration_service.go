package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fedcoord/backend/internal/models"
	"github.com/fedcoord/backend/internal/storage"
)

// IterationService handles versioned model-iteration records.
type IterationService struct {
	store storage.Store
}

// NewIterationService creates a new IterationService with the given storage backend.
func NewIterationService(store storage.Store) *IterationService {
	return &IterationService{store: store}
}

// CreateIterationParams carries the fields of a start-iteration request.
type CreateIterationParams struct {
	CentralAuthID string
	ModelName     string
	DatasetDomain string
	ModelFile     string
	Version       int
}

// Create starts a new iteration owned by a central account.
func (s *IterationService) Create(ctx context.Context, params CreateIterationParams) (*models.Iteration, error) {
	slog.Info("Create iteration request received",
		"central_auth_id", params.CentralAuthID,
		"model_name", params.ModelName,
		"version", params.Version,
	)

	owner, err := s.lookupOwner(ctx, params.CentralAuthID)
	if err != nil {
		return nil, err
	}

	iteration := &models.Iteration{
		CentralAuthID:    owner.ID,
		CentralAuthEmail: owner.Email,
		ModelName:        params.ModelName,
		DatasetDomain:    params.DatasetDomain,
		ModelFile:        params.ModelFile,
		Version:          params.Version,
	}

	if err := s.store.CreateIteration(ctx, iteration); err != nil {
		slog.Error("Create iteration failed", "error", err)
		return nil, err
	}

	slog.Info("Iteration created", "iteration_id", iteration.ID, "model_name", iteration.ModelName)

	return iteration, nil
}

// ListByOwner returns the central account's iterations, newest first.
// Returns ErrCentralNotFound if the user is missing or not central.
func (s *IterationService) ListByOwner(ctx context.Context, ownerID string) ([]models.Iteration, error) {
	if err := s.requireCentral(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.store.ListIterationsByOwner(ctx, ownerID)
}

// ListRunning returns the central account's iterations with version > 0,
// ordered by version descending. Same preconditions as ListByOwner.
func (s *IterationService) ListRunning(ctx context.Context, ownerID string) ([]models.Iteration, error) {
	if err := s.requireCentral(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.store.ListRunningIterations(ctx, ownerID)
}

// UpdateIterationParams carries a partial update. Nil fields are left
// untouched on the stored record.
type UpdateIterationParams struct {
	CentralAuthID *string
	ModelName     *string
	DatasetDomain *string
	ModelFile     *string
	Version       *int
}

// Update applies a partial update to an iteration. A supplied owner may
// only confirm the current owner: a different account, even a valid
// central one, is rejected with ErrOwnerMismatch. This is an ownership
// re-check, not a transfer mechanism.
func (s *IterationService) Update(ctx context.Context, id string, params UpdateIterationParams) (*models.Iteration, error) {
	slog.Info("Update iteration request received", "iteration_id", id)

	iteration, err := s.store.GetIteration(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.CentralAuthID != nil {
		provided, err := s.store.GetAccountByID(ctx, *params.CentralAuthID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrOwnerNotFound
			}
			return nil, err
		}
		if provided.Role != models.RoleCentral {
			return nil, ErrOwnerNotCentral
		}
		if provided.ID != iteration.CentralAuthID {
			slog.Warn("Update iteration rejected: owner mismatch",
				"iteration_id", id,
				"provided", provided.ID,
				"owner", iteration.CentralAuthID,
			)
			return nil, ErrOwnerMismatch
		}
	}

	if params.ModelName != nil {
		iteration.ModelName = *params.ModelName
	}
	if params.DatasetDomain != nil {
		iteration.DatasetDomain = *params.DatasetDomain
	}
	if params.ModelFile != nil {
		iteration.ModelFile = *params.ModelFile
	}
	if params.Version != nil {
		iteration.Version = *params.Version
	}

	if err := s.store.UpdateIteration(ctx, iteration); err != nil {
		slog.Error("Update iteration failed", "iteration_id", id, "error", err)
		return nil, err
	}

	slog.Info("Iteration updated", "iteration_id", id, "version", iteration.Version)

	return iteration, nil
}

// lookupOwner resolves an owner reference for iteration creation and
// update payloads.
func (s *IterationService) lookupOwner(ctx context.Context, id string) (*models.Account, error) {
	owner, err := s.store.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}
	if owner.Role != models.RoleCentral {
		return nil, ErrOwnerNotCentral
	}
	return owner, nil
}

// requireCentral resolves a user reference for listing endpoints, where
// a missing or non-central user reads as not found.
func (s *IterationService) requireCentral(ctx context.Context, id string) error {
	account, err := s.store.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrCentralNotFound
		}
		return err
	}
	if account.Role != models.RoleCentral {
		return ErrCentralNotFound
	}
	return nil
}
