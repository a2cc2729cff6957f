package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fedcoord/backend/internal/models"
	"github.com/fedcoord/backend/internal/storage"
)

// AssignmentService handles client-to-coordinator assignments.
type AssignmentService struct {
	store storage.Store
}

// NewAssignmentService creates a new AssignmentService with the given storage backend.
func NewAssignmentService(store storage.Store) *AssignmentService {
	return &AssignmentService{store: store}
}

// AssignParams carries the fields of an assignment request.
type AssignParams struct {
	CentralAuthID string
	ClientID      string
	DataDomain    string
	ModelName     string
	IterationName string
}

// Assign links a client to a central account. Both references must
// resolve to accounts with the expected roles; a client that already
// has an assignment is rejected. The duplicate check is the unique
// index on the client column, so two racing assigns cannot both win.
func (s *AssignmentService) Assign(ctx context.Context, params AssignParams) (*models.Assignment, error) {
	slog.Info("Assign request received",
		"central_auth_id", params.CentralAuthID,
		"client_id", params.ClientID,
		"model_name", params.ModelName,
	)

	central, err := s.store.GetAccountByID(ctx, params.CentralAuthID)
	if err != nil || central.Role != models.RoleCentral {
		return nil, ErrInvalidReference
	}
	client, err := s.store.GetAccountByID(ctx, params.ClientID)
	if err != nil || client.Role != models.RoleClient {
		return nil, ErrInvalidReference
	}

	assignment := &models.Assignment{
		CentralAuthID: central.ID,
		ClientID:      client.ID,
		DataDomain:    params.DataDomain,
		ModelName:     params.ModelName,
		IterationName: params.IterationName,
	}

	if err := s.store.CreateAssignment(ctx, assignment); err != nil {
		slog.Warn("Assign failed", "client_id", params.ClientID, "error", err)
		return nil, err
	}

	assignment.ClientEmail = client.Email
	assignment.ClientHospital = client.Hospital
	assignment.CentralAuthEmail = central.Email

	slog.Info("Client assigned", "assignment_id", assignment.ID, "client_email", client.Email)

	return assignment, nil
}

// ListByCoordinatorEmail returns all assignments coordinated by the
// account with the given email. An unknown coordinator is not an error;
// it just has no assignments.
func (s *AssignmentService) ListByCoordinatorEmail(ctx context.Context, email string) ([]models.Assignment, error) {
	assignments, err := s.store.ListAssignmentsByCoordinatorEmail(ctx, email)
	if err != nil {
		slog.Error("ListByCoordinatorEmail failed", "email", email, "error", err)
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}
