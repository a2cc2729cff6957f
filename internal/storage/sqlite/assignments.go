package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fedcoord/backend/internal/models"
	"github.com/fedcoord/backend/internal/storage"
)

// CreateAssignment inserts a new assignment. The unique index on
// assignments.client_id makes this the single enforcement point for the
// one-assignment-per-client rule; a concurrent duplicate insert comes
// back as storage.ErrAlreadyAssigned.
func (s *SQLiteStore) CreateAssignment(ctx context.Context, assignment *models.Assignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.New().String()
	}
	if assignment.AssignedAt == 0 {
		assignment.AssignedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assignments (id, central_auth_id, client_id, data_domain, model_name, iteration_name, assigned_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		assignment.ID, assignment.CentralAuthID, assignment.ClientID,
		assignment.DataDomain, assignment.ModelName, assignment.IterationName, assignment.AssignedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyAssigned
		}
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	return nil
}

// ListAssignmentsByCoordinatorEmail returns the assignments coordinated
// by the account with the given email, joined with both accounts so the
// display fields come back populated. An unknown email yields an empty
// slice, not an error.
func (s *SQLiteStore) ListAssignmentsByCoordinatorEmail(ctx context.Context, email string) ([]models.Assignment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT a.id, a.central_auth_id, a.client_id, a.data_domain, a.model_name, a.iteration_name, a.assigned_at,
		        c.email, c.hospital, ca.email
		 FROM assignments a
		 JOIN accounts ca ON ca.id = a.central_auth_id
		 JOIN accounts c ON c.id = a.client_id
		 WHERE ca.email = ?
		 ORDER BY a.rowid`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(
			&a.ID, &a.CentralAuthID, &a.ClientID, &a.DataDomain, &a.ModelName, &a.IterationName, &a.AssignedAt,
			&a.ClientEmail, &a.ClientHospital, &a.CentralAuthEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	return assignments, nil
}
