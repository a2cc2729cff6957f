package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fedcoord/backend/internal/models"
	"github.com/fedcoord/backend/internal/storage"
)

const iterationColumns = `i.id, i.central_auth_id, i.model_name, i.dataset_domain, i.model_file, i.version, i.created_at, ca.email`

// CreateIteration inserts a new iteration.
func (s *SQLiteStore) CreateIteration(ctx context.Context, iteration *models.Iteration) error {
	if iteration.ID == "" {
		iteration.ID = uuid.New().String()
	}
	if iteration.CreatedAt == 0 {
		iteration.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO iterations (id, central_auth_id, model_name, dataset_domain, model_file, version, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		iteration.ID, iteration.CentralAuthID, iteration.ModelName,
		iteration.DatasetDomain, iteration.ModelFile, iteration.Version, iteration.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create iteration: %w", err)
	}

	return nil
}

// GetIteration retrieves an iteration by ID.
func (s *SQLiteStore) GetIteration(ctx context.Context, id string) (*models.Iteration, error) {
	iteration := &models.Iteration{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+iterationColumns+`
		 FROM iterations i JOIN accounts ca ON ca.id = i.central_auth_id
		 WHERE i.id = ?`,
		id,
	).Scan(
		&iteration.ID, &iteration.CentralAuthID, &iteration.ModelName,
		&iteration.DatasetDomain, &iteration.ModelFile, &iteration.Version,
		&iteration.CreatedAt, &iteration.CentralAuthEmail,
	)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get iteration: %w", err)
	}
	return iteration, nil
}

// ListIterationsByOwner returns the owner's iterations, newest first.
func (s *SQLiteStore) ListIterationsByOwner(ctx context.Context, ownerID string) ([]models.Iteration, error) {
	return s.listIterations(ctx,
		`SELECT `+iterationColumns+`
		 FROM iterations i JOIN accounts ca ON ca.id = i.central_auth_id
		 WHERE i.central_auth_id = ?
		 ORDER BY i.created_at DESC, i.rowid DESC`,
		ownerID,
	)
}

// ListRunningIterations returns the owner's iterations with version > 0,
// highest version first. Running is a derived property of the version
// field; nothing is stored.
func (s *SQLiteStore) ListRunningIterations(ctx context.Context, ownerID string) ([]models.Iteration, error) {
	return s.listIterations(ctx,
		`SELECT `+iterationColumns+`
		 FROM iterations i JOIN accounts ca ON ca.id = i.central_auth_id
		 WHERE i.central_auth_id = ? AND i.version > 0
		 ORDER BY i.version DESC`,
		ownerID,
	)
}

func (s *SQLiteStore) listIterations(ctx context.Context, query string, args ...any) ([]models.Iteration, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list iterations: %w", err)
	}
	defer rows.Close()

	var iterations []models.Iteration
	for rows.Next() {
		var it models.Iteration
		if err := rows.Scan(
			&it.ID, &it.CentralAuthID, &it.ModelName, &it.DatasetDomain,
			&it.ModelFile, &it.Version, &it.CreatedAt, &it.CentralAuthEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan iteration: %w", err)
		}
		iterations = append(iterations, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate iterations: %w", err)
	}

	return iterations, nil
}

// UpdateIteration overwrites the mutable fields of an iteration.
// created_at is deliberately not in the SET list; it is immutable.
func (s *SQLiteStore) UpdateIteration(ctx context.Context, iteration *models.Iteration) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE iterations
		 SET central_auth_id = ?, model_name = ?, dataset_domain = ?, model_file = ?, version = ?
		 WHERE id = ?`,
		iteration.CentralAuthID, iteration.ModelName, iteration.DatasetDomain,
		iteration.ModelFile, iteration.Version, iteration.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update iteration: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}
