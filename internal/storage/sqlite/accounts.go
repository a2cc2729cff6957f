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

// CreateAccount inserts a new account into the database.
// A duplicate email surfaces as storage.ErrDuplicateEmail via the
// unique index on accounts.email.
func (s *SQLiteStore) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if account.CreatedAt == 0 {
		account.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO accounts (id, email, password_hash, hospital, role, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		account.ID, account.Email, account.PasswordHash, account.Hospital, account.Role, account.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetAccountByEmail retrieves an account by its exact email address.
func (s *SQLiteStore) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.getAccount(ctx, "email = ?", email)
}

// GetAccountByID retrieves an account by its ID.
func (s *SQLiteStore) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	return s.getAccount(ctx, "id = ?", id)
}

func (s *SQLiteStore) getAccount(ctx context.Context, where string, arg any) (*models.Account, error) {
	account := &models.Account{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, hospital, role, created_at FROM accounts WHERE "+where,
		arg,
	).Scan(&account.ID, &account.Email, &account.PasswordHash, &account.Hospital, &account.Role, &account.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// SearchAccounts returns accounts of the given role whose email or
// hospital contains text, case-insensitively, in insertion order.
func (s *SQLiteStore) SearchAccounts(ctx context.Context, text, role string) ([]models.Account, error) {
	// SQLite LIKE is case-insensitive for ASCII; lower() both sides to
	// keep the behavior predictable for mixed-case input.
	pattern := "%" + text + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, password_hash, hospital, role, created_at
		 FROM accounts
		 WHERE role = ? AND (lower(email) LIKE lower(?) OR lower(hospital) LIKE lower(?))
		 ORDER BY rowid`,
		role, pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Hospital, &a.Role, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}
