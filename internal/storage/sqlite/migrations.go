package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
//
// The uniqueness invariants of the system live here on purpose: email
// uniqueness and the one-assignment-per-client rule are enforced by
// unique indexes so that concurrent check-then-insert races collapse
// into a constraint violation instead of a duplicate row.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    hospital TEXT NOT NULL,
    role TEXT NOT NULL CHECK (role IN ('central', 'client')),
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS assignments (
    id TEXT PRIMARY KEY,
    central_auth_id TEXT NOT NULL,
    client_id TEXT NOT NULL UNIQUE,
    data_domain TEXT NOT NULL,
    model_name TEXT NOT NULL,
    iteration_name TEXT NOT NULL DEFAULT '',
    assigned_at INTEGER NOT NULL,
    FOREIGN KEY (central_auth_id) REFERENCES accounts(id),
    FOREIGN KEY (client_id) REFERENCES accounts(id)
);

CREATE TABLE IF NOT EXISTS iterations (
    id TEXT PRIMARY KEY,
    central_auth_id TEXT NOT NULL,
    model_name TEXT NOT NULL,
    dataset_domain TEXT NOT NULL,
    model_file TEXT NOT NULL,
    version INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (central_auth_id) REFERENCES accounts(id)
);

CREATE INDEX IF NOT EXISTS idx_assignments_central_auth_id ON assignments(central_auth_id);
CREATE INDEX IF NOT EXISTS idx_iterations_central_auth_id ON iterations(central_auth_id);
CREATE INDEX IF NOT EXISTS idx_accounts_role ON accounts(role);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
