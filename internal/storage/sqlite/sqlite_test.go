package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fedcoord/backend/internal/models"
	"github.com/fedcoord/backend/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func mustCreateAccount(t *testing.T, store *SQLiteStore, email, hospital, role string) *models.Account {
	t.Helper()

	account := &models.Account{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Hospital:     hospital,
		Role:         role,
	}
	if err := store.CreateAccount(context.Background(), account); err != nil {
		t.Fatalf("CreateAccount(%s) failed: %v", email, err)
	}
	return account
}

func TestAccounts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateAccount generates ID and timestamp", func(t *testing.T) {
		account := mustCreateAccount(t, store, "central@x.com", "General Hospital", models.RoleCentral)

		if account.ID == "" {
			t.Error("Expected account ID to be generated")
		}
		if account.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("duplicate email is a conflict, not a second row", func(t *testing.T) {
		err := store.CreateAccount(ctx, &models.Account{
			Email:        "central@x.com",
			PasswordHash: "other-hash",
			Hospital:     "Other Hospital",
			Role:         models.RoleCentral,
		})
		if !errors.Is(err, storage.ErrDuplicateEmail) {
			t.Fatalf("Expected ErrDuplicateEmail, got %v", err)
		}

		stored, err := store.GetAccountByEmail(ctx, "central@x.com")
		if err != nil {
			t.Fatalf("GetAccountByEmail failed: %v", err)
		}
		if stored.Hospital != "General Hospital" {
			t.Errorf("Original row was overwritten: hospital = %q", stored.Hospital)
		}
	})

	t.Run("GetAccountByEmail returns ErrNotFound for unknown email", func(t *testing.T) {
		_, err := store.GetAccountByEmail(ctx, "nobody@x.com")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SearchAccounts matches email or hospital case-insensitively", func(t *testing.T) {
		mustCreateAccount(t, store, "alice@clinic.org", "Mercy West", models.RoleClient)
		mustCreateAccount(t, store, "bob@mercy.org", "Seattle Grace", models.RoleClient)
		mustCreateAccount(t, store, "mercy-admin@x.com", "Central Office", models.RoleCentral)

		got, err := store.SearchAccounts(ctx, "MERCY", models.RoleClient)
		if err != nil {
			t.Fatalf("SearchAccounts failed: %v", err)
		}

		if len(got) != 2 {
			t.Fatalf("Expected 2 matches, got %d", len(got))
		}
		// Storage order: alice matched via hospital, bob via email.
		if got[0].Email != "alice@clinic.org" || got[1].Email != "bob@mercy.org" {
			t.Errorf("Unexpected matches: %q, %q", got[0].Email, got[1].Email)
		}
	})
}

func TestAssignments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	central := mustCreateAccount(t, store, "central@x.com", "HQ", models.RoleCentral)
	otherCentral := mustCreateAccount(t, store, "central2@x.com", "HQ2", models.RoleCentral)
	client := mustCreateAccount(t, store, "client@x.com", "Mercy West", models.RoleClient)

	t.Run("CreateAssignment persists and timestamps", func(t *testing.T) {
		assignment := &models.Assignment{
			CentralAuthID: central.ID,
			ClientID:      client.ID,
			DataDomain:    "Healthcare",
			ModelName:     "ModelA",
		}
		if err := store.CreateAssignment(ctx, assignment); err != nil {
			t.Fatalf("CreateAssignment failed: %v", err)
		}
		if assignment.ID == "" || assignment.AssignedAt == 0 {
			t.Error("Expected ID and AssignedAt to be set")
		}
	})

	t.Run("second assignment for the same client conflicts", func(t *testing.T) {
		// A different coordinator does not help; the client column is unique.
		err := store.CreateAssignment(ctx, &models.Assignment{
			CentralAuthID: otherCentral.ID,
			ClientID:      client.ID,
			DataDomain:    "Healthcare",
			ModelName:     "ModelB",
		})
		if !errors.Is(err, storage.ErrAlreadyAssigned) {
			t.Fatalf("Expected ErrAlreadyAssigned, got %v", err)
		}
	})

	t.Run("ListAssignmentsByCoordinatorEmail resolves display fields", func(t *testing.T) {
		got, err := store.ListAssignmentsByCoordinatorEmail(ctx, "central@x.com")
		if err != nil {
			t.Fatalf("ListAssignmentsByCoordinatorEmail failed: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("Expected 1 assignment, got %d", len(got))
		}
		a := got[0]
		if a.ClientEmail != "client@x.com" || a.ClientHospital != "Mercy West" || a.CentralAuthEmail != "central@x.com" {
			t.Errorf("Display fields not resolved: %+v", a)
		}
	})

	t.Run("unknown coordinator email yields empty list", func(t *testing.T) {
		got, err := store.ListAssignmentsByCoordinatorEmail(ctx, "nobody@x.com")
		if err != nil {
			t.Fatalf("ListAssignmentsByCoordinatorEmail failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Expected no assignments, got %d", len(got))
		}
	})
}

func TestIterations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	central := mustCreateAccount(t, store, "central@x.com", "HQ", models.RoleCentral)

	seed := []models.Iteration{
		{CentralAuthID: central.ID, ModelName: "ResNet50", DatasetDomain: "chest-xray", ModelFile: "models/a.bin", Version: 1, CreatedAt: 100},
		{CentralAuthID: central.ID, ModelName: "DenseNet", DatasetDomain: "chest-xray", ModelFile: "models/b.bin", Version: 3, CreatedAt: 200},
		{CentralAuthID: central.ID, ModelName: "UNet", DatasetDomain: "ct-scan", ModelFile: "models/c.bin", Version: 0, CreatedAt: 300},
	}
	for i := range seed {
		if err := store.CreateIteration(ctx, &seed[i]); err != nil {
			t.Fatalf("CreateIteration(%s) failed: %v", seed[i].ModelName, err)
		}
	}

	t.Run("ListIterationsByOwner orders newest first", func(t *testing.T) {
		got, err := store.ListIterationsByOwner(ctx, central.ID)
		if err != nil {
			t.Fatalf("ListIterationsByOwner failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("Expected 3 iterations, got %d", len(got))
		}
		if got[0].ModelName != "UNet" || got[1].ModelName != "DenseNet" || got[2].ModelName != "ResNet50" {
			t.Errorf("Wrong order: %s, %s, %s", got[0].ModelName, got[1].ModelName, got[2].ModelName)
		}
		if got[0].CentralAuthEmail != "central@x.com" {
			t.Errorf("Owner email not resolved: %q", got[0].CentralAuthEmail)
		}
	})

	t.Run("ListRunningIterations filters version>0 and sorts by version", func(t *testing.T) {
		got, err := store.ListRunningIterations(ctx, central.ID)
		if err != nil {
			t.Fatalf("ListRunningIterations failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("Expected 2 running iterations, got %d", len(got))
		}
		if got[0].ModelName != "DenseNet" || got[1].ModelName != "ResNet50" {
			t.Errorf("Wrong order: %s, %s", got[0].ModelName, got[1].ModelName)
		}
		for _, it := range got {
			if it.Version <= 0 {
				t.Errorf("Iteration %s with version %d should not be running", it.ModelName, it.Version)
			}
		}
	})

	t.Run("UpdateIteration preserves created_at", func(t *testing.T) {
		it := seed[0]
		it.Version = 7
		if err := store.UpdateIteration(ctx, &it); err != nil {
			t.Fatalf("UpdateIteration failed: %v", err)
		}

		stored, err := store.GetIteration(ctx, it.ID)
		if err != nil {
			t.Fatalf("GetIteration failed: %v", err)
		}
		if stored.Version != 7 {
			t.Errorf("Version not updated: got %d", stored.Version)
		}
		if stored.CreatedAt != 100 {
			t.Errorf("CreatedAt changed on update: got %d", stored.CreatedAt)
		}
	})

	t.Run("UpdateIteration returns ErrNotFound for unknown id", func(t *testing.T) {
		err := store.UpdateIteration(ctx, &models.Iteration{
			ID:            "nonexistent-id",
			CentralAuthID: central.ID,
			ModelName:     "x",
			DatasetDomain: "y",
			ModelFile:     "z",
		})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	})
}
