package postgres

import (
	"context"
	"testing"

	"github.com/pandey-solutions/saves/internal/pkg/errors"
	"github.com/pandey-solutions/saves/internal/testutil"
	"github.com/pandey-solutions/saves/migrations"
)

func TestSessionRepository_InsertAndFind(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewSessionRepository(db, "sqlite")
	ctx := context.Background()

	created, err := repo.Insert(ctx, "ext-123")
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if created.ID == "" {
		t.Fatal("Insert() did not set session ID")
	}

	got, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.ExternalID != "ext-123" {
		t.Errorf("ExternalID = %q, want ext-123", got.ExternalID)
	}
	if got.RoleArn != nil {
		t.Errorf("RoleArn = %v, want nil", *got.RoleArn)
	}
}

func TestSessionRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewSessionRepository(db, "sqlite")

	_, err := repo.FindByID(context.Background(), "missing")
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("FindByID() error = %v, want NOT_FOUND", err)
	}
}

func TestSessionRepository_UpdateRole(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewSessionRepository(db, "sqlite")
	ctx := context.Background()

	created, err := repo.Insert(ctx, "ext-1")
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	arn := "arn:aws:iam::123456789012:role/SpotSaveReadOnlyRole"
	if err := repo.UpdateRole(ctx, created.ID, arn); err != nil {
		t.Fatalf("UpdateRole() error = %v", err)
	}

	got, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.RoleArn == nil || *got.RoleArn != arn {
		t.Errorf("RoleArn = %v, want %s", got.RoleArn, arn)
	}

	if err := repo.UpdateRole(ctx, "missing", arn); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("UpdateRole(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	// The schema already exists; the first run only records versions
	first, err := RunMigrations(db, migrations.GetFS())
	if err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}
	if len(first) == 0 {
		t.Fatal("RunMigrations() applied nothing on first run")
	}

	second, err := RunMigrations(db, migrations.GetFS())
	if err != nil {
		t.Fatalf("second RunMigrations() error = %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second run applied %v, want none", second)
	}
}

func TestRebind(t *testing.T) {
	q := "UPDATE sessions SET role_arn = ?, updated_at = ? WHERE id = ?"

	if got := rebind("sqlite", q); got != q {
		t.Errorf("rebind(sqlite) = %q", got)
	}
	want := "UPDATE sessions SET role_arn = $1, updated_at = $2 WHERE id = $3"
	if got := rebind("postgres", q); got != want {
		t.Errorf("rebind(postgres) = %q, want %q", got, want)
	}
}
