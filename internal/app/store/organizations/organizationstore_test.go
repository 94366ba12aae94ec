package organizationstore_test

import (
	"testing"

	organizationstore "orgvault/internal/app/store/organizations"
	"orgvault/internal/domain/models"
	"orgvault/internal/testutil"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := organizationstore.New(db)

	org, err := store.Create(ctx, models.Organization{Name: " Acme Corp "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if org.ID.IsZero() {
		t.Error("no id assigned")
	}
	if org.Name != "Acme Corp" {
		t.Errorf("name = %q, want trimmed", org.Name)
	}
	if org.NameCI != "acme corp" {
		t.Errorf("name_ci = %q", org.NameCI)
	}
	if org.PartitionName != "org_acme_corp" {
		t.Errorf("partition = %q", org.PartitionName)
	}
	if org.CreatedAt.IsZero() || org.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestGetByName_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := organizationstore.New(db)

	created, err := store.Create(ctx, models.Organization{Name: "Acme Corp"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, name := range []string{"Acme Corp", "ACME CORP", "  acme corp  "} {
		got, err := store.GetByName(ctx, name)
		if err != nil {
			t.Errorf("GetByName(%q): %v", name, err)
			continue
		}
		if got.ID != created.ID {
			t.Errorf("GetByName(%q) = %s, want %s", name, got.ID.Hex(), created.ID.Hex())
		}
	}

	if _, err := store.GetByName(ctx, "missing"); err != organizationstore.ErrNotFound {
		t.Errorf("missing org: err = %v, want organizationstore.ErrNotFound", err)
	}
}

func TestRename(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := organizationstore.New(db)

	org, err := store.Create(ctx, models.Organization{Name: "Acme Corp"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.Rename(ctx, org.ID, "Globex Inc", "org_globex_inc"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	got, err := store.GetByID(ctx, org.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Globex Inc" || got.NameCI != "globex inc" || got.PartitionName != "org_globex_inc" {
		t.Errorf("after rename: %+v", got)
	}
	if got.UpdatedAt.Before(org.UpdatedAt) {
		t.Error("updated_at went backwards")
	}
}

func TestExistenceChecks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := organizationstore.New(db)

	org, err := store.Create(ctx, models.Organization{Name: "Acme Corp"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	exists, err := store.ExistsByNameCI(ctx, "acme corp")
	if err != nil || !exists {
		t.Errorf("ExistsByNameCI = %v, %v; want true", exists, err)
	}

	// The record itself is excluded when its own id is passed.
	taken, err := store.NameExistsForOther(ctx, "acme corp", org.ID)
	if err != nil || taken {
		t.Errorf("NameExistsForOther(self) = %v, %v; want false", taken, err)
	}
	taken, err = store.NameExistsForOther(ctx, "acme corp", primitive.NewObjectID())
	if err != nil || !taken {
		t.Errorf("NameExistsForOther(other) = %v, %v; want true", taken, err)
	}

	taken, err = store.PartitionExistsForOther(ctx, "org_acme_corp", org.ID)
	if err != nil || taken {
		t.Errorf("PartitionExistsForOther(self) = %v, %v; want false", taken, err)
	}
	taken, err = store.PartitionExistsForOther(ctx, "org_acme_corp", primitive.NilObjectID)
	if err != nil || !taken {
		t.Errorf("PartitionExistsForOther(nil) = %v, %v; want true", taken, err)
	}
}

func TestSetAdminAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := organizationstore.New(db)

	org, err := store.Create(ctx, models.Organization{Name: "Acme Corp"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	adminID := primitive.NewObjectID()
	if err := store.SetAdmin(ctx, org.ID, adminID); err != nil {
		t.Fatalf("set admin: %v", err)
	}
	got, err := store.GetByID(ctx, org.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.AdminID != adminID {
		t.Errorf("admin_id = %s, want %s", got.AdminID.Hex(), adminID.Hex())
	}

	n, err := store.Delete(ctx, org.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}
	if _, err := store.GetByID(ctx, org.ID); err != organizationstore.ErrNotFound {
		t.Errorf("after delete: err = %v, want organizationstore.ErrNotFound", err)
	}
	// Deleting again is a no-op, not an error.
	if n, err := store.Delete(ctx, org.ID); err != nil || n != 0 {
		t.Errorf("second delete = %d, %v", n, err)
	}
}
