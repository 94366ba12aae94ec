package adminstore_test

import (
	"testing"

	adminstore "orgvault/internal/app/store/admins"
	"orgvault/internal/domain/models"
	"orgvault/internal/testutil"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := adminstore.New(db)

	orgID := primitive.NewObjectID()
	admin, err := store.Create(ctx, models.Admin{
		Email:        " Admin@Acme.Test ",
		PasswordHash: "$2a$12$fakehash",
		OrgID:        orgID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if admin.ID.IsZero() {
		t.Error("no id assigned")
	}
	if admin.Email != "admin@acme.test" {
		t.Errorf("email = %q, want normalized", admin.Email)
	}

	got, err := store.GetByEmail(ctx, "ADMIN@acme.test")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != admin.ID || got.OrgID != orgID {
		t.Errorf("got %+v", got)
	}

	byID, err := store.GetByID(ctx, admin.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Email != admin.Email {
		t.Errorf("byID.Email = %q", byID.Email)
	}

	if _, err := store.GetByEmail(ctx, "nobody@acme.test"); err != adminstore.ErrNotFound {
		t.Errorf("missing admin: err = %v, want adminstore.ErrNotFound", err)
	}
}

func TestUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := adminstore.New(db)

	admin, err := store.Create(ctx, models.Admin{
		Email:        "a@acme.test",
		PasswordHash: "hash-one",
		OrgID:        primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Email only; password stays.
	if err := store.Update(ctx, admin.ID, "New@Acme.Test", ""); err != nil {
		t.Fatalf("update email: %v", err)
	}
	got, err := store.GetByID(ctx, admin.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "new@acme.test" {
		t.Errorf("email = %q", got.Email)
	}
	if got.PasswordHash != "hash-one" {
		t.Errorf("password hash changed: %q", got.PasswordHash)
	}

	// Password only; email stays.
	if err := store.Update(ctx, admin.ID, "", "hash-two"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	got, err = store.GetByID(ctx, admin.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "new@acme.test" || got.PasswordHash != "hash-two" {
		t.Errorf("got email=%q hash=%q", got.Email, got.PasswordHash)
	}
}

func TestDeleteByOrg(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := adminstore.New(db)

	orgA := primitive.NewObjectID()
	orgB := primitive.NewObjectID()
	for _, a := range []models.Admin{
		{Email: "one@a.test", PasswordHash: "h", OrgID: orgA},
		{Email: "two@a.test", PasswordHash: "h", OrgID: orgA},
		{Email: "one@b.test", PasswordHash: "h", OrgID: orgB},
	} {
		if _, err := store.Create(ctx, a); err != nil {
			t.Fatalf("create %s: %v", a.Email, err)
		}
	}

	n, err := store.DeleteByOrg(ctx, orgA)
	if err != nil {
		t.Fatalf("delete by org: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d, want 2", n)
	}
	if _, err := store.GetByEmail(ctx, "one@b.test"); err != nil {
		t.Errorf("other org's admin swept up: %v", err)
	}
}
