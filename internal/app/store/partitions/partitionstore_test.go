package partitionstore_test

import (
	"testing"

	partitionstore "orgvault/internal/app/store/partitions"
	"orgvault/internal/testutil"

	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureExistsDrop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := partitionstore.New(db)

	exists, err := store.Exists(ctx, "org_acme")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatal("partition exists before Ensure")
	}

	if err := store.Ensure(ctx, "org_acme"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	// Idempotent.
	if err := store.Ensure(ctx, "org_acme"); err != nil {
		t.Fatalf("second ensure: %v", err)
	}

	exists, err = store.Exists(ctx, "org_acme")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatal("partition missing after Ensure")
	}

	if err := store.Drop(ctx, "org_acme"); err != nil {
		t.Fatalf("drop: %v", err)
	}
	exists, err = store.Exists(ctx, "org_acme")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatal("partition survives Drop")
	}
	// Dropping a missing partition is a no-op.
	if err := store.Drop(ctx, "org_acme"); err != nil {
		t.Fatalf("second drop: %v", err)
	}
}

func TestPrefixGuard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := partitionstore.New(db)

	// Registry collections must be unreachable through the partition store.
	for _, name := range []string{"organizations", "admins", "migrations", ""} {
		if err := store.Ensure(ctx, name); err != partitionstore.ErrNotPartition {
			t.Errorf("Ensure(%q): err = %v, want partitionstore.ErrNotPartition", name, err)
		}
		if err := store.Drop(ctx, name); err != partitionstore.ErrNotPartition {
			t.Errorf("Drop(%q): err = %v, want partitionstore.ErrNotPartition", name, err)
		}
	}
}

func TestCopyAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := partitionstore.New(db)

	if err := store.Ensure(ctx, "org_src"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	testutil.SeedPartition(t, db, "org_src",
		bson.M{"kind": "report", "n": 1},
		bson.M{"kind": "report", "n": 2},
		bson.M{"kind": "report", "n": 3},
	)
	if err := store.Ensure(ctx, "org_dst"); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	copied, err := store.CopyAll(ctx, "org_src", "org_dst")
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if copied != 3 {
		t.Errorf("copied %d, want 3", copied)
	}

	n, err := store.Count(ctx, "org_dst")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("target holds %d, want 3", n)
	}
	// Source is untouched by the copy itself.
	n, err = store.Count(ctx, "org_src")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("source holds %d, want 3", n)
	}
}

func TestCopyAll_EmptySource(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := partitionstore.New(db)

	if err := store.Ensure(ctx, "org_src"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	copied, err := store.CopyAll(ctx, "org_src", "org_dst")
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if copied != 0 {
		t.Errorf("copied %d, want 0", copied)
	}
}
