package testutil

import (
	"testing"

	adminstore "orgvault/internal/app/store/admins"
	organizationstore "orgvault/internal/app/store/organizations"
	partitionstore "orgvault/internal/app/store/partitions"
	"orgvault/internal/app/system/credentials"
	"orgvault/internal/domain/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CreateOrganization inserts an organization together with its admin account
// and partition, wired the same way the provisioning flow wires them.
func CreateOrganization(t *testing.T, db *mongo.Database, name, email, password string) (models.Organization, models.Admin) {
	t.Helper()
	ctx := TestContext(t)

	orgs := organizationstore.New(db)
	admins := adminstore.New(db)
	parts := partitionstore.New(db)

	org, err := orgs.Create(ctx, models.Organization{Name: name})
	if err != nil {
		t.Fatalf("create organization %q: %v", name, err)
	}
	if err := parts.Ensure(ctx, org.PartitionName); err != nil {
		t.Fatalf("ensure partition %q: %v", org.PartitionName, err)
	}

	hash, err := credentials.Hash(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admin, err := admins.Create(ctx, models.Admin{Email: email, PasswordHash: hash, OrgID: org.ID})
	if err != nil {
		t.Fatalf("create admin %q: %v", email, err)
	}
	if err := orgs.SetAdmin(ctx, org.ID, admin.ID); err != nil {
		t.Fatalf("set admin: %v", err)
	}

	org.AdminID = admin.ID
	return org, admin
}

// SeedPartition inserts raw documents into a partition collection.
func SeedPartition(t *testing.T, db *mongo.Database, partition string, docs ...interface{}) {
	t.Helper()
	if len(docs) == 0 {
		return
	}
	ctx := TestContext(t)
	if _, err := db.Collection(partition).InsertMany(ctx, docs); err != nil {
		t.Fatalf("seed partition %q: %v", partition, err)
	}
}
