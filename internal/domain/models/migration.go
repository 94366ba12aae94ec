// internal/domain/models/migration.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Migration states, in order. A journal entry advances monotonically through
// these and is only safe to forget once it reaches MigrationCommitted.
const (
	MigrationPending        = "pending"
	MigrationPartitionReady = "partition_ready"
	MigrationCopied         = "copied"
	MigrationSourceDropped  = "source_dropped"
	MigrationCommitted      = "committed"
)

// Migration is one journaled copy-and-swap of a tenant partition. The journal
// makes the non-transactional rename sequence observable after a crash: an
// entry stuck before MigrationCommitted tells the resume pass exactly which
// step to re-drive.
type Migration struct {
	ID           string             `bson:"_id"` // uuid
	OrgID        primitive.ObjectID `bson:"org_id"`
	NewName      string             `bson:"new_name"`
	OldPartition string             `bson:"old_partition"`
	NewPartition string             `bson:"new_partition"`
	State        string             `bson:"state"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}
