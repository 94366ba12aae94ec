// internal/domain/models/organization.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization is the registry record for a tenant. Each organization owns
// exactly one dynamically named partition collection and exactly one admin.
//
// NameCI is the case/diacritic-folded form of Name and carries the uniqueness
// constraint; PartitionName is derived deterministically from Name and is
// unique in its own right (see normalize.Partition).
type Organization struct {
	ID            primitive.ObjectID `bson:"_id"`
	Name          string             `bson:"organization_name"`
	NameCI        string             `bson:"name_ci"` // ← always stored
	PartitionName string             `bson:"partition_name"`
	AdminID       primitive.ObjectID `bson:"admin_id,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}
