// internal/domain/models/admin.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is the single administrative credential bound to an organization.
// EmailCI carries the uniqueness constraint; PasswordHash is a bcrypt hash
// and never leaves the store layer.
type Admin struct {
	ID           primitive.ObjectID `bson:"_id"`
	Email        string             `bson:"email"`
	EmailCI      string             `bson:"email_ci"` // ← always stored
	PasswordHash string             `bson:"password"`
	OrgID        primitive.ObjectID `bson:"org_id"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}
