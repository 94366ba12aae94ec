// internal/app/store/admins/adminstore.go
package adminstore

import (
	"context"
	"errors"
	"time"

	"orgvault/internal/app/system/normalize"
	"orgvault/internal/domain/models"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateEmail = errors.New("an admin with this email already exists")
	ErrNotFound       = errors.New("admin not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admins")}
}

// Create inserts an admin record. PasswordHash must already be hashed;
// this store never sees plaintext passwords.
func (s *Store) Create(ctx context.Context, admin models.Admin) (models.Admin, error) {
	now := time.Now().UTC()
	admin.ID = primitive.NewObjectID()
	admin.Email = normalize.Email(admin.Email)
	admin.EmailCI = admin.Email
	admin.CreatedAt = now
	admin.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, admin)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Admin{}, ErrDuplicateEmail
		}
		return models.Admin{}, err
	}
	return admin, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Admin, error) {
	var admin models.Admin
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if err == mongo.ErrNoDocuments {
		return models.Admin{}, ErrNotFound
	}
	if err != nil {
		return models.Admin{}, err
	}
	return admin, nil
}

// GetByEmail looks an admin up by normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.Admin, error) {
	var admin models.Admin
	err := s.c.FindOne(ctx, bson.M{"email_ci": normalize.Email(email)}).Decode(&admin)
	if err == mongo.ErrNoDocuments {
		return models.Admin{}, ErrNotFound
	}
	if err != nil {
		return models.Admin{}, err
	}
	return admin, nil
}

// Update applies email and/or password-hash changes to an admin record.
// Empty fields are left untouched.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, email, passwordHash string) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if email != "" {
		email = normalize.Email(email)
		set["email"] = email
		set["email_ci"] = email
	}
	if passwordHash != "" {
		set["password"] = passwordHash
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// DeleteByOrg removes every admin bound to the organization. The data model
// holds one admin per org, but deleting by org_id also sweeps up any strays
// left by a crashed create sequence.
func (s *Store) DeleteByOrg(ctx context.Context, orgID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"org_id": orgID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
