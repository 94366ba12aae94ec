// internal/app/store/organizations/organizationstore.go
package organizationstore

import (
	"context"
	"errors"
	"time"

	"orgvault/internal/app/system/normalize"
	"orgvault/internal/domain/models"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateOrganization = errors.New("an organization with this name already exists")
	ErrNotFound              = errors.New("organization not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("organizations")}
}

// Create inserts an organization record, deriving its folded name and
// partition name. An existing folded name or partition name surfaces as
// ErrDuplicateOrganization via the unique indexes.
func (s *Store) Create(ctx context.Context, org models.Organization) (models.Organization, error) {
	now := time.Now().UTC()
	org.ID = primitive.NewObjectID()
	org.Name = normalize.OrgName(org.Name)
	org.NameCI = text.Fold(org.Name)
	if org.PartitionName == "" {
		org.PartitionName = normalize.Partition(org.Name)
	}
	org.CreatedAt = now
	org.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, org)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Organization{}, ErrDuplicateOrganization
		}
		return models.Organization{}, err
	}
	return org, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&org)
	if err == mongo.ErrNoDocuments {
		return models.Organization{}, ErrNotFound
	}
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// GetByName looks an organization up by its folded name.
func (s *Store) GetByName(ctx context.Context, name string) (models.Organization, error) {
	var org models.Organization
	nameCI := text.Fold(normalize.OrgName(name))
	err := s.c.FindOne(ctx, bson.M{"name_ci": nameCI}).Decode(&org)
	if err == mongo.ErrNoDocuments {
		return models.Organization{}, ErrNotFound
	}
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// ExistsByNameCI checks if an organization with the given folded name exists.
func (s *Store) ExistsByNameCI(ctx context.Context, nameCI string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"name_ci": nameCI}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// NameExistsForOther checks if another organization holds the given folded
// name. Used by rename validation so the current record may keep its name.
func (s *Store) NameExistsForOther(ctx context.Context, nameCI string, excludeID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"name_ci": nameCI,
		"_id":     bson.M{"$ne": excludeID},
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PartitionExistsForOther checks if another organization already derives the
// given partition name. Distinct names can normalize identically, so the
// name-uniqueness check alone does not cover this.
func (s *Store) PartitionExistsForOther(ctx context.Context, partition string, excludeID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"partition_name": partition,
		"_id":            bson.M{"$ne": excludeID},
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SetAdmin records the admin reference on an organization. This is the final
// step of the three-step create sequence.
func (s *Store) SetAdmin(ctx context.Context, id, adminID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"admin_id":   adminID,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// Rename updates the organization's name and partition fields together.
// This is the commit point of a rename migration.
func (s *Store) Rename(ctx context.Context, id primitive.ObjectID, newName, newPartition string) error {
	newName = normalize.OrgName(newName)
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"organization_name": newName,
		"name_ci":           text.Fold(newName),
		"partition_name":    newPartition,
		"updated_at":        time.Now().UTC(),
	}})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateOrganization
		}
		return err
	}
	return nil
}

// Delete removes an organization by ID. Returns the number of documents
// deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the number of organizations matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
