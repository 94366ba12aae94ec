// internal/app/store/migrations/journalstore.go
//
// The journal persists the state machine behind each rename migration
// (pending → partition_ready → copied → source_dropped → committed). The
// rename sequence itself is not transactional; the journal exists so a crash
// mid-sequence is detectable and resumable instead of silently inconsistent.
package migrationstore

import (
	"context"
	"errors"
	"time"

	"orgvault/internal/domain/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("migration not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("migrations")}
}

// Begin journals a new rename migration in the pending state and returns it.
func (s *Store) Begin(ctx context.Context, orgID primitive.ObjectID, newName, oldPartition, newPartition string) (models.Migration, error) {
	now := time.Now().UTC()
	m := models.Migration{
		ID:           uuid.NewString(),
		OrgID:        orgID,
		NewName:      newName,
		OldPartition: oldPartition,
		NewPartition: newPartition,
		State:        models.MigrationPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Migration{}, err
	}
	return m, nil
}

// Advance moves a journal entry to the given state.
func (s *Store) Advance(ctx context.Context, id, state string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"state":      state,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Complete marks the entry committed and removes it. A missing entry is not
// an error: Complete after a crash-resume may run against an entry another
// pass already cleared.
func (s *Store) Complete(ctx context.Context, id string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ListIncomplete returns every journal entry that never reached committed,
// oldest first. Startup feeds these to the migration engine's resume pass.
func (s *Store) ListIncomplete(ctx context.Context) ([]models.Migration, error) {
	cur, err := s.c.Find(ctx, bson.M{"state": bson.M{"$ne": models.MigrationCommitted}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []models.Migration
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetByOrg returns the most recent incomplete entry for an organization.
func (s *Store) GetByOrg(ctx context.Context, orgID primitive.ObjectID) (models.Migration, error) {
	var m models.Migration
	err := s.c.FindOne(ctx, bson.M{"org_id": orgID}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return models.Migration{}, ErrNotFound
	}
	if err != nil {
		return models.Migration{}, err
	}
	return m, nil
}
