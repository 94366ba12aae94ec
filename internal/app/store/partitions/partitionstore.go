// internal/app/store/partitions/partitionstore.go
//
// Tenant partitions are dynamically named collections. This store is the only
// code in the service that touches them; everything else goes through the
// registry and migration engine, which speak in partition names.
package partitionstore

import (
	"context"
	"errors"
	"strings"

	"orgvault/internal/app/system/normalize"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotPartition rejects operations on names outside the tenant namespace,
// so a bug upstream can never drop a system collection.
var ErrNotPartition = errors.New("name is not a tenant partition")

// copyBatchSize bounds the InsertMany batches used by CopyAll.
const copyBatchSize = 500

type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func guard(name string) error {
	if !strings.HasPrefix(name, normalize.PartitionPrefix) {
		return ErrNotPartition
	}
	return nil
}

// Exists reports whether the partition collection currently exists.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	if err := guard(name); err != nil {
		return false, err
	}
	names, err := s.db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// Ensure creates the partition collection if it does not already exist.
// It is idempotent and tolerates a partition orphaned by a failed prior
// attempt, including a concurrent create racing this one.
func (s *Store) Ensure(ctx context.Context, name string) error {
	if err := guard(name); err != nil {
		return err
	}
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	err = s.db.CreateCollection(ctx, name)
	if err != nil {
		// NamespaceExists: lost a race with another create, which is fine.
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Code == 48 {
			return nil
		}
		return err
	}
	return nil
}

// Drop removes the partition collection and everything in it. Dropping a
// collection that does not exist is a no-op for the driver.
func (s *Store) Drop(ctx context.Context, name string) error {
	if err := guard(name); err != nil {
		return err
	}
	return s.db.Collection(name).Drop(ctx)
}

// Count returns the number of documents in the partition.
func (s *Store) Count(ctx context.Context, name string) (int64, error) {
	if err := guard(name); err != nil {
		return 0, err
	}
	return s.db.Collection(name).CountDocuments(ctx, bson.M{})
}

// CopyAll streams every document from one partition into another, dropping
// the store-assigned _id so the target assigns fresh identities. Returns the
// number of documents copied. The copy is resumable in the sense that
// re-running it against a recreated empty target yields the same result; it
// is not transactional with respect to concurrent writers.
func (s *Store) CopyAll(ctx context.Context, from, to string) (int64, error) {
	if err := guard(from); err != nil {
		return 0, err
	}
	if err := guard(to); err != nil {
		return 0, err
	}

	cur, err := s.db.Collection(from).Find(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	target := s.db.Collection(to)
	var copied int64
	batch := make([]interface{}, 0, copyBatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if _, err := target.InsertMany(ctx, batch); err != nil {
			return err
		}
		copied += int64(len(batch))
		batch = batch[:0]
		return nil
	}

	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return copied, err
		}
		delete(doc, "_id")
		batch = append(batch, doc)
		if len(batch) == copyBatchSize {
			if err := flush(); err != nil {
				return copied, err
			}
		}
	}
	if err := cur.Err(); err != nil {
		return copied, err
	}
	if err := flush(); err != nil {
		return copied, err
	}
	return copied, nil
}
