// Package migrate is the migration engine: the copy-and-swap of tenant data
// when an organization is renamed, and the cascading partition teardown when
// one is deleted.
//
// A rename is a non-atomic multi-step sequence (ensure target partition, copy
// every document, drop the source, commit the registry record). Each step is
// journaled so a crash mid-sequence can be re-driven by Resume at startup
// instead of leaving the registry silently pointing at a stale partition.
package migrate

import (
	"context"

	migrationstore "orgvault/internal/app/store/migrations"
	organizationstore "orgvault/internal/app/store/organizations"
	partitionstore "orgvault/internal/app/store/partitions"
	"orgvault/internal/app/system/apperr"
	"orgvault/internal/app/system/metrics"
	"orgvault/internal/app/system/normalize"
	"orgvault/internal/domain/models"

	"github.com/dalemusser/waffle/pantry/text"
	"go.uber.org/zap"
)

type Engine struct {
	orgs    *organizationstore.Store
	parts   *partitionstore.Store
	journal *migrationstore.Store
	log     *zap.Logger
}

func New(orgs *organizationstore.Store, parts *partitionstore.Store, journal *migrationstore.Store, logger *zap.Logger) *Engine {
	return &Engine{orgs: orgs, parts: parts, journal: journal, log: logger}
}

// Rename migrates org's partition to the name derived from newName and
// commits the new name to the registry record. Document identity is not
// preserved: the target partition assigns fresh _id values, so foreign
// references to old identities dangle.
//
// The caller must hold the organization's lock for the whole call.
func (e *Engine) Rename(ctx context.Context, org models.Organization, newName string) (models.Organization, error) {
	newName = normalize.OrgName(newName)

	taken, err := e.orgs.NameExistsForOther(ctx, text.Fold(newName), org.ID)
	if err != nil {
		return models.Organization{}, apperr.Wrap(apperr.KindUnavailable, "name lookup failed", err)
	}
	if taken {
		return models.Organization{}, apperr.Conflict("organization name already exists")
	}

	newPartition := normalize.Partition(newName)
	if newPartition == org.PartitionName {
		// Same derivation (e.g. a pure case change): no data moves.
		if err := e.orgs.Rename(ctx, org.ID, newName, newPartition); err != nil {
			return models.Organization{}, renameErr(err)
		}
		org.Name = newName
		return org, nil
	}

	partTaken, err := e.orgs.PartitionExistsForOther(ctx, newPartition, org.ID)
	if err != nil {
		return models.Organization{}, apperr.Wrap(apperr.KindUnavailable, "partition lookup failed", err)
	}
	if partTaken {
		return models.Organization{}, apperr.Conflict("organization name already exists")
	}

	entry, err := e.journal.Begin(ctx, org.ID, newName, org.PartitionName, newPartition)
	if err != nil {
		return models.Organization{}, apperr.Wrap(apperr.KindUnavailable, "journal write failed", err)
	}

	if err := e.run(ctx, entry); err != nil {
		return models.Organization{}, err
	}

	org.Name = newName
	org.PartitionName = newPartition
	return org, nil
}

// run drives a journal entry from its current state to completion. It is
// shared by Rename (fresh entries) and Resume (entries recovered after a
// crash).
func (e *Engine) run(ctx context.Context, entry models.Migration) error {
	switch entry.State {
	case models.MigrationPending, models.MigrationPartitionReady:
		// Re-driving a partial copy would duplicate documents, so the
		// target is rebuilt from scratch. The source is still intact in
		// these states.
		if err := e.parts.Drop(ctx, entry.NewPartition); err != nil {
			return apperr.Wrap(apperr.KindUnavailable, "partition reset failed", err)
		}
		if err := e.parts.Ensure(ctx, entry.NewPartition); err != nil {
			return apperr.Wrap(apperr.KindUnavailable, "partition create failed", err)
		}
		if err := e.journal.Advance(ctx, entry.ID, models.MigrationPartitionReady); err != nil {
			return apperr.Wrap(apperr.KindUnavailable, "journal write failed", err)
		}

		copied, err := e.parts.CopyAll(ctx, entry.OldPartition, entry.NewPartition)
		if err != nil {
			return apperr.Wrap(apperr.KindUnavailable, "partition copy failed", err)
		}
		metrics.MigratedDocuments.Add(float64(copied))
		e.log.Info("partition copied",
			zap.String("from", entry.OldPartition),
			zap.String("to", entry.NewPartition),
			zap.Int64("documents", copied))
		if err := e.journal.Advance(ctx, entry.ID, models.MigrationCopied); err != nil {
			return apperr.Wrap(apperr.KindUnavailable, "journal write failed", err)
		}
		fallthrough

	case models.MigrationCopied:
		if err := e.parts.Drop(ctx, entry.OldPartition); err != nil {
			return apperr.Wrap(apperr.KindUnavailable, "partition drop failed", err)
		}
		if err := e.journal.Advance(ctx, entry.ID, models.MigrationSourceDropped); err != nil {
			return apperr.Wrap(apperr.KindUnavailable, "journal write failed", err)
		}
		fallthrough

	case models.MigrationSourceDropped:
		if err := e.orgs.Rename(ctx, entry.OrgID, entry.NewName, entry.NewPartition); err != nil {
			return renameErr(err)
		}
		if err := e.journal.Complete(ctx, entry.ID); err != nil {
			// The rename is committed; a stale journal entry is cleaned
			// up by the next Resume pass.
			e.log.Warn("journal cleanup failed", zap.String("migration", entry.ID), zap.Error(err))
		}
		metrics.OrgsRenamed.Inc()
		return nil

	default:
		e.log.Warn("journal entry in unknown state", zap.String("migration", entry.ID), zap.String("state", entry.State))
		return nil
	}
}

// Teardown drops the organization's partition. Failures are logged and
// swallowed: registry cleanup proceeds regardless, trading a possible
// orphaned partition for guaranteed forward progress on delete.
func (e *Engine) Teardown(ctx context.Context, org models.Organization) {
	if err := e.parts.Drop(ctx, org.PartitionName); err != nil {
		e.log.Warn("partition teardown failed",
			zap.String("organization", org.Name),
			zap.String("partition", org.PartitionName),
			zap.Error(err))
	}
}

// Resume re-drives every journal entry that never reached committed. It runs
// once at startup, before the HTTP handler is built, so requests never see an
// organization whose registry record disagrees with its partition.
func (e *Engine) Resume(ctx context.Context) error {
	entries, err := e.journal.ListIncomplete(ctx)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		org, err := e.orgs.GetByID(ctx, entry.OrgID)
		if err == organizationstore.ErrNotFound {
			// Organization deleted out from under the migration.
			e.log.Info("discarding journal entry for deleted organization", zap.String("migration", entry.ID))
			if err := e.journal.Complete(ctx, entry.ID); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		if org.PartitionName == entry.NewPartition {
			// Commit happened; only the journal cleanup was lost.
			if err := e.journal.Complete(ctx, entry.ID); err != nil {
				return err
			}
			continue
		}

		e.log.Info("resuming interrupted rename migration",
			zap.String("migration", entry.ID),
			zap.String("organization", org.Name),
			zap.String("state", entry.State))
		if err := e.run(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

func renameErr(err error) error {
	if err == organizationstore.ErrDuplicateOrganization {
		return apperr.Conflict("organization name already exists")
	}
	return apperr.Wrap(apperr.KindUnavailable, "registry update failed", err)
}
