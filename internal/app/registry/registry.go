// Package registry implements organization provisioning: account creation,
// lookup, self-service updates, deletion, and admin login. It owns the
// cross-store sequencing; the stores underneath stay single-collection.
package registry

import (
	"context"
	"strings"

	"orgvault/internal/app/migrate"
	adminstore "orgvault/internal/app/store/admins"
	organizationstore "orgvault/internal/app/store/organizations"
	partitionstore "orgvault/internal/app/store/partitions"
	"orgvault/internal/app/system/apperr"
	"orgvault/internal/app/system/auth"
	"orgvault/internal/app/system/credentials"
	"orgvault/internal/app/system/metrics"
	"orgvault/internal/app/system/normalize"
	"orgvault/internal/app/system/orglock"
	"orgvault/internal/app/system/token"
	"orgvault/internal/domain/models"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const minPasswordLength = 6

type Registry struct {
	orgs   *organizationstore.Store
	admins *adminstore.Store
	parts  *partitionstore.Store
	engine *migrate.Engine
	tokens *token.Service
	locks  *orglock.Registry
	log    *zap.Logger
}

func New(
	orgs *organizationstore.Store,
	admins *adminstore.Store,
	parts *partitionstore.Store,
	engine *migrate.Engine,
	tokens *token.Service,
	locks *orglock.Registry,
	logger *zap.Logger,
) *Registry {
	return &Registry{
		orgs:   orgs,
		admins: admins,
		parts:  parts,
		engine: engine,
		tokens: tokens,
		locks:  locks,
		log:    logger,
	}
}

// Organization is the external shape of a registry record. IDs are hex
// strings so callers never touch ObjectIDs.
type Organization struct {
	ID            string `json:"id"`
	Name          string `json:"organization_name"`
	PartitionName string `json:"partition_name"`
	AdminEmail    string `json:"admin_email,omitempty"`
}

// Changes carries the optional fields of an update request. Empty fields are
// left untouched.
type Changes struct {
	Name     string
	Email    string
	Password string
}

// Create provisions an organization: the registry record, its data
// partition, and the admin account that controls it, linked back to the
// record.
//
// The sequence is not transactional. The unique indexes make the racy window
// safe against duplicates, and a crash between steps leaves an organization
// without an admin, which login simply rejects.
func (r *Registry) Create(ctx context.Context, name, email, password string) (Organization, error) {
	name = normalize.OrgName(name)
	email = normalize.Email(email)
	if name == "" {
		return Organization{}, apperr.Validation("organization_name is required")
	}
	if !validEmail(email) {
		return Organization{}, apperr.Validation("email is not a valid address")
	}
	if len(password) < minPasswordLength {
		return Organization{}, apperr.Validation("password must be at least 6 characters")
	}

	exists, err := r.orgs.ExistsByNameCI(ctx, text.Fold(name))
	if err != nil {
		return Organization{}, storeErr("name lookup failed", err)
	}
	if exists {
		return Organization{}, apperr.Conflict("organization already exists")
	}

	partition := normalize.Partition(name)
	taken, err := r.orgs.PartitionExistsForOther(ctx, partition, primitive.NilObjectID)
	if err != nil {
		return Organization{}, storeErr("partition lookup failed", err)
	}
	if taken {
		return Organization{}, apperr.Conflict("organization already exists")
	}

	if err := r.parts.Ensure(ctx, partition); err != nil {
		return Organization{}, storeErr("partition create failed", err)
	}

	org, err := r.orgs.Create(ctx, models.Organization{Name: name, PartitionName: partition})
	if err != nil {
		if err == organizationstore.ErrDuplicateOrganization {
			return Organization{}, apperr.Conflict("organization already exists")
		}
		return Organization{}, storeErr("organization insert failed", err)
	}

	hash, err := credentials.Hash(password)
	if err != nil {
		return Organization{}, apperr.Wrap(apperr.KindInternal, "password hash failed", err)
	}
	admin, err := r.admins.Create(ctx, models.Admin{Email: email, PasswordHash: hash, OrgID: org.ID})
	if err != nil {
		if err == adminstore.ErrDuplicateEmail {
			return Organization{}, apperr.Conflict("email already in use")
		}
		return Organization{}, storeErr("admin insert failed", err)
	}
	if err := r.orgs.SetAdmin(ctx, org.ID, admin.ID); err != nil {
		return Organization{}, storeErr("admin link failed", err)
	}

	metrics.OrgsCreated.Inc()
	r.log.Info("organization created",
		zap.String("organization", org.Name),
		zap.String("partition", org.PartitionName))

	return Organization{
		ID:            org.ID.Hex(),
		Name:          org.Name,
		PartitionName: org.PartitionName,
		AdminEmail:    admin.Email,
	}, nil
}

// Get looks an organization up by name, case-insensitively.
func (r *Registry) Get(ctx context.Context, name string) (Organization, error) {
	org, err := r.orgs.GetByName(ctx, normalize.OrgName(name))
	if err == organizationstore.ErrNotFound {
		return Organization{}, apperr.NotFound("organization not found")
	}
	if err != nil {
		return Organization{}, storeErr("organization lookup failed", err)
	}
	return Organization{
		ID:            org.ID.Hex(),
		Name:          org.Name,
		PartitionName: org.PartitionName,
	}, nil
}

// Update applies the requested changes to the caller's own organization. A
// name change goes through the migration engine; email and password changes
// touch the caller's admin account. All of it runs under the organization's
// lock so a rename cannot interleave with a delete.
func (r *Registry) Update(ctx context.Context, id *auth.Identity, changes Changes) (Organization, error) {
	if changes.Name == "" && changes.Email == "" && changes.Password == "" {
		return Organization{}, apperr.Validation("nothing to update")
	}
	if changes.Email != "" && !validEmail(normalize.Email(changes.Email)) {
		return Organization{}, apperr.Validation("email is not a valid address")
	}
	if changes.Password != "" && len(changes.Password) < minPasswordLength {
		return Organization{}, apperr.Validation("password must be at least 6 characters")
	}

	release := r.locks.Lock(id.OrgID.Hex())
	defer release()

	org, err := r.orgs.GetByID(ctx, id.OrgID)
	if err == organizationstore.ErrNotFound {
		return Organization{}, apperr.NotFound("organization not found")
	}
	if err != nil {
		return Organization{}, storeErr("organization lookup failed", err)
	}

	if name := normalize.OrgName(changes.Name); name != "" && name != org.Name {
		org, err = r.engine.Rename(ctx, org, name)
		if err != nil {
			return Organization{}, err
		}
		r.log.Info("organization renamed",
			zap.String("organization", org.Name),
			zap.String("partition", org.PartitionName))
	}

	var hash string
	if changes.Password != "" {
		hash, err = credentials.Hash(changes.Password)
		if err != nil {
			return Organization{}, apperr.Wrap(apperr.KindInternal, "password hash failed", err)
		}
	}
	if changes.Email != "" || hash != "" {
		if err := r.admins.Update(ctx, id.AdminID, changes.Email, hash); err != nil {
			if err == adminstore.ErrDuplicateEmail {
				return Organization{}, apperr.Conflict("email already in use")
			}
			return Organization{}, storeErr("admin update failed", err)
		}
	}

	return Organization{
		ID:            org.ID.Hex(),
		Name:          org.Name,
		PartitionName: org.PartitionName,
	}, nil
}

// Delete removes the named organization: its partition (best effort), its
// admin accounts, and finally the registry record. Callers may only delete
// their own organization.
func (r *Registry) Delete(ctx context.Context, id *auth.Identity, name string) error {
	org, err := r.orgs.GetByName(ctx, normalize.OrgName(name))
	if err == organizationstore.ErrNotFound {
		return apperr.NotFound("organization not found")
	}
	if err != nil {
		return storeErr("organization lookup failed", err)
	}
	if err := id.AuthorizeScope(org.ID); err != nil {
		return err
	}

	release := r.locks.Lock(org.ID.Hex())
	defer release()

	// Re-read under the lock: a concurrent delete may have won.
	org, err = r.orgs.GetByID(ctx, org.ID)
	if err == organizationstore.ErrNotFound {
		return apperr.NotFound("organization not found")
	}
	if err != nil {
		return storeErr("organization lookup failed", err)
	}

	r.engine.Teardown(ctx, org)

	if _, err := r.admins.DeleteByOrg(ctx, org.ID); err != nil {
		return storeErr("admin delete failed", err)
	}
	if _, err := r.orgs.Delete(ctx, org.ID); err != nil {
		return storeErr("organization delete failed", err)
	}

	metrics.OrgsDeleted.Inc()
	r.log.Info("organization deleted",
		zap.String("organization", org.Name),
		zap.String("partition", org.PartitionName))
	return nil
}

// Login verifies an admin's credentials and issues an access token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (r *Registry) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := r.admins.GetByEmail(ctx, email)
	if err == adminstore.ErrNotFound {
		metrics.Logins.WithLabelValues("denied").Inc()
		return "", apperr.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return "", storeErr("admin lookup failed", err)
	}
	if !credentials.Verify(password, admin.PasswordHash) {
		metrics.Logins.WithLabelValues("denied").Inc()
		return "", apperr.Unauthorized("Invalid credentials")
	}

	tok, err := r.tokens.Issue(admin.ID.Hex(), admin.OrgID.Hex(), r.tokens.TTL())
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "token issue failed", err)
	}
	metrics.Logins.WithLabelValues("ok").Inc()
	return tok, nil
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.Contains(domain, "@")
}

func storeErr(msg string, err error) error {
	return apperr.Wrap(apperr.KindUnavailable, msg, err)
}
