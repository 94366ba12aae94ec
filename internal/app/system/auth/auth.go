// Package auth is the authorization gate for tenant-scoped mutations. It
// validates bearer tokens, resolves them to a live admin record, and checks
// that the admin's bound organization matches the one a request targets.
//
// Every authentication failure (expired token, bad signature, missing
// claims, deleted admin) collapses to the same 401 externally. The concrete
// cause is kept internally for logging only.
package auth

import (
	"context"
	"net/http"
	"strings"

	adminstore "orgvault/internal/app/store/admins"
	"orgvault/internal/app/system/apperr"
	"orgvault/internal/app/system/httpjson"
	"orgvault/internal/app/system/timeouts"
	"orgvault/internal/app/system/token"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Identity is an authenticated admin together with the organization scope
// its token grants. It is what handlers receive from the request context.
type Identity struct {
	AdminID primitive.ObjectID
	OrgID   primitive.ObjectID
	Email   string
}

// AuthorizeScope confirms the identity's bound organization is the one the
// operation targets. Any mismatch is Forbidden, regardless of whether the
// identity is otherwise valid.
func (id *Identity) AuthorizeScope(targetOrg primitive.ObjectID) error {
	if id.OrgID != targetOrg {
		return apperr.Forbidden("not authorized for this organization")
	}
	return nil
}

type ctxKey string

const identityKey ctxKey = "authIdentity"

// CurrentIdentity returns the identity placed in the request context by
// RequireAdmin, and whether one was present.
func CurrentIdentity(r *http.Request) (*Identity, bool) {
	id, ok := r.Context().Value(identityKey).(*Identity)
	return id, ok
}

// Gate validates tokens and resolves them against the admin store.
type Gate struct {
	tokens *token.Service
	admins *adminstore.Store
	log    *zap.Logger
}

func NewGate(tokens *token.Service, admins *adminstore.Store, logger *zap.Logger) *Gate {
	return &Gate{tokens: tokens, admins: admins, log: logger}
}

// Authenticate validates a raw bearer token and resolves it to an Identity.
// The admin lookup doubles as revocation-by-deletion: a token for a deleted
// admin is as dead as an expired one.
func (g *Gate) Authenticate(ctx context.Context, raw string) (*Identity, error) {
	claims, err := g.tokens.Validate(raw)
	if err != nil {
		g.log.Debug("token validation failed", zap.Error(err))
		return nil, apperr.Unauthorized("invalid or expired token")
	}

	adminID, err := primitive.ObjectIDFromHex(claims.AdminID)
	if err != nil {
		g.log.Debug("token carries malformed admin id", zap.String("admin_id", claims.AdminID))
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	orgID, err := primitive.ObjectIDFromHex(claims.OrgID)
	if err != nil {
		g.log.Debug("token carries malformed org id", zap.String("org_id", claims.OrgID))
		return nil, apperr.Unauthorized("invalid or expired token")
	}

	admin, err := g.admins.GetByID(ctx, adminID)
	if err != nil {
		if err == adminstore.ErrNotFound {
			g.log.Debug("token admin no longer exists", zap.String("admin_id", claims.AdminID))
			return nil, apperr.Unauthorized("invalid or expired token")
		}
		return nil, apperr.Wrap(apperr.KindUnavailable, "admin lookup failed", err)
	}

	return &Identity{AdminID: admin.ID, OrgID: orgID, Email: admin.Email}, nil
}

// RequireAdmin is the middleware protecting mutating routes. It extracts the
// bearer token, authenticates it, and injects the Identity into the request
// context for handlers to pick up via CurrentIdentity.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			httpjson.Error(w, g.log, apperr.Unauthorized("missing bearer token"))
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		identity, err := g.Authenticate(ctx, raw)
		if err != nil {
			httpjson.Error(w, g.log, err)
			return
		}

		r = r.WithContext(context.WithValue(r.Context(), identityKey, identity))
		next.ServeHTTP(w, r)
	})
}

// WithTestIdentity injects an identity into the request context, bypassing
// token validation. Test helper only.
func WithTestIdentity(r *http.Request, id *Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}
