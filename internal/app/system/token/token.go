// Package token issues and validates the signed identity tokens that bind an
// authenticated admin to a single organization. Tokens are HS256 JWTs carrying
// {admin_id, org_id} plus a registered expiry claim; validity is purely a
// function of signature and expiry at verification time; nothing is persisted
// and there is no revocation list.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired marks a structurally valid token whose expiry has passed.
	ErrExpired = errors.New("token expired")
	// ErrMalformed covers every other validation failure: bad signature,
	// unparseable structure, wrong algorithm, or missing required claims.
	ErrMalformed = errors.New("token malformed")
)

// Claims is the JWT payload for an admin identity token.
type Claims struct {
	AdminID string `json:"admin_id"`
	OrgID   string `json:"org_id"`
	jwt.RegisteredClaims
}

// Service signs and verifies identity tokens with a process-wide secret.
// The secret is configuration-supplied and rotated only by restart.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// New builds a Service with the given signing secret and default token TTL.
func New(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// TTL returns the default lifetime applied by Issue when ttl <= 0.
func (s *Service) TTL() time.Duration { return s.ttl }

// Issue creates a signed token scoping adminID to orgID. A non-positive ttl
// falls back to the service default.
func (s *Service) Issue(adminID, orgID string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	now := time.Now()
	claims := Claims{
		AdminID: adminID,
		OrgID:   orgID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// Validate parses and verifies raw. It returns ErrExpired when the embedded
// expiry has passed and ErrMalformed for every other failure, including
// tokens that verify but lack admin_id or org_id. There is no partial
// success: a non-nil error means none of the claims may be trusted.
func (s *Service) Validate(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrMalformed
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformed
	}
	if claims.AdminID == "" || claims.OrgID == "" {
		return nil, ErrMalformed
	}
	if claims.ExpiresAt == nil {
		return nil, ErrMalformed
	}
	return claims, nil
}
