// Package credentials wraps bcrypt hashing and verification for admin
// passwords. Hashing is salted and non-deterministic; verification is a pure
// comparison that never reports why it failed.
package credentials

import "golang.org/x/crypto/bcrypt"

// BcryptCost balances hashing time against login latency.
const BcryptCost = 12

// Hash returns the bcrypt hash of password.
func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. It returns false for any
// mismatch or malformed hash and never panics or errors, so callers cannot
// distinguish a bad password from a corrupt stored hash.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
