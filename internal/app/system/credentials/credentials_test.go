package credentials

import (
	"strings"
	"testing"
)

func TestHash_ProducesBcryptHash(t *testing.T) {
	hash, err := Hash("SecurePass123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	// bcrypt hashes start with $2a$ or $2b$
	if !strings.HasPrefix(hash, "$2") {
		t.Error("expected bcrypt hash to start with $2")
	}
	if hash == "SecurePass123" {
		t.Error("hash must not equal the plaintext password")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	h1, err := Hash("same-password")
	if err != nil {
		t.Fatalf("first Hash failed: %v", err)
	}
	h2, err := Hash("same-password")
	if err != nil {
		t.Fatalf("second Hash failed: %v", err)
	}

	// bcrypt uses random salt, so hashes should be different
	if h1 == h2 {
		t.Error("expected different hashes for the same password")
	}
}

func TestVerify_CorrectPassword(t *testing.T) {
	hash, err := Hash("smokePass123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if !Verify("smokePass123", hash) {
		t.Error("expected Verify to accept the original password")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	hash, err := Hash("smokePass123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if Verify("wrongPass", hash) {
		t.Error("expected Verify to reject a wrong password")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	tests := []string{
		"",
		"not-a-hash",
		"$2b$garbage",
	}

	for _, hash := range tests {
		t.Run(hash, func(t *testing.T) {
			if Verify("anything", hash) {
				t.Errorf("expected Verify to reject malformed hash %q", hash)
			}
		})
	}
}
