// Package crypto implements password hashing and verification for stored credentials.
package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2-SHA256 parameters (OWASP baseline for SHA-256).
const (
	iterations = 600_000
	keyLen     = 32
	saltLen    = 32
)

// Credential pairs a derived key with the salt it was derived from.
// The two always travel together so a hash can never be stored against
// the wrong salt.
type Credential struct {
	Salt []byte
	Key  []byte
}

// Hash derives a Credential from the plaintext password using a fresh
// random salt.
func Hash(plaintext string) (Credential, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return Credential{}, err
	}

	key := pbkdf2.Key([]byte(plaintext), salt, iterations, keyLen, sha256.New)
	return Credential{Salt: salt, Key: key}, nil
}

// Verify reports whether plaintext derives to the stored credential.
// The comparison is constant-time over the full key length.
func Verify(plaintext string, cred Credential) bool {
	got := pbkdf2.Key([]byte(plaintext), cred.Salt, iterations, keyLen, sha256.New)
	return subtle.ConstantTimeCompare(got, cred.Key) == 1
}
