// Package passwd provides one-way password hashing with PBKDF2-SHA256.
//
// The encoded form is "iterations:salt:hash" (salt and hash base64, standard
// encoding). Keeping the iteration count in the stored value means old
// hashes stay verifiable after the work factor is raised.
package passwd

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength = 16
	iterations = 100000
	keyLength  = 32
)

// Hasher hashes and verifies passwords. The zero value is ready to use;
// it is a pure function of its inputs and safe for concurrent use.
type Hasher struct{}

func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash derives a salted PBKDF2-SHA256 digest of password. Every call uses
// a fresh random salt, so hashing the same password twice yields different
// encoded values.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	digest := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)

	return fmt.Sprintf("%d:%s:%s",
		iterations,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(digest),
	), nil
}

// Verify reports whether password matches the encoded hash. Any malformed
// encoding (wrong field count, undecodable salt or digest, bad iteration
// count) yields false — callers cannot tell a corrupt hash from a wrong
// password, and the digest comparison is constant time.
func (h *Hasher) Verify(password, encoded string) bool {
	parts := strings.Split(encoded, ":")
	if len(parts) != 3 {
		return false
	}

	iters, err := strconv.Atoi(parts[0])
	if err != nil || iters <= 0 {
		return false
	}
	salt, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}
	expected, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil || len(expected) == 0 {
		return false
	}

	digest := pbkdf2.Key([]byte(password), salt, iters, len(expected), sha256.New)

	return subtle.ConstantTimeCompare(expected, digest) == 1
}
