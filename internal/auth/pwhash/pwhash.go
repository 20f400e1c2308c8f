// Package pwhash hashes passwords with PBKDF2-SHA256. Hashes are encoded as
// pbkdf2-sha256$<iterations>$<salt b64>$<key b64>.
package pwhash

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	scheme            = "pbkdf2-sha256"
	keyLen            = 32
	DefaultSaltSize   = 16
	DefaultIterations = 210000
	minSaltSize       = 8
	minIterations     = 1000
)

var (
	ErrMismatch  = errors.New("password does not match")
	ErrMalformed = errors.New("malformed password hash")
)

type PasswordHasher struct {
	saltSize   int
	iterations int
}

// New returns a hasher. Zero values select the defaults.
func New(saltSize, iterations int) (*PasswordHasher, error) {
	if saltSize == 0 {
		saltSize = DefaultSaltSize
	}
	if iterations == 0 {
		iterations = DefaultIterations
	}
	if saltSize < minSaltSize {
		return nil, fmt.Errorf("salt size %d is below %d", saltSize, minSaltSize)
	}
	if iterations < minIterations {
		return nil, fmt.Errorf("iterations %d is below %d", iterations, minIterations)
	}
	return &PasswordHasher{saltSize: saltSize, iterations: iterations}, nil
}

func (ph *PasswordHasher) HashPassword(password string) (string, error) {
	salt := make([]byte, ph.saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("can't read salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, ph.iterations, keyLen, sha256.New)
	return strings.Join([]string{
		scheme,
		strconv.Itoa(ph.iterations),
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	}, "$"), nil
}

// Validate compares password with hash using the iteration count stored in
// the hash.
func (ph *PasswordHasher) Validate(password, hash string) error {
	parts := strings.Split(hash, "$")
	if len(parts) != 4 || parts[0] != scheme {
		return ErrMalformed
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations < minIterations {
		return ErrMalformed
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return ErrMalformed
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil || len(want) == 0 {
		return ErrMalformed
	}
	got := pbkdf2.Key([]byte(password), salt, iterations, len(want), sha256.New)
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}
