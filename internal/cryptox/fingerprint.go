// Package cryptox computes integrity fingerprints for promise records.
//
// A fingerprint is a hex digest over the pipe-joined fields
// id|created_at|name|promise_type|content. It marks a record as untouched,
// it is not a secret: anyone holding the fields can recompute it.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Supported digest algorithms.
const (
	SHA256  = "sha256"
	BLAKE2b = "blake2b"
)

// Hasher computes fingerprints with a fixed digest algorithm.
type Hasher struct {
	algorithm string
	newHash   func() hash.Hash
}

// NewHasher returns a Hasher for algorithm. An empty name selects SHA-256.
func NewHasher(algorithm string) (*Hasher, error) {
	switch strings.ToLower(algorithm) {
	case "", SHA256:
		return &Hasher{algorithm: SHA256, newHash: sha256.New}, nil
	case BLAKE2b:
		return &Hasher{algorithm: BLAKE2b, newHash: newBlake2b256}, nil
	default:
		return nil, fmt.Errorf("unsupported fingerprint algorithm %q", algorithm)
	}
}

func newBlake2b256() hash.Hash {
	// New256 only fails for oversized keys.
	h, _ := blake2b.New256(nil)
	return h
}

// Algorithm reports the digest name.
func (h *Hasher) Algorithm() string {
	return h.algorithm
}

// Fingerprint returns the hex digest of the record fields in canonical order.
func (h *Hasher) Fingerprint(id, createdAt int64, name, promiseType, content string) string {
	d := h.newHash()
	d.Write([]byte(fingerprintInput(id, createdAt, name, promiseType, content)))
	return hex.EncodeToString(d.Sum(nil))
}

func fingerprintInput(id, createdAt int64, name, promiseType, content string) string {
	return strings.Join([]string{
		strconv.FormatInt(id, 10),
		strconv.FormatInt(createdAt, 10),
		name,
		promiseType,
		content,
	}, "|")
}
