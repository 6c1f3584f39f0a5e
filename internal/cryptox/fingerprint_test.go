package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSHA256(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher(SHA256)
	require.NoError(t, err)
	return h
}

func TestFingerprint_Deterministic(t *testing.T) {
	h := newSHA256(t)
	a := h.Fingerprint(1, 100, "n", "self", "c")
	b := h.Fingerprint(1, 100, "n", "self", "c")

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	sum := sha256.Sum256([]byte("1|100|n|self|c"))
	assert.Equal(t, hex.EncodeToString(sum[:]), a)
}

func TestFingerprint_EachFieldMatters(t *testing.T) {
	h := newSHA256(t)
	base := h.Fingerprint(1, 100, "n", "self", "c")

	variants := map[string]string{
		"id":           h.Fingerprint(2, 100, "n", "self", "c"),
		"created_at":   h.Fingerprint(1, 101, "n", "self", "c"),
		"name":         h.Fingerprint(1, 100, "m", "self", "c"),
		"promise_type": h.Fingerprint(1, 100, "n", "world", "c"),
		"content":      h.Fingerprint(1, 100, "n", "self", "d"),
	}

	seen := map[string]string{base: "base"}
	for field, fp := range variants {
		assert.NotEqual(t, base, fp, "changing %s must change the fingerprint", field)
		prev, dup := seen[fp]
		assert.False(t, dup, "%s collides with %s", field, prev)
		seen[fp] = field
	}
}

func TestNewHasher(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", SHA256, false},
		{"sha256", SHA256, false},
		{"SHA256", SHA256, false},
		{"blake2b", BLAKE2b, false},
		{"md5", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			h, err := NewHasher(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, h.Algorithm())
		})
	}
}

func TestHasher_Fingerprint(t *testing.T) {
	sha := newSHA256(t)
	sum := sha256.Sum256([]byte("7|42|Gym|self|I promise I will go"))
	assert.Equal(t, hex.EncodeToString(sum[:]), sha.Fingerprint(7, 42, "Gym", "self", "I promise I will go"))

	b2, err := NewHasher(BLAKE2b)
	require.NoError(t, err)
	fp := b2.Fingerprint(7, 42, "Gym", "self", "I promise I will go")
	assert.Len(t, fp, 64)
	assert.NotEqual(t, sha.Fingerprint(7, 42, "Gym", "self", "I promise I will go"), fp)
	assert.Equal(t, fp, b2.Fingerprint(7, 42, "Gym", "self", "I promise I will go"))
}
