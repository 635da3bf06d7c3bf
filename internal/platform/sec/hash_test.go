// Copyright (c) 2026 juan-jcr. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juan-jcr/api/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies that a password verifies against its own
hash and that the plaintext never appears in the stored value.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("secret1")
	require.NoError(t, err)

	assert.NotContains(t, hash, "secret1")
	assert.True(t, sec.CheckPasswordHash("secret1", hash))
}

/*
TestCheckPasswordHash_Rejections verifies the failure modes of verification.
*/
func TestCheckPasswordHash_Rejections(t *testing.T) {
	hash, err := sec.HashPassword("secret1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
	}{
		{"wrong_password", "secret2", hash},
		{"empty_password", "", hash},
		{"empty_hash", "secret1", ""},
		{"garbage_hash", "secret1", "not-a-bcrypt-hash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, sec.CheckPasswordHash(tt.password, tt.hash))
		})
	}
}

/*
TestHashPassword_Salted verifies that hashing the same password twice yields
distinct digests.
*/
func TestHashPassword_Salted(t *testing.T) {
	first, err := sec.HashPassword("secret1")
	require.NoError(t, err)
	second, err := sec.HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
