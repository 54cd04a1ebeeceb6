// Copyright (c) 2026 Revio. All rights reserved.
// Author: dev@revio.app

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revio-app/revio/internal/platform/sec"
)

/*
TestGenerateConfirmationCode verifies length and charset of generated codes.
*/
func TestGenerateConfirmationCode(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := sec.GenerateConfirmationCode(6)
		require.NoError(t, err)
		require.Len(t, code, 6)

		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code must be numeric, got %q", code)
		}
	}
}

/*
TestCodeHash_RoundTrip verifies that a code matches its own hash and
nothing else.
*/
func TestCodeHash_RoundTrip(t *testing.T) {
	code := "427519"

	hash, err := sec.HashCode(code)
	require.NoError(t, err)
	require.NotEqual(t, code, hash)

	assert.True(t, sec.CheckCodeHash(code, hash))
	assert.False(t, sec.CheckCodeHash("000000", hash))
	assert.False(t, sec.CheckCodeHash(code, "not-a-hash"))
}
