// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/platform/sec"
)

func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(
		"test-access-secret", "test-refresh-secret",
		15*time.Minute, 720*time.Hour, "vidora.test",
	)
	require.NoError(t, err)
	return service
}

func testSubject() sec.TokenSubject {
	return sec.TokenSubject{
		UserID:   "user-1",
		Username: "ada",
		Email:    "ada@example.com",
		FullName: "Ada Lovelace",
		Role:     "member",
	}
}

/*
TestIssuePair_RefreshTokensAreUnique verifies that consecutive issuances
for the same subject never produce the same refresh token value.

Rotation compares stored digests against the presented token, so two
identical tokens minted within the same second would let a consumed
token pass the equality check and be redeemed twice.
*/
func TestIssuePair_RefreshTokensAreUnique(t *testing.T) {
	service := newTokenService(t)
	subject := testSubject()

	// 1. Mint several pairs back to back, well inside one second
	issued := make(map[string]bool)
	for i := 0; i < 5; i++ {
		pair, err := service.IssuePair(subject)
		require.NoError(t, err)

		// 2. Every refresh token and its digest must be new
		assert.False(t, issued[pair.RefreshToken], "refresh token value repeated")
		assert.False(t, issued[sec.DigestToken(pair.RefreshToken)], "refresh token digest repeated")

		issued[pair.RefreshToken] = true
		issued[sec.DigestToken(pair.RefreshToken)] = true
	}
}

/*
TestIssuePair_RefreshClaimsCarryUniqueID verifies the refresh payload:
a non-empty, per-token ID alongside the subject's user identifier.
*/
func TestIssuePair_RefreshClaimsCarryUniqueID(t *testing.T) {
	service := newTokenService(t)

	first, err := service.IssuePair(testSubject())
	require.NoError(t, err)
	second, err := service.IssuePair(testSubject())
	require.NoError(t, err)

	firstClaims, err := service.VerifyRefreshToken(first.RefreshToken)
	require.NoError(t, err)
	secondClaims, err := service.VerifyRefreshToken(second.RefreshToken)
	require.NoError(t, err)

	assert.Equal(t, "user-1", firstClaims.UserID)
	require.NotEmpty(t, firstClaims.ID)
	require.NotEmpty(t, secondClaims.ID)
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

/*
TestVerifyToken_RejectsCrossSecretUse verifies that the access and
refresh verifiers are not interchangeable: a refresh token must never
pass access verification and vice versa.
*/
func TestVerifyToken_RejectsCrossSecretUse(t *testing.T) {
	service := newTokenService(t)

	pair, err := service.IssuePair(testSubject())
	require.NoError(t, err)

	_, err = service.VerifyToken(pair.RefreshToken)
	assert.Error(t, err)

	_, err = service.VerifyRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

/*
TestNewTokenService_RejectsWeakConfiguration verifies the constructor
guards: empty secrets and a shared access/refresh secret are refused.
*/
func TestNewTokenService_RejectsWeakConfiguration(t *testing.T) {
	_, err := sec.NewTokenService("", "refresh", time.Minute, time.Hour, "vidora.test")
	assert.Error(t, err)

	_, err = sec.NewTokenService("access", "", time.Minute, time.Hour, "vidora.test")
	assert.Error(t, err)

	_, err = sec.NewTokenService("same", "same", time.Minute, time.Hour, "vidora.test")
	assert.Error(t, err)
}
