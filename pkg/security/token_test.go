// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package security

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()

	m, err := NewTokenManager(TokenManagerConfig{
		Secret:     testSecret,
		Issuer:     "talenthub-test",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	})
	require.NoError(t, err)

	return m
}

func TestNewTokenManager_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  TokenManagerConfig
	}{
		{"short secret", TokenManagerConfig{Secret: "short", Issuer: "x", AccessTTL: time.Minute, RefreshTTL: time.Hour}},
		{"missing issuer", TokenManagerConfig{Secret: testSecret, AccessTTL: time.Minute, RefreshTTL: time.Hour}},
		{"zero ttl", TokenManagerConfig{Secret: testSecret, Issuer: "x", RefreshTTL: time.Hour}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewTokenManager(tt.cfg)
			assert.Error(t, err)
			assert.Nil(t, m)
		})
	}
}

func TestTokenManager_AccessRoundTrip(t *testing.T) {
	m := newTestManager(t)
	userID := uuid.New()

	issued, err := m.IssueAccess(userID, "ada@example.com", "talent")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := m.ParseAccess(issued.Value)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, id)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "talent", claims.Role)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestTokenManager_RejectsWrongKind(t *testing.T) {
	m := newTestManager(t)

	refresh, err := m.IssueRefresh(uuid.New(), "ada@example.com", "talent")
	require.NoError(t, err)

	_, err = m.ParseAccess(refresh.Value)
	assert.ErrorIs(t, err, ErrWrongTokenKind)

	claims, err := m.ParseRefresh(refresh.Value)
	require.NoError(t, err)
	assert.Equal(t, TokenKindRefresh, claims.Kind)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m := newTestManager(t)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }

	issued, err := m.IssueAccess(uuid.New(), "ada@example.com", "talent")
	require.NoError(t, err)

	m.now = time.Now

	_, err = m.ParseAccess(issued.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsTampering(t *testing.T) {
	m := newTestManager(t)

	issued, err := m.IssueAccess(uuid.New(), "ada@example.com", "talent")
	require.NoError(t, err)

	t.Run("other secret", func(t *testing.T) {
		other, err := NewTokenManager(TokenManagerConfig{
			Secret:     strings.Repeat("z", 32),
			Issuer:     "talenthub-test",
			AccessTTL:  time.Minute,
			RefreshTTL: time.Hour,
		})
		require.NoError(t, err)

		_, err = other.ParseAccess(issued.Value)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other issuer", func(t *testing.T) {
		other, err := NewTokenManager(TokenManagerConfig{
			Secret:     testSecret,
			Issuer:     "someone-else",
			AccessTTL:  time.Minute,
			RefreshTTL: time.Hour,
		})
		require.NoError(t, err)

		_, err = other.ParseAccess(issued.Value)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": uuid.NewString(),
			"iss": "talenthub-test",
			"typ": TokenKindAccess,
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.ParseAccess(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ParseAccess("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
