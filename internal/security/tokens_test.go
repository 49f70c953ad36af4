package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", "HS256")

	token, err := m.CreateAccessToken("vet@example.com", time.Minute)
	require.NoError(t, err)

	email, err := m.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "vet@example.com", email)
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	m := NewTokenManager("test-secret", "HS256")

	token, err := m.CreateAccessToken("vet@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	m := NewTokenManager("test-secret", "HS256")
	other := NewTokenManager("another-secret", "HS256")

	token, err := m.CreateAccessToken("vet@example.com", time.Minute)
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestScopedTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", "HS256")

	token, err := m.CreateScopedToken("vet@example.com", ScopePasswordReset, time.Minute)
	require.NoError(t, err)

	email, err := m.VerifyScopedToken(token, ScopePasswordReset)
	require.NoError(t, err)
	assert.Equal(t, "vet@example.com", email)
}

func TestScopedTokenIsNotAnAccessToken(t *testing.T) {
	m := NewTokenManager("test-secret", "HS256")

	token, err := m.CreateScopedToken("vet@example.com", ScopePasswordReset, time.Minute)
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrWrongScope)
}

func TestScopesAreNotInterchangeable(t *testing.T) {
	m := NewTokenManager("test-secret", "HS256")

	reset, err := m.CreateScopedToken("vet@example.com", ScopePasswordReset, time.Minute)
	require.NoError(t, err)
	activation, err := m.CreateScopedToken("vet@example.com", ScopeAccountActivation, time.Minute)
	require.NoError(t, err)

	_, err = m.VerifyScopedToken(reset, ScopeAccountActivation)
	assert.ErrorIs(t, err, ErrWrongScope)

	_, err = m.VerifyScopedToken(activation, ScopePasswordReset)
	assert.ErrorIs(t, err, ErrWrongScope)
}

func TestAccessTokenIsNotAScopedToken(t *testing.T) {
	m := NewTokenManager("test-secret", "HS256")

	token, err := m.CreateAccessToken("vet@example.com", time.Minute)
	require.NoError(t, err)

	_, err = m.VerifyScopedToken(token, ScopePasswordReset)
	assert.ErrorIs(t, err, ErrWrongScope)
}

func TestConfiguredHMACAlgorithm(t *testing.T) {
	m := NewTokenManager("test-secret", "HS384")

	token, err := m.CreateAccessToken("vet@example.com", time.Minute)
	require.NoError(t, err)

	email, err := m.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "vet@example.com", email)
}

func TestUnknownAlgorithmFallsBackToHS256(t *testing.T) {
	m := NewTokenManager("test-secret", "RS256")
	hs256 := NewTokenManager("test-secret", "HS256")

	token, err := m.CreateAccessToken("vet@example.com", time.Minute)
	require.NoError(t, err)

	email, err := hs256.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "vet@example.com", email)
}

func TestGarbageTokenRejected(t *testing.T) {
	m := NewTokenManager("test-secret", "HS256")

	_, err := m.VerifyAccessToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
