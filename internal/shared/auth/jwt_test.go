package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	signer, err := NewSigner("secret", time.Hour, false)
	require.NoError(t, err)

	token, err := signer.Sign("session-1", "ada@example.com", "Ada")
	require.NoError(t, err)

	claims, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada", claims.Name)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	signer, err := NewSigner("secret", time.Minute, false)
	require.NoError(t, err)
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	signer.now = func() time.Time { return issued }

	token, err := signer.Sign("session-1", "", "")
	require.NoError(t, err)

	signer.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = signer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherSecretAndAlgorithm(t *testing.T) {
	signer, err := NewSigner("secret", time.Hour, false)
	require.NoError(t, err)
	other, err := NewSigner("other", time.Hour, false)
	require.NoError(t, err)

	token, err := other.Sign("session-1", "", "")
	require.NoError(t, err)
	_, err = signer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "session-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = signer.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewSignerRequiresSecretInProduction(t *testing.T) {
	_, err := NewSigner("", time.Hour, true)
	assert.ErrorIs(t, err, ErrMissingSecret)

	signer, err := NewSigner("", time.Hour, false)
	require.NoError(t, err)
	assert.NotNil(t, signer)
}
