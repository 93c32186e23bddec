package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier(t *testing.T) {
	v := NewVerifier("admin", "kalai2026")

	assert.True(t, v.Verify("admin", "kalai2026"))
	assert.False(t, v.Verify("admin", "wrong"))
	assert.False(t, v.Verify("wrong", "kalai2026"))
	assert.False(t, v.Verify("", ""))
}

func TestIssueAndVerify(t *testing.T) {
	s := NewTokenService("test-secret")

	tok, err := s.Issue("admin")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	subject, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestVerifyExpired(t *testing.T) {
	s := NewTokenService("test-secret")
	s.ttl = -time.Minute

	tok, err := s.Issue("admin")
	require.NoError(t, err)

	_, err = s.Verify(tok)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	tok, err := NewTokenService("right-secret").Issue("admin")
	require.NoError(t, err)

	_, err = NewTokenService("wrong-secret").Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	s := NewTokenService("test-secret")

	_, err := s.Verify("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Verify("")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMissingSubject(t *testing.T) {
	s := NewTokenService("test-secret")
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	require.NoError(t, err)

	_, err = s.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	s := NewTokenService("test-secret")
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}
