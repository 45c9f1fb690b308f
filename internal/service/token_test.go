package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/staffpoints/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokens(t *testing.T, clock *time.Time) *TokenService {
	t.Helper()
	s, err := NewTokenService("test-secret", DefaultTokenTTL)
	require.NoError(t, err)
	s.now = func() time.Time { return *clock }
	return s
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newTestTokens(t, &clock)

	token, expiresAt, err := s.Issue("alice", model.RoleUser)
	require.NoError(t, err)
	assert.True(t, expiresAt.Equal(clock.Add(30*24*time.Hour)))

	identity, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, model.RoleUser, identity.Role)
	assert.True(t, identity.IssuedAt.Equal(clock))
	assert.True(t, identity.ExpiresAt.Equal(expiresAt))
}

func TestTokenService_ExpiryMatchesSignedClaim(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 987654321, time.UTC)
	s := newTestTokens(t, &clock)

	token, expiresAt, err := s.Issue("alice", model.RoleUser)
	require.NoError(t, err)
	assert.Zero(t, expiresAt.Nanosecond())

	identity, err := s.Verify(token)
	require.NoError(t, err)
	assert.True(t, identity.ExpiresAt.Equal(expiresAt), "returned %v, signed %v", expiresAt, identity.ExpiresAt)
}

func TestTokenService_Expiry(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newTestTokens(t, &clock)

	token, expiresAt, err := s.Issue("alice", model.RoleUser)
	require.NoError(t, err)

	clock = expiresAt.Add(-time.Second)
	_, err = s.Verify(token)
	require.NoError(t, err)

	clock = expiresAt
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	clock = expiresAt.Add(time.Hour)
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsTampering(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newTestTokens(t, &clock)

	token, _, err := s.Issue("alice", model.RoleUser)
	require.NoError(t, err)

	other, err := NewTokenService("another-secret", DefaultTokenTTL)
	require.NoError(t, err)
	other.now = s.now
	forged, _, err := other.Issue("alice", model.RoleAdmin)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	forgedParts := strings.Split(forged, ".")
	swapped := parts[0] + "." + forgedParts[1] + "." + parts[2]

	for name, candidate := range map[string]string{
		"wrong-secret":    forged,
		"swapped-payload": swapped,
		"malformed":       "not.a.jwt",
		"empty":           "",
		"truncated":       parts[0] + "." + parts[1],
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.Verify(candidate)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenService_RejectsNoneAlgorithm(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newTestTokens(t, &clock)

	claims := tokenClaims{
		Role: model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "mallory",
			ExpiresAt: jwt.NewNumericDate(clock.Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsMissingClaims(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newTestTokens(t, &clock)

	for name, claims := range map[string]tokenClaims{
		"no-expiry": {Role: model.RoleUser, RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}},
		"no-subject": {Role: model.RoleUser, RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.Add(time.Hour)),
		}},
		"bad-role": {Role: "root", RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(clock.Add(time.Hour)),
		}},
	} {
		t.Run(name, func(t *testing.T) {
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
			require.NoError(t, err)
			_, err = s.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewTokenService_Misconfigured(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.ErrorIs(t, err, ErrMisconfigured)

	_, err = NewTokenService("secret", 0)
	assert.ErrorIs(t, err, ErrMisconfigured)
}
