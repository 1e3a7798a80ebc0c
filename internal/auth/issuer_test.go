package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackaholics/identity/internal/db/models"
)

func newTestIssuer(t *testing.T, key string) *JWTIssuer {
	t.Helper()

	i, err := NewJWTIssuer(&JWTConfig{
		SigningKey: key,
		Issuer:     "identity-test",
		AccessTTL:  5 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	})
	require.NoError(t, err)

	return i
}

func TestNewJWTIssuerRequiresKey(t *testing.T) {
	_, err := NewJWTIssuer(&JWTConfig{})
	assert.ErrorIs(t, err, ErrSigningKeyEmpty)
}

func TestIssueSessionRoundTrip(t *testing.T) {
	i := newTestIssuer(t, "secret")

	creds, err := i.IssueSession(Principal{Email: "a@x.com", DisplayName: "A", Role: models.RoleExpert})
	require.NoError(t, err)
	require.NotEmpty(t, creds.Access)
	require.NotEmpty(t, creds.Refresh)
	assert.NotEqual(t, creds.Access, creds.Refresh)

	claims, err := i.ParseAccess(creds.Access)
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", claims.Subject)
	assert.Equal(t, "A", claims.Name)
	assert.Equal(t, models.RoleExpert, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "identity-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, claims.IssuedAt.Add(5*time.Minute), claims.ExpiresAt.Time, time.Second)
}

func TestIssueSessionUniqueTokenIDs(t *testing.T) {
	i := newTestIssuer(t, "secret")
	p := Principal{Email: "a@x.com", Role: models.RoleStudent}

	first, err := i.IssueSession(p)
	require.NoError(t, err)

	second, err := i.IssueSession(p)
	require.NoError(t, err)

	assert.NotEqual(t, first.Access, second.Access)
	assert.NotEqual(t, first.Refresh, second.Refresh)
}

func TestParseAccessRejects(t *testing.T) {
	i := newTestIssuer(t, "secret")
	p := Principal{Email: "a@x.com", Role: models.RoleStudent}

	creds, err := i.IssueSession(p)
	require.NoError(t, err)

	otherKey, err := newTestIssuer(t, "other-secret").IssueSession(p)
	require.NoError(t, err)

	expiredIssuer := newTestIssuer(t, "secret")
	expiredIssuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := expiredIssuer.IssueSession(p)
	require.NoError(t, err)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		TokenType: TokenTypeAccess,
		Role:      models.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a@x.com",
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "identity-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a@x.com",
			Issuer:    "identity-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "refresh token", token: creds.Refresh},
		{name: "signed with other key", token: otherKey.Access},
		{name: "expired", token: expired.Access},
		{name: "other issuer", token: foreign},
		{name: "no subject", token: noSubject},
		{name: "alg none", token: unsigned},
		{name: "garbage", token: "not.a.jwt"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := i.ParseAccess(tt.token)
			require.ErrorIs(t, err, ErrInvalidAccessToken)
			assert.Nil(t, claims)
		})
	}
}
