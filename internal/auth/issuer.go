package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hackaholics/identity/internal/db/models"
)

// Token types carried in the token_type claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrSigningKeyEmpty is returned when the issuer has no key to sign with.
var ErrSigningKeyEmpty = errors.New("token signing key can not be empty")

// Principal is the authenticated user a session is issued for.
type Principal struct {
	Email       string
	DisplayName string
	Role        models.Role
}

// Credentials are the opaque bearer tokens of a session.
type Credentials struct {
	Refresh string
	Access  string
}

// Issuer issues session credentials.
type Issuer interface {
	IssueSession(p Principal) (Credentials, error)
}

// Claims are the JWT claims of access and refresh tokens.
// The subject is the user's email.
type Claims struct {
	TokenType string      `json:"token_type"`
	Name      string      `json:"name,omitempty"`
	Role      models.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTConfig holds the JWTIssuer settings.
type JWTConfig struct {
	SigningKey string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// JWTIssuer signs HS256 access and refresh tokens.
type JWTIssuer struct {
	signingKey []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewJWTIssuer creates a JWTIssuer.
func NewJWTIssuer(cfg *JWTConfig) (*JWTIssuer, error) {
	if cfg.SigningKey == "" {
		return nil, ErrSigningKeyEmpty
	}

	return &JWTIssuer{
		signingKey: []byte(cfg.SigningKey),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}, nil
}

// IssueSession implements Issuer.
func (i *JWTIssuer) IssueSession(p Principal) (Credentials, error) {
	refresh, err := i.sign(p, TokenTypeRefresh, i.refreshTTL)
	if err != nil {
		return Credentials{}, err
	}

	access, err := i.sign(p, TokenTypeAccess, i.accessTTL)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{Refresh: refresh, Access: access}, nil
}

func (i *JWTIssuer) sign(p Principal, tokenType string, ttl time.Duration) (string, error) {
	now := i.now().UTC()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		TokenType: tokenType,
		Name:      p.DisplayName,
		Role:      p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Email,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(i.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return signed, nil
}

// ParseAccess validates an access token issued by i and returns its claims.
// Refresh tokens are rejected.
func (i *JWTIssuer) ParseAccess(raw string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	}

	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}

	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return i.signingKey, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAccessToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidAccessToken
	}

	if claims.TokenType != TokenTypeAccess {
		return nil, fmt.Errorf("%w: token type %q", ErrInvalidAccessToken, claims.TokenType)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: no subject", ErrInvalidAccessToken)
	}

	return claims, nil
}
