package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// GoogleIssuerURL is the OIDC issuer of Google ID tokens.
const GoogleIssuerURL = "https://accounts.google.com"

// ErrGoogleClientIDEmpty is returned when no OAuth2 client id is configured.
var ErrGoogleClientIDEmpty = errors.New("google client id can not be empty")

// Identity is what a Verifier extracts from a valid identity token.
type Identity struct {
	// Subject is the provider's stable user id (sub claim).
	Subject string
	// Email is the address the provider vouches for.
	Email string
	// Name is the display name, may be empty.
	Name string
}

// Verifier validates third-party identity tokens.
// Every failure wraps ErrVerificationFailed.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

// GoogleConfig holds the settings for verifying Google ID tokens.
type GoogleConfig struct {
	// ClientID is the OAuth2 client identifier the token audience must match.
	ClientID string
	// IssuerURL is the OIDC discovery URL (default GoogleIssuerURL).
	IssuerURL string
	// RequireVerifiedEmail rejects tokens with email_verified=false.
	RequireVerifiedEmail bool
}

// GoogleVerifier checks signature, issuer, audience and expiry of Google ID tokens.
type GoogleVerifier struct {
	verifier             *oidc.IDTokenVerifier
	requireVerifiedEmail bool
}

// NewGoogleVerifier discovers the provider configuration at cfg.IssuerURL.
// ctx is kept by go-oidc for fetching signing keys later on, so it must live
// as long as the verifier.
func NewGoogleVerifier(ctx context.Context, cfg *GoogleConfig) (*GoogleVerifier, error) {
	if cfg.ClientID == "" {
		return nil, ErrGoogleClientIDEmpty
	}

	issuerURL := cfg.IssuerURL
	if issuerURL == "" {
		issuerURL = GoogleIssuerURL
	}

	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	return NewGoogleVerifierFrom(
		provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		cfg.RequireVerifiedEmail,
	), nil
}

// NewGoogleVerifierFrom wraps an already configured go-oidc verifier.
func NewGoogleVerifierFrom(verifier *oidc.IDTokenVerifier, requireVerifiedEmail bool) *GoogleVerifier {
	return &GoogleVerifier{
		verifier:             verifier,
		requireVerifiedEmail: requireVerifiedEmail,
	}
}

// Verify implements Verifier.
func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	if rawToken == "" {
		return nil, fmt.Errorf("%w: empty token", ErrVerificationFailed)
	}

	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}

	if err = idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: failed to parse claims: %w", ErrVerificationFailed, err)
	}

	if claims.Email == "" {
		return nil, fmt.Errorf("%w: token has no email claim", ErrVerificationFailed)
	}

	if v.requireVerifiedEmail && !claims.EmailVerified {
		return nil, fmt.Errorf("%w: email %s is not verified", ErrVerificationFailed, claims.Email)
	}

	return &Identity{
		Subject: idToken.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}
