package config

import (
	"time"

	"github.com/hackaholics/identity/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Google    Google
	Token     Token
}

// Webserver implement webserver settings.
type Webserver struct {
	Port         int    // listening port for the webserver
	URL          string // base url for the webserver
	ShutDownTime int    // wait time for shutdown in seconds
	BodyLimit    int    // max request body size in bytes
}

// Google holds the settings for verifying Google ID tokens.
type Google struct {
	// ClientID is the OAuth2 client id the ID tokens must be issued for (aud claim).
	ClientID string
	// IssuerURL is the OIDC discovery URL, defaults to https://accounts.google.com.
	IssuerURL string
	// RequireVerifiedEmail rejects tokens whose email_verified claim is false.
	RequireVerifiedEmail bool
}

// Token holds the session token settings.
type Token struct {
	SigningKey string        // HMAC key used to sign access and refresh tokens
	Issuer     string        // iss claim
	AccessTTL  time.Duration // lifetime of access tokens
	RefreshTTL time.Duration // lifetime of refresh tokens
}
