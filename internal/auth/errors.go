package auth

import (
	"errors"
	"fmt"

	"github.com/hackaholics/identity/internal/db/models"
)

var (
	// ErrInvalidRole is returned when the requested role is not one of models.Roles.
	ErrInvalidRole = errors.New("invalid role")

	// ErrVerificationFailed is returned when an identity token is not valid.
	// The token must be treated as invalid; retrying with the same token is pointless.
	ErrVerificationFailed = errors.New("identity token verification failed")

	// ErrRoleMismatch is matched by every *RoleMismatchError.
	ErrRoleMismatch = errors.New("account is registered with a different role")

	// ErrStoreUnavailable wraps failures of the user store.
	ErrStoreUnavailable = errors.New("user store unavailable")

	// ErrIssuanceFailed wraps failures of the session token issuer.
	ErrIssuanceFailed = errors.New("session issuance failed")

	// ErrInvalidAccessToken is returned when a bearer token can not be used as access token.
	ErrInvalidAccessToken = errors.New("invalid access token")
)

// RoleMismatchError reports the role an existing account was registered with.
type RoleMismatchError struct {
	Existing  models.Role
	Requested models.Role
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("account is registered as %s, requested %s", e.Existing, e.Requested)
}

// Is makes errors.Is(err, ErrRoleMismatch) true.
func (e *RoleMismatchError) Is(target error) bool {
	return target == ErrRoleMismatch
}
