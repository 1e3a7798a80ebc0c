package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hackaholics/identity/internal/db/controller/user"
	"github.com/hackaholics/identity/internal/db/models"
)

// Store is the persistence the Reconciler needs.
// GetByEmail returns user.ErrUserNotFound for unknown emails and CreateIfAbsent
// returns user.ErrUserAlreadyExists when it lost the insert to another writer.
type Store interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	CreateIfAbsent(ctx context.Context, u *models.User) (*models.User, error)
}

// Snapshot is the part of a user echoed back to the client.
type Snapshot struct {
	Email       string
	DisplayName string
	Role        models.Role
}

// Session is the result of a successful login.
type Session struct {
	Credentials
	User Snapshot
}

// Reconciler maps a verified identity to exactly one local user and issues
// session credentials for it. The role of an existing user is never changed.
type Reconciler struct {
	store  Store
	issuer Issuer
	now    func() time.Time
}

// NewReconciler creates a Reconciler.
func NewReconciler(store Store, issuer Issuer) *Reconciler {
	return &Reconciler{
		store:  store,
		issuer: issuer,
		now:    time.Now,
	}
}

// Reconcile looks up the user for id.Email, creating it with role on first login.
// If the user exists with another role a *RoleMismatchError is returned and
// nothing is written or issued. id.Name is only used at creation and falls
// back to the local part of the email.
func (r *Reconciler) Reconcile(ctx context.Context, id Identity, role models.Role) (*Session, error) {
	if !role.Valid() {
		reconcileCounter.WithLabelValues(outcomeInvalidRole).Inc()
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	if id.Email == "" {
		return nil, fmt.Errorf("%w: no email", ErrVerificationFailed)
	}

	u, outcome, err := r.resolve(ctx, id, role)
	if err != nil {
		reconcileCounter.WithLabelValues(outcome).Inc()
		return nil, err
	}

	creds, err := r.issuer.IssueSession(Principal{
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
	})
	if err != nil {
		reconcileCounter.WithLabelValues(outcomeIssueError).Inc()
		log.Error().Err(err).Str("email", u.Email).Msg("failed to issue session")

		return nil, fmt.Errorf("%w: %w", ErrIssuanceFailed, err)
	}

	reconcileCounter.WithLabelValues(outcome).Inc()

	return &Session{
		Credentials: creds,
		User: Snapshot{
			Email:       u.Email,
			DisplayName: u.DisplayName,
			Role:        u.Role,
		},
	}, nil
}

// resolve performs the create / match / mismatch decision before any write.
func (r *Reconciler) resolve(ctx context.Context, id Identity, role models.Role) (*models.User, string, error) {
	email := id.Email

	existing, err := r.store.GetByEmail(ctx, email)

	switch {
	case err == nil:
		return checkRole(existing, role)
	case !errors.Is(err, user.ErrUserNotFound):
		log.Error().Err(err).Str("email", email).Msg("failed to look up user")
		return nil, outcomeStoreError, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	displayName := id.Name
	if displayName == "" {
		displayName = localPart(email)
	}

	created, err := r.store.CreateIfAbsent(ctx, &models.User{
		Email:       email,
		DisplayName: displayName,
		Role:        role,
		ExternalID:  id.Subject,
		CreatedAt:   r.now(),
	})

	switch {
	case err == nil:
		log.Info().Str("email", email).Str("role", role.String()).Msg("user created")
		return created, outcomeCreated, nil
	case !errors.Is(err, user.ErrUserAlreadyExists):
		log.Error().Err(err).Str("email", email).Msg("failed to create user")
		return nil, outcomeStoreError, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	// a concurrent login created the user between lookup and insert
	existing, err = r.store.GetByEmail(ctx, email)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to re-read user after insert conflict")
		return nil, outcomeStoreError, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return checkRole(existing, role)
}

func checkRole(u *models.User, role models.Role) (*models.User, string, error) {
	if u.Role != role {
		log.Warn().Str("email", u.Email).Str("role", u.Role.String()).Str("requested", role.String()).
			Msg("login with different role rejected")

		return nil, outcomeRoleMismatch, &RoleMismatchError{Existing: u.Role, Requested: role}
	}

	return u, outcomeMatched, nil
}

// localPart returns the part of email before the last @.
func localPart(email string) string {
	if i := strings.LastIndex(email, "@"); i >= 0 {
		return email[:i]
	}

	return email
}
