package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/hackaholics/identity/internal/auth"
	"github.com/hackaholics/identity/internal/db/models"
)

// Reconciler resolves a verified identity to a user session.
type Reconciler interface {
	Reconcile(ctx context.Context, id auth.Identity, role models.Role) (*auth.Session, error)
}

// Deps are the collaborators handlers are wired with.
type Deps struct {
	Verifier   auth.Verifier
	Reconciler Reconciler
	Tokens     auth.AccessParser
	Users      auth.UserLookup
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, deps *Deps) error
}

// UserResponse is the user representation returned by the API.
// Username carries the display name.
type UserResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSONError writes msg as ErrorResponse with the given status.
func JSONError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}
