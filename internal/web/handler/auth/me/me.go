// Package me serves the profile of the authenticated user.
package me

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hackaholics/identity/internal/auth"
	"github.com/hackaholics/identity/internal/web/handler"
)

// Path is the profile endpoint.
const Path = handler.AuthPath + "/me"

// Service is the profile handler service.
type Service struct {
	handler.Service
}


// Init registers the profile route behind bearer authentication.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil || deps.Tokens == nil || deps.Users == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	app.Get(Path, auth.RequireRole(deps.Tokens, deps.Users), s.Get)

	return nil
}

// Get returns the user attached by auth.RequireRole.
func (s *Service) Get(c *fiber.Ctx) error {
	u, ok := auth.UserFromContext(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	return c.JSON(handler.UserResponse{
		Email:    u.Email,
		Username: u.DisplayName,
		Role:     u.Role.String(),
	})
}
