package google

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/hackaholics/identity/internal/auth"
	"github.com/hackaholics/identity/internal/db/models"
	"github.com/hackaholics/identity/internal/web/handler"
)

const (
	// Path is the Google login endpoint.
	Path = handler.AuthPath + "/google-login/"

	msgInvalidBody  = "Invalid request body."
	msgInvalidRole  = "Invalid role. Must be 'student' or 'expert'."
	msgInvalidToken = "Invalid Google token."
	msgRoleMismatch = "This account is already registered as %s."
)

// Request is the login request body.
type Request struct {
	IDToken string `json:"id_token" form:"id_token"`
	Role    string `json:"role" form:"role" validate:"required,oneof=student expert"`
}

// Response is returned on successful login.
type Response struct {
	Refresh string               `json:"refresh"`
	Access  string               `json:"access"`
	User    handler.UserResponse `json:"user"`
}

// Service is the Google login handler service.
type Service struct {
	handler.Service
	verifier   auth.Verifier
	reconciler handler.Reconciler
	validator  *validator.Validate
}


// Init registers the login route.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil || deps.Verifier == nil || deps.Reconciler == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.verifier = deps.Verifier
	s.reconciler = deps.Reconciler
	s.validator = validator.New(validator.WithRequiredStructEnabled())

	app.Post(Path, s.Post)

	return nil
}

// Post handles the login request.
// The role is checked before the token so an invalid role never reaches Google.
func (s *Service) Post(c *fiber.Ctx) error {
	var in Request

	if err := c.BodyParser(&in); err != nil {
		log.Debug().Err(err).Msg("unparsable login request")
		return handler.JSONError(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	if err := s.validator.Struct(in); err != nil {
		log.Debug().Str("role", in.Role).Msg("login with invalid role")
		return handler.JSONError(c, fiber.StatusBadRequest, msgInvalidRole)
	}

	identity, err := s.verifier.Verify(c.UserContext(), in.IDToken)
	if err != nil {
		log.Info().Err(err).Msg("google token rejected")
		return handler.JSONError(c, fiber.StatusBadRequest, msgInvalidToken)
	}

	session, err := s.reconciler.Reconcile(c.UserContext(), *identity, models.Role(in.Role))
	if err != nil {
		return s.reconcileError(c, err)
	}

	return c.JSON(Response{
		Refresh: session.Refresh,
		Access:  session.Access,
		User: handler.UserResponse{
			Email:    session.User.Email,
			Username: session.User.DisplayName,
			Role:     session.User.Role.String(),
		},
	})
}

func (s *Service) reconcileError(c *fiber.Ctx, err error) error {
	var mismatch *auth.RoleMismatchError

	switch {
	case errors.As(err, &mismatch):
		return handler.JSONError(c, fiber.StatusBadRequest, fmt.Sprintf(msgRoleMismatch, mismatch.Existing))
	case errors.Is(err, auth.ErrInvalidRole):
		return handler.JSONError(c, fiber.StatusBadRequest, msgInvalidRole)
	case errors.Is(err, auth.ErrVerificationFailed):
		return handler.JSONError(c, fiber.StatusBadRequest, msgInvalidToken)
	default:
		log.Error().Err(err).Msg("google login failed")
		return handler.JSONError(c, fiber.StatusInternalServerError, handler.MsgInternalServerError)
	}
}
