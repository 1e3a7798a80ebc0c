package auth

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/hackaholics/identity/internal/db/controller/user"
	"github.com/hackaholics/identity/internal/db/models"
)

// LocalsUser is the fiber.Locals key RequireRole stores the *models.User under.
const LocalsUser = "user"

const bearerPrefix = "bearer "

// AccessParser validates access tokens.
type AccessParser interface {
	ParseAccess(raw string) (*Claims, error)
}

// UserLookup loads users by email.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// RequireRole creates Fiber middleware that requires a valid access token of an
// existing user. With roles given the user's role must be one of them.
func RequireRole(parser AccessParser, users UserLookup, roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return jsonError(c, fiber.StatusUnauthorized, "Authentication required.")
		}

		claims, err := parser.ParseAccess(raw)
		if err != nil {
			log.Debug().Err(err).Msg("rejected access token")
			return jsonError(c, fiber.StatusUnauthorized, "Invalid or expired token.")
		}

		u, err := users.GetByEmail(c.UserContext(), claims.Subject)

		switch {
		case errors.Is(err, user.ErrUserNotFound):
			log.Warn().Str("email", claims.Subject).Msg("valid token for unknown user")
			return jsonError(c, fiber.StatusForbidden, "Access denied: User profile not found.")
		case err != nil:
			log.Error().Err(err).Str("email", claims.Subject).Msg("failed to load user")
			return jsonError(c, fiber.StatusInternalServerError, "Internal server error during authorization.")
		}

		if len(roles) > 0 && !slices.Contains(roles, u.Role) {
			log.Warn().Str("email", u.Email).Str("role", u.Role.String()).
				Msg("user lacks required role")

			return jsonError(c, fiber.StatusForbidden, "Access denied: Requires role(s): "+joinRoles(roles)+".")
		}

		c.Locals(LocalsUser, u)

		return c.Next()
	}
}

// UserFromContext returns the user stored by RequireRole.
func UserFromContext(c *fiber.Ctx) (*models.User, bool) {
	u, ok := c.Locals(LocalsUser).(*models.User)
	return u, ok && u != nil
}

func bearerToken(header string) (string, bool) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])

	return token, token != ""
}

func joinRoles(roles []models.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}

	return strings.Join(names, ", ")
}

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
