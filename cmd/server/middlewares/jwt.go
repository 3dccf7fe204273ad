package middlewares

import (
	"noteful/cmd/server/handlers/httperr"
	"noteful/internal/config"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWT returns a configured Fiber middleware that:
//
//   - validates the Bearer token signature using cfg.JWTSecret
//   - makes sure the token carries a "user_id" claim
//   - stores user_id/username/fullname in ctx locals so downstream handlers
//     can trust them.
//
// On any problem it bubbles up a 401 via the global httperr handler — never
// a silent anonymous fallback.
func JWT(cfg config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			// Token signature already verified at this point.
			token := c.Locals("user").(*jwt.Token)
			claims, _ := token.Claims.(jwt.MapClaims)

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				return httperr.Fail(httperr.New(fiber.StatusUnauthorized, "Invalid token: missing user_id"))
			}

			username, ok := claims["username"].(string)
			if !ok || username == "" {
				return httperr.Fail(httperr.New(fiber.StatusUnauthorized, "Invalid token: missing username"))
			}

			c.Locals("userID", userID)
			c.Locals("username", username)
			if fullname, ok := claims["fullname"].(string); ok {
				c.Locals("fullname", fullname)
			}
			return c.Next()
		},

		// Override the default "unauthorized" JSON to match the project style
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return httperr.Fail(httperr.ErrUnauthorized)
		},
	})
}
