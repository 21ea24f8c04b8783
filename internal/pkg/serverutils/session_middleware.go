package serverutils

import (
	"notesync/pkg/store"

	"github.com/gofiber/fiber/v2"
)

// SessionResolver looks up an active session by its cookie token.
// Implemented by the in-memory session repository.
type SessionResolver interface {
	Get(token string) (*store.Session, bool)
}

// RequireAuth resolves the session cookie and stashes the user identity in
// locals. Requests without a live session are rejected.
func RequireAuth(sessions SessionResolver, cookieName string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := ctx.Cookies(cookieName)
		if token == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
		}

		session, ok := sessions.Get(token)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
		}

		ctx.Locals("user_id", session.UserID.String())
		ctx.Locals("username", session.Username)
		ctx.Locals("session_token", token)
		return ctx.Next()
	}
}
