package serverutils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AppError carries an HTTP status alongside a user-visible message.
// Services return these; the error middleware renders them.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func BadRequest(message string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Message: message}
}

func Unauthorized(message string) *AppError {
	return &AppError{Status: fiber.StatusUnauthorized, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Message: message}
}

var validate = validator.New()

// ValidateRequest validates a request DTO against its `validate` tags.
func ValidateRequest(s any) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0]
			return BadRequest(fmt.Sprintf("Field '%s' failed on '%s' validation", field.Field(), field.Tag()))
		}
		return BadRequest(err.Error())
	}
	return nil
}

// ErrorHandlerMiddleware renders errors bubbled up from controllers as
// {"error": "..."} with the appropriate status. Unknown errors become 500s
// without leaking internals.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			return c.Status(appErr.Status).JSON(fiber.Map{"error": appErr.Message})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
