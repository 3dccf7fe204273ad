package httperr

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// E is the uniform wire shape every error leaves the API in:
// {"name": "...", "message": "...", "status": ...}.
type E struct {
	Name    string `json:"name" example:"Bad Request"`
	Message string `json:"message" example:"The 'folderId' is not valid"`
	Status  int    `json:"status" example:"400"`
}

// Error implements the error interface
func (e E) Error() string {
	return e.Message
}

// JSON writes the error as the response body
func (e E) JSON(c *fiber.Ctx) error {
	return c.Status(e.Status).JSON(e)
}

// New creates an error with the name derived from the status code
func New(status int, message string) E {
	return E{Name: http.StatusText(status), Message: message, Status: status}
}

// Fail returns the error for Fiber's global error handler to process
func Fail(err E) error {
	return err
}

// BadRequest is a 400 with the given message
func BadRequest(message string) error {
	return Fail(New(fiber.StatusBadRequest, message))
}

// Unprocessable is a 422 with the given message, used for registration
// field-shape failures
func Unprocessable(message string) error {
	return Fail(New(fiber.StatusUnprocessableEntity, message))
}

// InvalidInput wraps a validation error and returns the standard response.
func InvalidInput(err error) error {
	return BadRequest("Invalid input: " + err.Error())
}

// Pre-defined HTTP errors
var (
	ErrBadRequest   = New(fiber.StatusBadRequest, "Bad Request")
	ErrUnauthorized = New(fiber.StatusUnauthorized, "Unauthorized")
	ErrNotFound     = New(fiber.StatusNotFound, "Not Found")
	ErrInternal     = New(fiber.StatusInternalServerError, "Internal Server Error")
)

// Handler is the global error handler for Fiber. Every error funnels through
// here so the wire shape stays uniform.
func Handler(c *fiber.Ctx, err error) error {
	var e E
	if errors.As(err, &e) {
		return e.JSON(c)
	}

	var fiberError *fiber.Error
	if errors.As(err, &fiberError) {
		return c.Status(fiberError.Code).JSON(New(fiberError.Code, fiberError.Message))
	}

	return ErrInternal.JSON(c)
}
