package auth

import (
	"context"
	"errors"

	"noteful/cmd/server/handlers/handlerutil"
	"noteful/cmd/server/handlers/httperr"
	"noteful/internal/logger"
	"noteful/internal/services/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Service defines the interface for the auth service
type Service interface {
	Register(ctx context.Context, req auth.RegisterRequest) (*auth.UserResponse, error)
	Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error)
}

// Handlers contains the registration and login HTTP handlers
type Handlers struct {
	service   Service
	validator *validator.Validate
}

// NewHandlers creates new auth handlers
func NewHandlers(service Service, validator *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

// Register handles user registration.
// Field-shape failures come back as 422 with the rule's message; a duplicate
// username is a 400 with a distinguishing message, surfaced from the unique
// index rather than pre-checked.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req auth.RegisterRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Register"); err != nil {
		return err
	}

	resp, err := h.service.Register(c.Context(), req)
	if err != nil {
		var fieldErr *auth.FieldError
		if errors.As(err, &fieldErr) {
			return httperr.Unprocessable(fieldErr.Msg)
		}
		if errors.Is(err, auth.ErrDuplicateUsername) {
			return httperr.BadRequest(auth.ErrDuplicateUsername.Error())
		}
		logger.L().Error("register service failed", "handler", "Register", "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	c.Location(c.Path() + "/" + resp.ID)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login handles authentication.
// A missing field is a 400; unknown username and wrong password both produce
// the same 401 so callers cannot enumerate accounts.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req auth.LoginRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Login"); err != nil {
		return err
	}

	if req.Username == "" {
		return httperr.BadRequest("Missing `username` in request body")
	}
	if req.Password == "" {
		return httperr.BadRequest("Missing `password` in request body")
	}

	resp, err := h.service.Login(c.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return httperr.Fail(httperr.ErrUnauthorized)
		}
		logger.L().Error("login service failed", "handler", "Login", "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	return c.JSON(resp)
}
