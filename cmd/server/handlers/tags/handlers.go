package tags

import (
	"context"
	"errors"

	"noteful/cmd/server/handlers/handlerutil"
	"noteful/cmd/server/handlers/httperr"
	"noteful/internal/logger"
	"noteful/internal/services/tags"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service defines the interface for the tags service
type Service interface {
	Create(ctx context.Context, userID bson.ObjectID, req tags.UpsertTagRequest) (*tags.Tag, error)
	List(ctx context.Context, userID bson.ObjectID) ([]*tags.Tag, error)
	Get(ctx context.Context, userID, tagID bson.ObjectID) (*tags.Tag, error)
	Rename(ctx context.Context, userID, tagID bson.ObjectID, req tags.UpsertTagRequest) (*tags.Tag, error)
	Delete(ctx context.Context, userID, tagID bson.ObjectID) error
}

// Handlers contains the tags CRUD HTTP handlers
type Handlers struct {
	service   Service
	validator *validator.Validate
}

// NewHandlers creates new tags handlers
func NewHandlers(service Service, validator *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

func requestErr(err error, handlerName string) error {
	switch {
	case errors.Is(err, tags.ErrMissingName),
		errors.Is(err, tags.ErrDuplicateName):
		return httperr.BadRequest(err.Error())
	case errors.Is(err, tags.ErrTagNotFound):
		return httperr.Fail(httperr.ErrNotFound)
	}
	logger.L().Error("tags service failed", "handler", handlerName, "error", err)
	return httperr.Fail(httperr.ErrInternal)
}

// List returns all of the caller's tags
func (h *Handlers) List(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	tagsList, err := h.service.List(c.Context(), userID)
	if err != nil {
		return requestErr(err, "ListTags")
	}

	return c.JSON(tagsList)
}

// Get returns a single owned tag
func (h *Handlers) Get(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	tagID, err := handlerutil.ExtractEntityID(c)
	if err != nil {
		return err
	}

	tag, err := h.service.Get(c.Context(), userID, tagID)
	if err != nil {
		return requestErr(err, "GetTag")
	}

	return c.JSON(tag)
}

// Create persists a new tag, answering 201 with a Location header
func (h *Handlers) Create(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	var req tags.UpsertTagRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "CreateTag"); err != nil {
		return err
	}

	tag, err := h.service.Create(c.Context(), userID, req)
	if err != nil {
		return requestErr(err, "CreateTag")
	}

	c.Location(c.Path() + "/" + tag.ID.Hex())
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// Rename updates an owned tag's name
func (h *Handlers) Rename(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	tagID, err := handlerutil.ExtractEntityID(c)
	if err != nil {
		return err
	}

	var req tags.UpsertTagRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "RenameTag"); err != nil {
		return err
	}

	tag, err := h.service.Rename(c.Context(), userID, tagID, req)
	if err != nil {
		return requestErr(err, "RenameTag")
	}

	return c.JSON(tag)
}

// Delete removes an owned tag and detaches it from every note. 204 regardless
// of whether anything was actually deleted.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	tagID, err := handlerutil.ExtractEntityID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Context(), userID, tagID); err != nil {
		return requestErr(err, "DeleteTag")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
