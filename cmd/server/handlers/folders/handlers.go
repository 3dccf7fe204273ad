package folders

import (
	"context"
	"errors"

	"noteful/cmd/server/handlers/handlerutil"
	"noteful/cmd/server/handlers/httperr"
	"noteful/internal/logger"
	"noteful/internal/services/folders"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service defines the interface for the folders service
type Service interface {
	Create(ctx context.Context, userID bson.ObjectID, req folders.UpsertFolderRequest) (*folders.Folder, error)
	List(ctx context.Context, userID bson.ObjectID) ([]*folders.Folder, error)
	Get(ctx context.Context, userID, folderID bson.ObjectID) (*folders.Folder, error)
	Rename(ctx context.Context, userID, folderID bson.ObjectID, req folders.UpsertFolderRequest) (*folders.Folder, error)
	Delete(ctx context.Context, userID, folderID bson.ObjectID) error
}

// Handlers contains the folders CRUD HTTP handlers
type Handlers struct {
	service   Service
	validator *validator.Validate
}

// NewHandlers creates new folders handlers
func NewHandlers(service Service, validator *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

func requestErr(err error, handlerName string) error {
	switch {
	case errors.Is(err, folders.ErrMissingName),
		errors.Is(err, folders.ErrDuplicateName):
		return httperr.BadRequest(err.Error())
	case errors.Is(err, folders.ErrFolderNotFound):
		return httperr.Fail(httperr.ErrNotFound)
	}
	logger.L().Error("folders service failed", "handler", handlerName, "error", err)
	return httperr.Fail(httperr.ErrInternal)
}

// List returns all of the caller's folders
func (h *Handlers) List(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	foldersList, err := h.service.List(c.Context(), userID)
	if err != nil {
		return requestErr(err, "ListFolders")
	}

	return c.JSON(foldersList)
}

// Get returns a single owned folder
func (h *Handlers) Get(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	folderID, err := handlerutil.ExtractEntityID(c)
	if err != nil {
		return err
	}

	folder, err := h.service.Get(c.Context(), userID, folderID)
	if err != nil {
		return requestErr(err, "GetFolder")
	}

	return c.JSON(folder)
}

// Create persists a new folder, answering 201 with a Location header
func (h *Handlers) Create(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	var req folders.UpsertFolderRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "CreateFolder"); err != nil {
		return err
	}

	folder, err := h.service.Create(c.Context(), userID, req)
	if err != nil {
		return requestErr(err, "CreateFolder")
	}

	c.Location(c.Path() + "/" + folder.ID.Hex())
	return c.Status(fiber.StatusCreated).JSON(folder)
}

// Rename updates an owned folder's name
func (h *Handlers) Rename(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	folderID, err := handlerutil.ExtractEntityID(c)
	if err != nil {
		return err
	}

	var req folders.UpsertFolderRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "RenameFolder"); err != nil {
		return err
	}

	folder, err := h.service.Rename(c.Context(), userID, folderID, req)
	if err != nil {
		return requestErr(err, "RenameFolder")
	}

	return c.JSON(folder)
}

// Delete removes an owned folder and unfiles its notes. 204 regardless of
// whether anything was actually deleted.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	folderID, err := handlerutil.ExtractEntityID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Context(), userID, folderID); err != nil {
		return requestErr(err, "DeleteFolder")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
