package notes

import (
	"context"
	"errors"

	"noteful/cmd/server/handlers/handlerutil"
	"noteful/cmd/server/handlers/httperr"
	"noteful/internal/logger"
	"noteful/internal/services/notes"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service defines the interface for the notes service
type Service interface {
	Create(ctx context.Context, userID bson.ObjectID, req notes.CreateNoteRequest) (*notes.NoteView, error)
	List(ctx context.Context, userID bson.ObjectID, req notes.ListNotesRequest) ([]*notes.NoteView, error)
	Get(ctx context.Context, userID, noteID bson.ObjectID) (*notes.NoteView, error)
	Update(ctx context.Context, userID, noteID bson.ObjectID, req notes.UpdateNoteRequest) (*notes.NoteView, error)
	Delete(ctx context.Context, userID, noteID bson.ObjectID) error
}

// Handlers contains the notes CRUD HTTP handlers
type Handlers struct {
	service   Service
	validator *validator.Validate
}

// NewHandlers creates new notes handlers
func NewHandlers(service Service, validator *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

// requestErr maps the service's validation sentinels to their HTTP form.
// Unknown errors fall through as 500.
func requestErr(err error, handlerName string) error {
	switch {
	case errors.Is(err, notes.ErrMissingTitle),
		errors.Is(err, notes.ErrInvalidID),
		errors.Is(err, notes.ErrInvalidFolderID),
		errors.Is(err, notes.ErrInvalidTagID),
		errors.Is(err, notes.ErrInvalidTagRef):
		return httperr.BadRequest(err.Error())
	case errors.Is(err, notes.ErrNoteNotFound):
		return httperr.Fail(httperr.ErrNotFound)
	}
	logger.L().Error("notes service failed", "handler", handlerName, "error", err)
	return httperr.Fail(httperr.ErrInternal)
}

// List returns the caller's notes, optionally filtered by searchTerm,
// folderId, and tagId query params.
func (h *Handlers) List(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	var req notes.ListNotesRequest
	if err := handlerutil.ParseAndValidateQuery(c, &req, h.validator, "ListNotes"); err != nil {
		return err
	}

	views, err := h.service.List(c.Context(), userID, req)
	if err != nil {
		return requestErr(err, "ListNotes")
	}

	return c.JSON(views)
}

// Get returns a single owned note with its tags resolved
func (h *Handlers) Get(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	noteID, err := handlerutil.ExtractEntityID(c)
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Context(), userID, noteID)
	if err != nil {
		return requestErr(err, "GetNote")
	}

	return c.JSON(view)
}

// Create validates and persists a new note, answering 201 with a Location
// header pointing at the created resource.
func (h *Handlers) Create(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	var req notes.CreateNoteRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "CreateNote"); err != nil {
		return err
	}

	view, err := h.service.Create(c.Context(), userID, req)
	if err != nil {
		return requestErr(err, "CreateNote")
	}

	c.Location(c.Path() + "/" + view.ID.Hex())
	return c.Status(fiber.StatusCreated).JSON(view)
}

// Update merges allow-listed fields into an owned note
func (h *Handlers) Update(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	noteID, err := handlerutil.ExtractEntityID(c)
	if err != nil {
		return err
	}

	var req notes.UpdateNoteRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "UpdateNote"); err != nil {
		return err
	}

	view, err := h.service.Update(c.Context(), userID, noteID, req)
	if err != nil {
		return requestErr(err, "UpdateNote")
	}

	return c.JSON(view)
}

// Delete removes an owned note. 204 regardless of whether anything was
// actually deleted.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	noteID, err := handlerutil.ExtractEntityID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Context(), userID, noteID); err != nil {
		return requestErr(err, "DeleteNote")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
