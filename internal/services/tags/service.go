package tags

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"noteful/internal/utils/sanitize"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service handles tag business logic
type Service struct {
	repo  Repository
	notes NoteUntagger
	log   *slog.Logger
}

// NewService creates a new tags service
func NewService(repo Repository, notes NoteUntagger, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		notes: notes,
		log:   log,
	}
}

// Create persists a new tag owned by userID
func (s *Service) Create(ctx context.Context, userID bson.ObjectID, req UpsertTagRequest) (*Tag, error) {
	name := sanitize.Clean(req.Name)
	if name == "" {
		return nil, ErrMissingName
	}

	now := time.Now().UTC()
	tag := &Tag{
		ID:        bson.NewObjectID(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, tag); err != nil {
		if errors.Is(err, ErrDuplicateName) {
			return nil, ErrDuplicateName
		}
		s.log.Error("failed to create tag", "error", err, "user_id", userID.Hex())
		return nil, errors.New("failed to create tag")
	}

	return tag, nil
}

// List returns all of the user's tags sorted by name
func (s *Service) List(ctx context.Context, userID bson.ObjectID) ([]*Tag, error) {
	tagsList, err := s.repo.List(ctx, userID)
	if err != nil {
		s.log.Error("failed to list tags", "error", err, "user_id", userID.Hex())
		return nil, errors.New("failed to list tags")
	}
	return tagsList, nil
}

// Get fetches a single owned tag; absence and non-ownership are
// indistinguishable to the caller.
func (s *Service) Get(ctx context.Context, userID, tagID bson.ObjectID) (*Tag, error) {
	tag, err := s.repo.FindOne(ctx, userID, tagID)
	if err != nil {
		if errors.Is(err, ErrTagNotFound) {
			return nil, ErrTagNotFound
		}
		s.log.Error("failed to get tag", "error", err, "user_id", userID.Hex(), "tag_id", tagID.Hex())
		return nil, errors.New("failed to get tag")
	}
	return tag, nil
}

// Rename updates the tag's name
func (s *Service) Rename(ctx context.Context, userID, tagID bson.ObjectID, req UpsertTagRequest) (*Tag, error) {
	name := sanitize.Clean(req.Name)
	if name == "" {
		return nil, ErrMissingName
	}

	tag, err := s.repo.Rename(ctx, userID, tagID, name)
	if err != nil {
		switch {
		case errors.Is(err, ErrTagNotFound):
			return nil, ErrTagNotFound
		case errors.Is(err, ErrDuplicateName):
			return nil, ErrDuplicateName
		}
		s.log.Error("failed to rename tag", "error", err, "user_id", userID.Hex(), "tag_id", tagID.Hex())
		return nil, errors.New("failed to rename tag")
	}
	return tag, nil
}

// Delete removes the tag and pulls its id from every note that carries it.
// The two writes are not atomic; a note created in between may briefly hold a
// dangling tag id, which readers tolerate.
func (s *Service) Delete(ctx context.Context, userID, tagID bson.ObjectID) error {
	if err := s.repo.Delete(ctx, userID, tagID); err != nil {
		s.log.Error("failed to delete tag", "error", err, "user_id", userID.Hex(), "tag_id", tagID.Hex())
		return errors.New("failed to delete tag")
	}

	if err := s.notes.PullTagRefs(ctx, userID, tagID); err != nil {
		s.log.Error("failed to detach tag from notes", "error", err, "user_id", userID.Hex(), "tag_id", tagID.Hex())
		return errors.New("failed to delete tag")
	}

	return nil
}
