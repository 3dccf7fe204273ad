package folders

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"noteful/internal/utils/sanitize"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service handles folder business logic
type Service struct {
	repo  Repository
	notes NoteUnlinker
	log   *slog.Logger
}

// NewService creates a new folders service
func NewService(repo Repository, notes NoteUnlinker, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		notes: notes,
		log:   log,
	}
}

// Create persists a new folder owned by userID
func (s *Service) Create(ctx context.Context, userID bson.ObjectID, req UpsertFolderRequest) (*Folder, error) {
	name := sanitize.Clean(req.Name)
	if name == "" {
		return nil, ErrMissingName
	}

	now := time.Now().UTC()
	folder := &Folder{
		ID:        bson.NewObjectID(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, folder); err != nil {
		if errors.Is(err, ErrDuplicateName) {
			return nil, ErrDuplicateName
		}
		s.log.Error("failed to create folder", "error", err, "user_id", userID.Hex())
		return nil, errors.New("failed to create folder")
	}

	return folder, nil
}

// List returns all of the user's folders sorted by name
func (s *Service) List(ctx context.Context, userID bson.ObjectID) ([]*Folder, error) {
	foldersList, err := s.repo.List(ctx, userID)
	if err != nil {
		s.log.Error("failed to list folders", "error", err, "user_id", userID.Hex())
		return nil, errors.New("failed to list folders")
	}
	return foldersList, nil
}

// Get fetches a single owned folder; absence and non-ownership are
// indistinguishable to the caller.
func (s *Service) Get(ctx context.Context, userID, folderID bson.ObjectID) (*Folder, error) {
	folder, err := s.repo.FindOne(ctx, userID, folderID)
	if err != nil {
		if errors.Is(err, ErrFolderNotFound) {
			return nil, ErrFolderNotFound
		}
		s.log.Error("failed to get folder", "error", err, "user_id", userID.Hex(), "folder_id", folderID.Hex())
		return nil, errors.New("failed to get folder")
	}
	return folder, nil
}

// Rename updates the folder's name
func (s *Service) Rename(ctx context.Context, userID, folderID bson.ObjectID, req UpsertFolderRequest) (*Folder, error) {
	name := sanitize.Clean(req.Name)
	if name == "" {
		return nil, ErrMissingName
	}

	folder, err := s.repo.Rename(ctx, userID, folderID, name)
	if err != nil {
		switch {
		case errors.Is(err, ErrFolderNotFound):
			return nil, ErrFolderNotFound
		case errors.Is(err, ErrDuplicateName):
			return nil, ErrDuplicateName
		}
		s.log.Error("failed to rename folder", "error", err, "user_id", userID.Hex(), "folder_id", folderID.Hex())
		return nil, errors.New("failed to rename folder")
	}
	return folder, nil
}

// Delete removes the folder and unsets the reference on every note that was
// filed under it. The two writes are not atomic; a note filed in between may
// briefly hold a dangling folder id, which readers tolerate.
func (s *Service) Delete(ctx context.Context, userID, folderID bson.ObjectID) error {
	if err := s.repo.Delete(ctx, userID, folderID); err != nil {
		s.log.Error("failed to delete folder", "error", err, "user_id", userID.Hex(), "folder_id", folderID.Hex())
		return errors.New("failed to delete folder")
	}

	if err := s.notes.ClearFolderRefs(ctx, userID, folderID); err != nil {
		s.log.Error("failed to unlink folder from notes", "error", err, "user_id", userID.Hex(), "folder_id", folderID.Hex())
		return errors.New("failed to delete folder")
	}

	return nil
}
