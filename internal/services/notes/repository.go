package notes

import (
	"context"

	"noteful/internal/services/tags"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository defines note persistence. Every operation is scoped to the
// owning user; no call can read or write another user's notes.
type Repository interface {
	Create(ctx context.Context, n *Note) error
	// List returns the user's notes matching the filter, most recently
	// updated first with _id as the deterministic tiebreak.
	List(ctx context.Context, userID bson.ObjectID, f ListFilter) ([]*Note, error)
	FindOne(ctx context.Context, userID, noteID bson.ObjectID) (*Note, error)
	// Update merges the patch into the owned note and returns the updated
	// document, or ErrNoteNotFound when no owned note matches.
	Update(ctx context.Context, userID, noteID bson.ObjectID, patch UpdateNote) (*Note, error)
	// Delete is idempotent: removing an absent or non-owned note is a no-op,
	// not an error.
	Delete(ctx context.Context, userID, noteID bson.ObjectID) error
}

// FolderResolver answers whether a referenced folder exists AND belongs to the
// user. Callers surface a negative answer as a generic bad reference, never as
// "not found", so the existence of other users' folders stays hidden.
type FolderResolver interface {
	OwnedFolderExists(ctx context.Context, userID, folderID bson.ObjectID) (bool, error)
}

// TagResolver fetches the subset of tagIDs that exist and belong to the user.
// It serves both ownership validation (every requested id must come back) and
// tag population on reads.
type TagResolver interface {
	FindOwned(ctx context.Context, userID bson.ObjectID, tagIDs []bson.ObjectID) ([]*tags.Tag, error)
}
