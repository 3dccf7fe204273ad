package folders

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository defines folder persistence. Every operation is scoped to the
// owning user; no call can touch another user's folders.
type Repository interface {
	Create(ctx context.Context, f *Folder) error
	List(ctx context.Context, userID bson.ObjectID) ([]*Folder, error)
	FindOne(ctx context.Context, userID, folderID bson.ObjectID) (*Folder, error)
	Rename(ctx context.Context, userID, folderID bson.ObjectID, name string) (*Folder, error)
	Delete(ctx context.Context, userID, folderID bson.ObjectID) error
}

// NoteUnlinker clears the folder reference from every note that points at a
// deleted folder. Notes themselves survive folder deletion.
type NoteUnlinker interface {
	ClearFolderRefs(ctx context.Context, userID, folderID bson.ObjectID) error
}
