package tags

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository defines tag persistence. Every operation is scoped to the
// owning user; no call can touch another user's tags.
type Repository interface {
	Create(ctx context.Context, t *Tag) error
	List(ctx context.Context, userID bson.ObjectID) ([]*Tag, error)
	FindOne(ctx context.Context, userID, tagID bson.ObjectID) (*Tag, error)
	Rename(ctx context.Context, userID, tagID bson.ObjectID, name string) (*Tag, error)
	Delete(ctx context.Context, userID, tagID bson.ObjectID) error
}

// NoteUntagger detaches a deleted tag from every note that references it.
type NoteUntagger interface {
	PullTagRefs(ctx context.Context, userID, tagID bson.ObjectID) error
}
