package folders

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Folder groups a user's notes. A note references at most one folder.
type Folder struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd1"`
	UserID    bson.ObjectID `bson:"user_id" json:"userId" example:"683cdb8aa96ad71e8e075bd0"`
	Name      string        `bson:"name" json:"name" example:"Archive"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updatedAt"`
}

// UpsertFolderRequest is the payload for both create and rename
type UpsertFolderRequest struct {
	Name string `json:"name" validate:"required" example:"Archive"`
}
