package tags

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Tag is a user-scoped label attached to notes by reference
type Tag struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd1"`
	UserID    bson.ObjectID `bson:"user_id" json:"userId" example:"683cdb8aa96ad71e8e075bd0"`
	Name      string        `bson:"name" json:"name" example:"urgent"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updatedAt"`
}

// UpsertTagRequest is the payload for both create and rename
type UpsertTagRequest struct {
	Name string `json:"name" validate:"required" example:"urgent"`
}
