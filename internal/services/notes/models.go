package notes

import (
	"time"

	"noteful/internal/services/tags"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Note is the stored shape of a note. UserID always comes from the
// authenticated caller, never from client input. FolderID and every member of
// TagIDs must reference an entity owned by the same user.
type Note struct {
	ID        bson.ObjectID   `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd1"`
	UserID    bson.ObjectID   `bson:"user_id" json:"userId" example:"683cdb8aa96ad71e8e075bd0"`
	Title     string          `bson:"title" json:"title" validate:"required" example:"Meeting Notes"`
	Content   string          `bson:"content,omitempty" json:"content,omitempty" example:"Remember to discuss the quarterly targets"`
	FolderID  *bson.ObjectID  `bson:"folder_id,omitempty" json:"folderId,omitempty"`
	TagIDs    []bson.ObjectID `bson:"tags" json:"-"`
	CreatedAt time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `bson:"updated_at" json:"updatedAt"`
}

// NoteView is the API shape of a note: the raw tag ids resolved to full tag
// objects, the way list and single-note reads return them.
type NoteView struct {
	Note
	Tags []*tags.Tag `json:"tags"`
}

// CreateNoteRequest represents a note creation request.
// An empty folderId means "no folder" and is dropped rather than rejected.
type CreateNoteRequest struct {
	Title    string   `json:"title" example:"Meeting Notes"`
	Content  string   `json:"content" example:"Remember to discuss the quarterly targets"`
	FolderID string   `json:"folderId" example:"683cdb8aa96ad71e8e075bd2"`
	Tags     []string `json:"tags"`
}

// UpdateNoteRequest carries the allow-listed updatable fields. Nil means the
// field was not supplied and the stored value is left untouched; a supplied
// tags array replaces the stored one wholesale.
type UpdateNoteRequest struct {
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	FolderID *string   `json:"folderId,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

// ListNotesRequest represents the list query parameters
type ListNotesRequest struct {
	SearchTerm string `query:"searchTerm" example:"meeting"`
	FolderID   string `query:"folderId" example:"683cdb8aa96ad71e8e075bd2"`
	TagID      string `query:"tagId" example:"683cdb8aa96ad71e8e075bd3"`
}

// UpdateNote is the repository-level patch produced from an UpdateNoteRequest
// after validation. ClearFolder unsets the folder reference.
type UpdateNote struct {
	Title       *string
	Content     *string
	FolderID    *bson.ObjectID
	ClearFolder bool
	TagIDs      *[]bson.ObjectID
}

// ListFilter is the repository-level form of ListNotesRequest with ids parsed
type ListFilter struct {
	SearchTerm string
	FolderID   *bson.ObjectID
	TagID      *bson.ObjectID
}
