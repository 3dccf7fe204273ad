package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"noteful/internal/logger"
	"noteful/internal/services/notes"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// NotesRepo implements the notes.Repository interface for MongoDB
type NotesRepo struct {
	collection *mongo.Collection
}

// translateNotFound maps the driver ErrNoDocuments to the domain-level ErrNoteNotFound.
func translateNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notes.ErrNoteNotFound
	}
	return err
}

// NewNotesRepo creates a new notes repository
func NewNotesRepo(parentCtx context.Context, db *mongo.Database) (*NotesRepo, error) {
	collection := db.Collection("notes")

	indexes := []mongo.IndexModel{
		// List sort: most-recently-updated first, _id as tiebreak
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "updated_at", Value: -1},
				{Key: "_id", Value: -1},
			},
		},
		// Folder equality filter and ClearFolderRefs
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "folder_id", Value: 1},
			},
		},
		// Tag membership filter and PullTagRefs
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "tags", Value: 1},
			},
		},
	}

	ctx, cancel := context.WithTimeout(parentCtx, OpTimeout)
	defer cancel()

	for _, indexModel := range indexes {
		_, err := collection.Indexes().CreateOne(ctx, indexModel)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				logger.L().Debug("index already exists, continuing", "collection", "notes")
			} else {
				logger.L().Error("failed to create index", "collection", "notes", "error", err)
				return nil, fmt.Errorf("failed to create notes collection index: %w", err)
			}
		}
	}

	return &NotesRepo{
		collection: collection,
	}, nil
}

// Create inserts a new note
func (r *NotesRepo) Create(ctx context.Context, note *notes.Note) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	if note.TagIDs == nil {
		note.TagIDs = []bson.ObjectID{}
	}

	_, err := r.collection.InsertOne(ctx, note)
	return err
}

// buildListFilter constructs the MongoDB filter for the List query. The
// user_id clause is unconditional; everything else narrows within it.
func (r *NotesRepo) buildListFilter(userID bson.ObjectID, f notes.ListFilter) bson.M {
	filter := bson.M{"user_id": userID}

	if f.SearchTerm != "" {
		pattern := regexp.QuoteMeta(f.SearchTerm)
		regex := bson.M{"$regex": pattern, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"content": regex},
		}
	}

	if f.FolderID != nil {
		filter["folder_id"] = *f.FolderID
	}

	if f.TagID != nil {
		// membership test against the tags array
		filter["tags"] = *f.TagID
	}

	return filter
}

// List retrieves the user's notes matching the filter, newest update first
func (r *NotesRepo) List(ctx context.Context, userID bson.ObjectID, f notes.ListFilter) ([]*notes.Note, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	filter := r.buildListFilter(userID, f)
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func(ctxToClose context.Context) {
		if cerr := cursor.Close(ctxToClose); cerr != nil {
			logger.L().Error("failed to close cursor", "error", cerr)
		}
	}(ctx)

	notesList := []*notes.Note{}
	if err := cursor.All(ctx, &notesList); err != nil {
		return nil, err
	}

	return notesList, nil
}

// FindOne fetches a single note scoped by id and owner
func (r *NotesRepo) FindOne(ctx context.Context, userID, noteID bson.ObjectID) (*notes.Note, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	filter := bson.M{
		"_id":     noteID,
		"user_id": userID,
	}

	var note notes.Note
	if err := r.collection.FindOne(ctx, filter).Decode(&note); err != nil {
		return nil, translateNotFound(err)
	}

	return &note, nil
}

// Update merges the patch into the note scoped by id and owner and returns
// the updated document. Supplied fields fully replace stored ones; the tags
// array is replaced, never merged.
func (r *NotesRepo) Update(ctx context.Context, userID, noteID bson.ObjectID, patch notes.UpdateNote) (*notes.Note, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	filter := bson.M{
		"_id":     noteID,
		"user_id": userID,
	}

	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.FolderID != nil {
		set["folder_id"] = *patch.FolderID
	}
	if patch.TagIDs != nil {
		set["tags"] = *patch.TagIDs
	}

	update := bson.M{"$set": set}
	if patch.ClearFolder {
		update["$unset"] = bson.M{"folder_id": ""}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated notes.Note
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		return nil, translateNotFound(err)
	}

	return &updated, nil
}

// Delete removes the note scoped by id and owner. Zero matched documents is
// not an error: deletes are idempotent by contract.
func (r *NotesRepo) Delete(ctx context.Context, userID, noteID bson.ObjectID) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	filter := bson.M{
		"_id":     noteID,
		"user_id": userID,
	}

	_, err := r.collection.DeleteOne(ctx, filter)
	return err
}

// ClearFolderRefs unsets folder_id on every note of the user that references
// the given folder. Used when a folder is deleted.
func (r *NotesRepo) ClearFolderRefs(ctx context.Context, userID, folderID bson.ObjectID) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	filter := bson.M{
		"user_id":   userID,
		"folder_id": folderID,
	}

	_, err := r.collection.UpdateMany(ctx, filter, bson.M{"$unset": bson.M{"folder_id": ""}})
	return err
}

// PullTagRefs removes the tag id from every note of the user that carries it.
// Used when a tag is deleted.
func (r *NotesRepo) PullTagRefs(ctx context.Context, userID, tagID bson.ObjectID) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	filter := bson.M{
		"user_id": userID,
		"tags":    tagID,
	}

	_, err := r.collection.UpdateMany(ctx, filter, bson.M{"$pull": bson.M{"tags": tagID}})
	return err
}
