package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"noteful/internal/logger"
	"noteful/internal/services/tags"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// TagsRepo implements tags.Repository and notes.TagResolver for MongoDB
type TagsRepo struct {
	collection *mongo.Collection
}

func translateTagNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return tags.ErrTagNotFound
	}
	return err
}

// NewTagsRepo creates a new tags repository. Tag names are unique per user,
// enforced by a compound unique index.
func NewTagsRepo(parentCtx context.Context, db *mongo.Database) (*TagsRepo, error) {
	collection := db.Collection("tags")

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "name", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}

	ctx, cancel := context.WithTimeout(parentCtx, OpTimeout)
	defer cancel()

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("failed to create tags collection index: %w", err)
		}
	}

	return &TagsRepo{
		collection: collection,
	}, nil
}

// Create inserts a new tag; a per-user name collision maps to the domain error
func (r *TagsRepo) Create(ctx context.Context, tag *tags.Tag) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, tag)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return tags.ErrDuplicateName
		}
		return err
	}

	return nil
}

// List returns the user's tags sorted by name
func (r *TagsRepo) List(ctx context.Context, userID bson.ObjectID) ([]*tags.Tag, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer func(ctxToClose context.Context) {
		if cerr := cursor.Close(ctxToClose); cerr != nil {
			logger.L().Error("failed to close cursor", "error", cerr)
		}
	}(ctx)

	tagsList := []*tags.Tag{}
	if err := cursor.All(ctx, &tagsList); err != nil {
		return nil, err
	}

	return tagsList, nil
}

// FindOne fetches a single tag scoped by id and owner
func (r *TagsRepo) FindOne(ctx context.Context, userID, tagID bson.ObjectID) (*tags.Tag, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	var tag tags.Tag
	err := r.collection.FindOne(ctx, bson.M{"_id": tagID, "user_id": userID}).Decode(&tag)
	if err != nil {
		return nil, translateTagNotFound(err)
	}

	return &tag, nil
}

// Rename updates the tag's name scoped by id and owner
func (r *TagsRepo) Rename(ctx context.Context, userID, tagID bson.ObjectID, name string) (*tags.Tag, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	filter := bson.M{"_id": tagID, "user_id": userID}
	update := bson.M{"$set": bson.M{
		"name":       name,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var tag tags.Tag
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&tag); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, tags.ErrDuplicateName
		}
		return nil, translateTagNotFound(err)
	}

	return &tag, nil
}

// Delete removes the tag scoped by id and owner; idempotent
func (r *TagsRepo) Delete(ctx context.Context, userID, tagID bson.ObjectID) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": tagID, "user_id": userID})
	return err
}

// FindOwned returns the subset of tagIDs that exist and belong to the user.
// Ids owned by other users simply do not come back, which is what lets the
// notes service reject them without revealing they exist.
func (r *TagsRepo) FindOwned(ctx context.Context, userID bson.ObjectID, tagIDs []bson.ObjectID) ([]*tags.Tag, error) {
	if len(tagIDs) == 0 {
		return []*tags.Tag{}, nil
	}

	ctx, cancel := repoCtx(ctx)
	defer cancel()

	filter := bson.M{
		"user_id": userID,
		"_id":     bson.M{"$in": tagIDs},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer func(ctxToClose context.Context) {
		if cerr := cursor.Close(ctxToClose); cerr != nil {
			logger.L().Error("failed to close cursor", "error", cerr)
		}
	}(ctx)

	tagsList := []*tags.Tag{}
	if err := cursor.All(ctx, &tagsList); err != nil {
		return nil, err
	}

	return tagsList, nil
}
