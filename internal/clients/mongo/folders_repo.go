package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"noteful/internal/logger"
	"noteful/internal/services/folders"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// FoldersRepo implements folders.Repository and notes.FolderResolver for MongoDB
type FoldersRepo struct {
	collection *mongo.Collection
}

func translateFolderNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return folders.ErrFolderNotFound
	}
	return err
}

// NewFoldersRepo creates a new folders repository. Folder names are unique
// per user, enforced by a compound unique index.
func NewFoldersRepo(parentCtx context.Context, db *mongo.Database) (*FoldersRepo, error) {
	collection := db.Collection("folders")

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
			return nil, fmt.Errorf("failed to create folders collection index: %w", err)
		}
	}

	return &FoldersRepo{
		collection: collection,
	}, nil
}

// Create inserts a new folder; a per-user name collision maps to the domain error
func (r *FoldersRepo) Create(ctx context.Context, folder *folders.Folder) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, folder)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return folders.ErrDuplicateName
		}
		return err
	}

	return nil
}

// List returns the user's folders sorted by name
func (r *FoldersRepo) List(ctx context.Context, userID bson.ObjectID) ([]*folders.Folder, error) {
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

	foldersList := []*folders.Folder{}
	if err := cursor.All(ctx, &foldersList); err != nil {
		return nil, err
	}

	return foldersList, nil
}

// FindOne fetches a single folder scoped by id and owner
func (r *FoldersRepo) FindOne(ctx context.Context, userID, folderID bson.ObjectID) (*folders.Folder, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	var folder folders.Folder
	err := r.collection.FindOne(ctx, bson.M{"_id": folderID, "user_id": userID}).Decode(&folder)
	if err != nil {
		return nil, translateFolderNotFound(err)
	}

	return &folder, nil
}

// Rename updates the folder's name scoped by id and owner
func (r *FoldersRepo) Rename(ctx context.Context, userID, folderID bson.ObjectID, name string) (*folders.Folder, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	filter := bson.M{"_id": folderID, "user_id": userID}
	update := bson.M{"$set": bson.M{
		"name":       name,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var folder folders.Folder
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&folder); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, folders.ErrDuplicateName
		}
		return nil, translateFolderNotFound(err)
	}

	return &folder, nil
}

// Delete removes the folder scoped by id and owner; idempotent
func (r *FoldersRepo) Delete(ctx context.Context, userID, folderID bson.ObjectID) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": folderID, "user_id": userID})
	return err
}

// OwnedFolderExists reports whether the folder exists and belongs to the user.
// It never distinguishes "absent" from "owned by somebody else".
func (r *FoldersRepo) OwnedFolderExists(ctx context.Context, userID, folderID bson.ObjectID) (bool, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": folderID, "user_id": userID})
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
