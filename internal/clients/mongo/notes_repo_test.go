package mongo

import (
	"testing"

	"noteful/internal/services/notes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestNotesRepo_BuildListFilter(t *testing.T) {
	repo := &NotesRepo{}
	userID := bson.NewObjectID()
	folderID := bson.NewObjectID()
	tagID := bson.NewObjectID()

	t.Run("always scopes to user", func(t *testing.T) {
		filter := repo.buildListFilter(userID, notes.ListFilter{})
		assert.Equal(t, bson.M{"user_id": userID}, filter)
	})

	t.Run("search term matches title or content", func(t *testing.T) {
		filter := repo.buildListFilter(userID, notes.ListFilter{SearchTerm: "meeting"})

		assert.Equal(t, userID, filter["user_id"])
		or, ok := filter["$or"].(bson.A)
		require.True(t, ok)
		require.Len(t, or, 2)

		regex := bson.M{"$regex": "meeting", "$options": "i"}
		assert.Equal(t, bson.M{"title": regex}, or[0])
		assert.Equal(t, bson.M{"content": regex}, or[1])
	})

	t.Run("search term is escaped, not interpreted", func(t *testing.T) {
		filter := repo.buildListFilter(userID, notes.ListFilter{SearchTerm: "a.b*"})

		or := filter["$or"].(bson.A)
		regex := or[0].(bson.M)["title"].(bson.M)
		assert.Equal(t, `a\.b\*`, regex["$regex"])
	})

	t.Run("folder filter is equality", func(t *testing.T) {
		filter := repo.buildListFilter(userID, notes.ListFilter{FolderID: &folderID})
		assert.Equal(t, folderID, filter["folder_id"])
	})

	t.Run("tag filter is array membership", func(t *testing.T) {
		filter := repo.buildListFilter(userID, notes.ListFilter{TagID: &tagID})
		assert.Equal(t, tagID, filter["tags"])
	})

	t.Run("filters combine", func(t *testing.T) {
		filter := repo.buildListFilter(userID, notes.ListFilter{
			SearchTerm: "x",
			FolderID:   &folderID,
			TagID:      &tagID,
		})
		assert.Equal(t, userID, filter["user_id"])
		assert.Contains(t, filter, "$or")
		assert.Equal(t, folderID, filter["folder_id"])
		assert.Equal(t, tagID, filter["tags"])
	})
}

func TestObjectIDConversions(t *testing.T) {
	id := bson.NewObjectID()
	assert.False(t, id.IsZero())

	hexString := id.Hex()
	assert.NotEmpty(t, hexString)

	parsedID, err := bson.ObjectIDFromHex(hexString)
	assert.NoError(t, err)
	assert.Equal(t, id, parsedID)

	_, err = bson.ObjectIDFromHex("invalid")
	assert.Error(t, err)
}
