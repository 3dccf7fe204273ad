package tags

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var silentLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, tag *Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, userID bson.ObjectID) ([]*Tag, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Tag), args.Error(1)
}

func (m *MockRepository) FindOne(ctx context.Context, userID, tagID bson.ObjectID) (*Tag, error) {
	args := m.Called(ctx, userID, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Tag), args.Error(1)
}

func (m *MockRepository) Rename(ctx context.Context, userID, tagID bson.ObjectID, name string) (*Tag, error) {
	args := m.Called(ctx, userID, tagID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Tag), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, userID, tagID bson.ObjectID) error {
	args := m.Called(ctx, userID, tagID)
	return args.Error(0)
}

// MockNoteUntagger is a mock implementation of NoteUntagger
type MockNoteUntagger struct {
	mock.Mock
}

func (m *MockNoteUntagger) PullTagRefs(ctx context.Context, userID, tagID bson.ObjectID) error {
	args := m.Called(ctx, userID, tagID)
	return args.Error(0)
}

func TestService_Create(t *testing.T) {
	userID := bson.NewObjectID()

	t.Run("missing name", func(t *testing.T) {
		repo := new(MockRepository)
		service := NewService(repo, new(MockNoteUntagger), silentLogger)

		tag, err := service.Create(context.Background(), userID, UpsertTagRequest{Name: ""})
		assert.ErrorIs(t, err, ErrMissingName)
		assert.Nil(t, tag)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*tags.Tag")).Return(ErrDuplicateName)
		service := NewService(repo, new(MockNoteUntagger), silentLogger)

		tag, err := service.Create(context.Background(), userID, UpsertTagRequest{Name: "work"})
		assert.ErrorIs(t, err, ErrDuplicateName)
		assert.Nil(t, tag)
	})

	t.Run("success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*tags.Tag")).Return(nil)
		service := NewService(repo, new(MockNoteUntagger), silentLogger)

		tag, err := service.Create(context.Background(), userID, UpsertTagRequest{Name: "work"})
		require.NoError(t, err)
		require.NotNil(t, tag)
		assert.Equal(t, "work", tag.Name)
		assert.Equal(t, userID, tag.UserID)
	})
}

func TestService_Rename_NotFound(t *testing.T) {
	userID := bson.NewObjectID()
	tagID := bson.NewObjectID()

	repo := new(MockRepository)
	repo.On("Rename", mock.Anything, userID, tagID, "new").Return(nil, ErrTagNotFound)
	service := NewService(repo, new(MockNoteUntagger), silentLogger)

	tag, err := service.Rename(context.Background(), userID, tagID, UpsertTagRequest{Name: "new"})
	assert.ErrorIs(t, err, ErrTagNotFound)
	assert.Nil(t, tag)
}

func TestService_Delete_DetachesFromNotes(t *testing.T) {
	userID := bson.NewObjectID()
	tagID := bson.NewObjectID()

	repo := new(MockRepository)
	untagger := new(MockNoteUntagger)
	repo.On("Delete", mock.Anything, userID, tagID).Return(nil)
	untagger.On("PullTagRefs", mock.Anything, userID, tagID).Return(nil)

	service := NewService(repo, untagger, silentLogger)
	require.NoError(t, service.Delete(context.Background(), userID, tagID))

	// Deleting a tag must also pull its id off every note that carries it.
	untagger.AssertExpectations(t)
}
