package folders

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"noteful/cmd/server/testutil"
	"noteful/internal/services/folders"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	foldersEndpoint = "/api/folders"
	jwtSecret       = "test-secret-with-32-plus-characters!!"
)

// MockFoldersService mocks the folders service
type MockFoldersService struct {
	mock.Mock
}

func (m *MockFoldersService) Create(ctx context.Context, userID bson.ObjectID, req folders.UpsertFolderRequest) (*folders.Folder, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*folders.Folder), args.Error(1)
}

func (m *MockFoldersService) List(ctx context.Context, userID bson.ObjectID) ([]*folders.Folder, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*folders.Folder), args.Error(1)
}

func (m *MockFoldersService) Get(ctx context.Context, userID, folderID bson.ObjectID) (*folders.Folder, error) {
	args := m.Called(ctx, userID, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*folders.Folder), args.Error(1)
}

func (m *MockFoldersService) Rename(ctx context.Context, userID, folderID bson.ObjectID, req folders.UpsertFolderRequest) (*folders.Folder, error) {
	args := m.Called(ctx, userID, folderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*folders.Folder), args.Error(1)
}

func (m *MockFoldersService) Delete(ctx context.Context, userID, folderID bson.ObjectID) error {
	args := m.Called(ctx, userID, folderID)
	return args.Error(0)
}

func setupFoldersTest(t *testing.T) (*MockFoldersService, *fiber.App, bson.ObjectID, string) {
	t.Helper()

	mockService := &MockFoldersService{}
	app := testutil.CreateTestApp(t)
	v := testutil.CreateTestValidator(t)

	h := NewHandlers(mockService, v)

	grp := app.Group("/api/folders", testutil.SetupJWTMiddleware(jwtSecret))
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/:id", h.Get)
	grp.Put("/:id", h.Rename)
	grp.Delete("/:id", h.Delete)

	userID := bson.NewObjectID()
	token, err := testutil.CreateTestJWT(userID.Hex(), "david", "David Johnson", []byte(jwtSecret), time.Hour)
	require.NoError(t, err)

	return mockService, app, userID, token
}

func TestFolders_Create(t *testing.T) {
	mockService, app, userID, token := setupFoldersTest(t)

	folder := &folders.Folder{
		ID:        bson.NewObjectID(),
		UserID:    userID,
		Name:      "Work",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	mockService.On("Create", mock.Anything, userID, folders.UpsertFolderRequest{Name: "Work"}).
		Return(folder, nil)

	req := testutil.CreateAuthenticatedRequest(http.MethodPost, foldersEndpoint,
		map[string]string{"name": "Work"}, token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, foldersEndpoint+"/"+folder.ID.Hex(), resp.Header.Get("Location"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Work", body["name"])
}

func TestFolders_Create_BadRequests(t *testing.T) {
	tests := []struct {
		name        string
		serviceErr  error
		wantMessage string
	}{
		{
			name:        "missing name",
			serviceErr:  folders.ErrMissingName,
			wantMessage: "Missing `name` in request body",
		},
		{
			name:        "duplicate name",
			serviceErr:  folders.ErrDuplicateName,
			wantMessage: "Folder name already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, app, userID, token := setupFoldersTest(t)
			mockService.On("Create", mock.Anything, userID, mock.Anything).Return(nil, tt.serviceErr)

			req := testutil.CreateAuthenticatedRequest(http.MethodPost, foldersEndpoint,
				map[string]string{"name": "whatever"}, token)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			e := testutil.DecodeError(t, resp)
			assert.Equal(t, tt.wantMessage, e.Message)
		})
	}
}

func TestFolders_Get_NotFound(t *testing.T) {
	mockService, app, userID, token := setupFoldersTest(t)
	folderID := bson.NewObjectID()
	mockService.On("Get", mock.Anything, userID, folderID).Return(nil, folders.ErrFolderNotFound)

	req := testutil.CreateAuthenticatedRequest(http.MethodGet, foldersEndpoint+"/"+folderID.Hex(), nil, token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFolders_Delete(t *testing.T) {
	mockService, app, userID, token := setupFoldersTest(t)
	folderID := bson.NewObjectID()
	mockService.On("Delete", mock.Anything, userID, folderID).Return(nil)

	req := testutil.CreateAuthenticatedRequest(http.MethodDelete, foldersEndpoint+"/"+folderID.Hex(), nil, token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
