package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"noteful/internal/config"
	"noteful/internal/utils/crypto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var silentLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var testCfg = config.Config{
	BcryptCost:       4, // min cost keeps the suite fast
	JWTSecret:        "super-secret-jwt-key-at-least-32-chars",
	JWTExpiryMinutes: 60,
}

// MockUsersRepo is a mock implementation of UsersRepo
type MockUsersRepo struct {
	mock.Mock
}

func (m *MockUsersRepo) Create(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUsersRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		setup   func(*MockUsersRepo)
		wantErr error
	}{
		{
			name: "successful registration",
			req:  RegisterRequest{Username: "david", Password: "password123", Fullname: "David Johnson"},
			setup: func(repo *MockUsersRepo) {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).Return(nil)
			},
		},
		{
			name:    "missing username",
			req:     RegisterRequest{Password: "password123"},
			wantErr: ErrMissingUsername,
		},
		{
			name:    "missing password",
			req:     RegisterRequest{Username: "david"},
			wantErr: ErrMissingPassword,
		},
		{
			name:    "missing username reported before missing password",
			req:     RegisterRequest{},
			wantErr: ErrMissingUsername,
		},
		{
			name:    "password too short",
			req:     RegisterRequest{Username: "david", Password: "short"},
			wantErr: ErrPasswordLength,
		},
		{
			name:    "password too long",
			req:     RegisterRequest{Username: "david", Password: string(make([]byte, 73))},
			wantErr: ErrPasswordLength,
		},
		{
			name:    "username with leading whitespace",
			req:     RegisterRequest{Username: " david", Password: "password123"},
			wantErr: ErrUsernameWhitespace,
		},
		{
			name:    "password with trailing whitespace",
			req:     RegisterRequest{Username: "david", Password: "password123 "},
			wantErr: ErrPasswordWhitespace,
		},
		{
			name: "duplicate username",
			req:  RegisterRequest{Username: "david", Password: "password123"},
			setup: func(repo *MockUsersRepo) {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).Return(ErrDuplicateUsername)
			},
			wantErr: ErrDuplicateUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUsersRepo)
			if tt.setup != nil {
				tt.setup(repo)
			}

			service := NewService(repo, testCfg, silentLogger)
			resp, err := service.Register(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.NotEmpty(t, resp.ID)
				assert.Equal(t, tt.req.Username, resp.Username)
				assert.Equal(t, tt.req.Fullname, resp.Fullname)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_Register_StoresHashNotPassword(t *testing.T) {
	repo := new(MockUsersRepo)
	var created *User
	repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*User)
		}).Return(nil)

	service := NewService(repo, testCfg, silentLogger)
	_, err := service.Register(context.Background(), RegisterRequest{Username: "david", Password: "password123"})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.NotEqual(t, "password123", created.PasswordHash)
	assert.NoError(t, crypto.CheckPassword("password123", created.PasswordHash))
}

func TestService_Login(t *testing.T) {
	hash, err := crypto.HashPassword("password123", testCfg.BcryptCost)
	require.NoError(t, err)

	user := &User{
		ID:           bson.NewObjectID(),
		Username:     "david",
		Fullname:     "David Johnson",
		PasswordHash: hash,
	}

	tests := []struct {
		name    string
		req     LoginRequest
		setup   func(*MockUsersRepo)
		wantErr error
	}{
		{
			name: "successful login",
			req:  LoginRequest{Username: "david", Password: "password123"},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByUsername", mock.Anything, "david").Return(user, nil)
			},
		},
		{
			name: "unknown username",
			req:  LoginRequest{Username: "ghost", Password: "password123"},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, errors.New("not found"))
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			req:  LoginRequest{Username: "david", Password: "wrong-password"},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByUsername", mock.Anything, "david").Return(user, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUsersRepo)
			tt.setup(repo)

			service := NewService(repo, testCfg, silentLogger)
			resp, err := service.Login(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.NotEmpty(t, resp.AuthToken)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_IssueToken_Claims(t *testing.T) {
	user := &User{
		ID:       bson.NewObjectID(),
		Username: "david",
		Fullname: "David Johnson",
	}

	service := NewService(new(MockUsersRepo), testCfg, silentLogger)
	signed, err := service.IssueToken(user)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte(testCfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.Hex(), claims["user_id"])
	assert.Equal(t, "david", claims["username"])
	assert.Equal(t, "David Johnson", claims["fullname"])
	assert.NotNil(t, claims["exp"])
	assert.NotNil(t, claims["iat"])
}
