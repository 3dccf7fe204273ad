package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"noteful/internal/config"
	"noteful/internal/utils/crypto"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	passwordMinLen = 8
	passwordMaxLen = 72 // bcrypt input limit
)

// Service handles registration and login
type Service struct {
	repo   UsersRepo
	config config.Config
	log    *slog.Logger
}

// NewService creates a new auth service
func NewService(repo UsersRepo, cfg config.Config, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		config: cfg,
		log:    log,
	}
}

// validateRegistration applies the ordered field rules. The first failing
// rule determines the single reported error.
func validateRegistration(req RegisterRequest) error {
	if req.Username == "" {
		return ErrMissingUsername
	}
	if req.Password == "" {
		return ErrMissingPassword
	}
	if len(req.Username) < 1 {
		return ErrUsernameTooShort
	}
	if len(req.Password) < passwordMinLen || len(req.Password) > passwordMaxLen {
		return ErrPasswordLength
	}
	if strings.TrimSpace(req.Username) != req.Username {
		return ErrUsernameWhitespace
	}
	if strings.TrimSpace(req.Password) != req.Password {
		return ErrPasswordWhitespace
	}
	return nil
}

// Register creates a new user. Duplicate usernames are caught at insert time
// by the unique index, not pre-checked, so two concurrent registrations cannot
// both pass a lookup.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	hash, err := crypto.HashPassword(req.Password, s.config.BcryptCost)
	if err != nil {
		s.log.Error("failed to hash password", "error", err)
		return nil, errors.New("failed to process password")
	}

	now := time.Now().UTC()
	user := &User{
		ID:           bson.NewObjectID(),
		Username:     req.Username,
		Fullname:     req.Fullname,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return nil, ErrDuplicateUsername
		}
		s.log.Error("failed to create user", "error", err)
		return nil, errors.New("failed to create user")
	}

	return NewUserResponse(user), nil
}

// dummyHash keeps the unknown-username path doing one bcrypt comparison, so
// response timing does not reveal whether the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Login authenticates a user. Unknown username and wrong password produce the
// same ErrInvalidCredentials to resist username enumeration.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		_ = crypto.CheckPassword(req.Password, dummyHash)
		s.log.Info("login failed: user lookup", "username", req.Username)
		return nil, ErrInvalidCredentials
	}

	if err := crypto.CheckPassword(req.Password, user.PasswordHash); err != nil {
		s.log.Info("login failed: password mismatch", "user_id", user.ID.Hex())
		return nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		s.log.Error(ErrGenAccessToken.Error(), "error", err, "user_id", user.ID.Hex())
		return nil, ErrGenAccessToken
	}

	return &LoginResponse{AuthToken: token}, nil
}

// IssueToken signs an HS256 JWT carrying the user's identity claims.
func (s *Service) IssueToken(user *User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID.Hex(),
		"username": user.Username,
		"fullname": user.Fullname,
		"iat":      now.Unix(),
		"exp":      now.Add(time.Duration(s.config.JWTExpiryMinutes) * time.Minute).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
