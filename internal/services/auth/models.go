package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered account. The password hash never leaves the server.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd1"`
	Username     string        `bson:"username" json:"username" example:"david"`
	Fullname     string        `bson:"fullname,omitempty" json:"fullname,omitempty" example:"David Johnson"`
	PasswordHash string        `bson:"password_hash" json:"-"`
	CreatedAt    time.Time     `bson:"created_at" json:"-"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"-"`
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username string `json:"username" example:"david"`
	Password string `json:"password" example:"password123"`
	Fullname string `json:"fullname" example:"David Johnson"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" example:"david"`
	Password string `json:"password" example:"password123"`
}

// UserResponse is the public projection of a User returned by registration
type UserResponse struct {
	ID       string `json:"id" example:"683cdb8aa96ad71e8e075bd1"`
	Username string `json:"username" example:"david"`
	Fullname string `json:"fullname" example:"David Johnson"`
}

// LoginResponse carries the signed identity token
type LoginResponse struct {
	AuthToken string `json:"authToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...."`
}

// NewUserResponse projects a stored user onto its public shape
func NewUserResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Fullname: u.Fullname,
	}
}
