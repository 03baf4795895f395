package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
	ErrFollowSelf     = errors.New("you cannot follow yourself")
)

// User represents a registered user
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	Bio          *string   `json:"bio,omitempty"`
	Address      *string   `json:"address,omitempty"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(email, username string, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:     email,
		Username:  username,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// DisplayName returns the username, or the email when no username is set.
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// ProfileUpdate carries a partial profile update. Nil fields are left unchanged.
type ProfileUpdate struct {
	Username *string
	Bio      *string
	Address  *string
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*User, error)
	// AddFollower records followerID as a follower of userID. Returns false if it already was.
	AddFollower(ctx context.Context, userID, followerID string) (bool, error)
	// RemoveFollower deletes the follow link. Returns false if there was none.
	RemoveFollower(ctx context.Context, userID, followerID string) (bool, error)
	IsFollower(ctx context.Context, userID, followerID string) (bool, error)
	// ListFollowers returns the users following userID.
	ListFollowers(ctx context.Context, userID string) ([]*User, error)
	// ListFollowings returns the users userID follows.
	ListFollowings(ctx context.Context, userID string) ([]*User, error)
}

// UserService defines the business logic for accounts, profiles, and follows.
type UserService interface {
	Register(ctx context.Context, email, password, username string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*User, error)
	// ToggleFollow follows targetID as currentID, or unfollows when already following.
	// Returns true when the call resulted in a follow.
	ToggleFollow(ctx context.Context, targetID, currentID string) (followed bool, target *User, err error)
	ListFollowers(ctx context.Context, userID string) ([]*User, error)
	ListFollowings(ctx context.Context, userID string) ([]*User, error)
}
