package repositories

import (
	"errors"

	"rezopay/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already taken")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// UserRepository defines the interface for user-related database
// operations. UserByID carries directory semantics for the settlement
// engine: an unknown identifier yields (nil, nil), not an error.
type UserRepository interface {
	// Create creates a new user in the database
	Create(user *models.User) error

	// GetByID retrieves a user by their ID
	GetByID(id uint) (*models.User, error)

	// GetByEmail retrieves a user by their email address
	GetByEmail(email string) (*models.User, error)

	// UserByID is the directory lookup used by the settlement engine
	UserByID(id uint) (*models.User, error)

	// Update updates an existing user's information
	Update(user *models.User) error

	// Delete removes a user from the database
	Delete(id uint) error

	// IncrementTokenVersion increments the user's token version
	IncrementTokenVersion(userID uint) error

	// ListByCreator retrieves the users onboarded by a given user
	ListByCreator(creatorID uint, offset, limit int) ([]*models.User, int64, error)

	// CountByRole counts users holding a role
	CountByRole(role models.Role) (int64, error)
}
