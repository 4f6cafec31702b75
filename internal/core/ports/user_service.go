package ports

import (
	"context"

	"github.com/corpfin/reimbursement-system/internal/core/domain"
)

// NewUserInput carries all data needed to create a user. ID is assigned by
// storage; Password arrives in the clear and is hashed by the service.
type NewUserInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Role      string
}

// UpdateUserInput carries a full replacement of a user's mutable fields.
type UpdateUserInput struct {
	ID        int64
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Role      string
}

// UserService defines use-case operations for users. Every returned user is
// the public projection; the credential never leaves the service layer.
type UserService interface {
	GetAllUsers(ctx context.Context) ([]domain.PublicUser, error)
	GetUserByID(ctx context.Context, id int64) (*domain.PublicUser, error)
	GetUserByUniqueKey(ctx context.Context, lookup Lookup) (*domain.PublicUser, error)
	GetAllUsersByRole(ctx context.Context, role string) ([]domain.PublicUser, error)
	AddNewUser(ctx context.Context, input NewUserInput) (*domain.PublicUser, error)
	UpdateUser(ctx context.Context, input UpdateUserInput) (bool, error)
	DeleteUserByID(ctx context.Context, lookup Lookup) (bool, error)
	// Authenticate verifies a credential pair and returns the matching user.
	Authenticate(ctx context.Context, username, password string) (*domain.PublicUser, error)
}
