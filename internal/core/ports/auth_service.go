package ports

import (
	"context"

	"github.com/corpfin/reimbursement-system/internal/core/domain"
)

// RegisterInput carries self-registration data. The role is not accepted
// from the caller: every registration lands on the default tier.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// AuthService covers registration and token-issuing login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.PublicUser, error)
	// Login authenticates the credential pair and returns a signed token
	// alongside the public user.
	Login(ctx context.Context, username, password string) (string, *domain.PublicUser, error)
}
