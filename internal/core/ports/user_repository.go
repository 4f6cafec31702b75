package ports

import (
	"context"

	"github.com/corpfin/reimbursement-system/internal/core/domain"
)

// UserRepository defines persistence operations for users. Implementations
// translate storage failures into domain.ErrInternalServer and a missing
// single row into domain.ErrUserNotFound; they do not validate inputs.
type UserRepository interface {
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// GetByUniqueKey retrieves a single user by an arbitrary persisted field.
	GetByUniqueKey(ctx context.Context, field, value string) (*domain.User, error)
	// GetAllByField lists every user matching field = value (e.g. role_name).
	GetAllByField(ctx context.Context, field, value string) ([]domain.User, error)
	// Save persists a new user and returns it with its assigned id.
	Save(ctx context.Context, u *domain.User) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) (bool, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}
