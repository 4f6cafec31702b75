package ports

import (
	"context"
	"time"

	"github.com/corpfin/reimbursement-system/internal/core/domain"
)

// ReimbRepository defines persistence operations for reimbursements.
// Implementations translate storage failures into domain.ErrInternalServer
// and a missing single row into domain.ErrReimbNotFound.
type ReimbRepository interface {
	GetAll(ctx context.Context) ([]domain.Reimbursement, error)
	GetByID(ctx context.Context, id int64) (*domain.Reimbursement, error)
	GetByUniqueKey(ctx context.Context, field, value string) (*domain.Reimbursement, error)
	// GetAllByAuthor lists every reimbursement submitted by the given user.
	GetAllByAuthor(ctx context.Context, authorID int64) ([]domain.Reimbursement, error)
	// GetAllByField lists every reimbursement matching field = value
	// (reimb_status and reimb_type filters).
	GetAllByField(ctx context.Context, field, value string) ([]domain.Reimbursement, error)
	// Save persists a new reimbursement and returns it with its assigned id.
	Save(ctx context.Context, r *domain.Reimbursement) (*domain.Reimbursement, error)
	// Update rewrites the author-editable fields (amount, description, type).
	Update(ctx context.Context, r *domain.Reimbursement) (bool, error)
	// UpdateStatus performs the resolution write: status, resolver, timestamp.
	UpdateStatus(ctx context.Context, id int64, status domain.ReimbStatus, resolverID int64, resolved time.Time) (bool, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}
