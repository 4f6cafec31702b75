package ports

import (
	"context"

	"github.com/corpfin/reimbursement-system/internal/core/domain"
)

// NewReimbInput carries caller-supplied reimbursement data. Status, submitted
// timestamp and resolution fields are system-assigned regardless of what the
// caller sent. IdempotencyKey is optional; when present, replays are rejected.
type NewReimbInput struct {
	Amount         float64
	Description    string
	Type           string
	AuthorID       int64
	IdempotencyKey string
}

// ResolveReimbInput carries the single allowed status transition.
type ResolveReimbInput struct {
	ID         int64
	Status     string
	ResolverID int64
}

// UpdateReimbInput carries the author-editable fields of a pending reimbursement.
type UpdateReimbInput struct {
	ID          int64
	Amount      float64
	Description string
	Type        string
}

// ReimbService defines use-case operations for reimbursements.
type ReimbService interface {
	GetAllReimb(ctx context.Context) ([]domain.Reimbursement, error)
	GetReimbByID(ctx context.Context, id int64) (*domain.Reimbursement, error)
	GetAllReimbByAuthor(ctx context.Context, authorID int64) ([]domain.Reimbursement, error)
	GetReimbByUniqueKey(ctx context.Context, lookup Lookup) (*domain.Reimbursement, error)
	GetAllReimbByType(ctx context.Context, reimbType string) ([]domain.Reimbursement, error)
	GetAllReimbByStatus(ctx context.Context, status string) ([]domain.Reimbursement, error)
	AddNewReimb(ctx context.Context, input NewReimbInput) (*domain.Reimbursement, error)
	ResolveReimb(ctx context.Context, input ResolveReimbInput) (bool, error)
	UpdateReimb(ctx context.Context, input UpdateReimbInput) (bool, error)
	DeleteReimbByID(ctx context.Context, lookup Lookup) (bool, error)
}
