package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/corpfin/reimbursement-system/internal/core/domain"
	"github.com/corpfin/reimbursement-system/internal/core/ports"
	"github.com/corpfin/reimbursement-system/internal/core/validation"
)

// DedupChecker abstracts the double-submit store (Redis). A submission
// carrying an idempotency key already marked as processed is rejected.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, authorID int64, key string) (bool, error)
	Mark(ctx context.Context, authorID int64, key string) error
}

// ReimbService enforces the reimbursement invariants, chiefly the one true
// state-machine rule: a reimbursement is resolved at most once.
type ReimbService struct {
	repo   ports.ReimbRepository
	dedup  DedupChecker
	logger zerolog.Logger
}

func NewReimbService(repo ports.ReimbRepository, dedup DedupChecker, logger zerolog.Logger) *ReimbService {
	return &ReimbService{repo: repo, dedup: dedup, logger: logger}
}

func (s *ReimbService) GetAllReimb(ctx context.Context) ([]domain.Reimbursement, error) {
	reimbs, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(reimbs) == 0 {
		return nil, domain.ErrReimbNotFound
	}
	return reimbs, nil
}

func (s *ReimbService) GetReimbByID(ctx context.Context, id int64) (*domain.Reimbursement, error) {
	if !validation.IsValidID(id) {
		return nil, fmt.Errorf("%w: invalid reimbursement id", domain.ErrBadRequest)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *ReimbService) GetAllReimbByAuthor(ctx context.Context, authorID int64) ([]domain.Reimbursement, error) {
	if !validation.IsValidID(authorID) {
		return nil, fmt.Errorf("%w: invalid author id", domain.ErrBadRequest)
	}

	reimbs, err := s.repo.GetAllByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if len(reimbs) == 0 {
		return nil, domain.ErrReimbNotFound
	}
	return reimbs, nil
}

func (s *ReimbService) GetReimbByUniqueKey(ctx context.Context, lookup ports.Lookup) (*domain.Reimbursement, error) {
	if !domain.IsReimbField(lookup.Field) {
		return nil, fmt.Errorf("%w: unrecognized reimbursement field %q", domain.ErrBadRequest, lookup.Field)
	}

	if lookup.Field == domain.ReimbIDField {
		id, err := strconv.ParseInt(lookup.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid reimbursement id", domain.ErrBadRequest)
		}
		return s.GetReimbByID(ctx, id)
	}

	if !validation.AllNonEmpty(lookup.Value) {
		return nil, fmt.Errorf("%w: empty lookup value", domain.ErrBadRequest)
	}

	return s.repo.GetByUniqueKey(ctx, lookup.Field, lookup.Value)
}

func (s *ReimbService) GetAllReimbByType(ctx context.Context, reimbType string) ([]domain.Reimbursement, error) {
	if !validation.AllNonEmpty(reimbType) {
		return nil, fmt.Errorf("%w: empty reimbursement type", domain.ErrBadRequest)
	}

	reimbs, err := s.repo.GetAllByField(ctx, "reimb_type", reimbType)
	if err != nil {
		return nil, err
	}
	if len(reimbs) == 0 {
		return nil, domain.ErrReimbNotFound
	}
	return reimbs, nil
}

func (s *ReimbService) GetAllReimbByStatus(ctx context.Context, status string) ([]domain.Reimbursement, error) {
	if !validation.AllNonEmpty(status) {
		return nil, fmt.Errorf("%w: empty reimbursement status", domain.ErrBadRequest)
	}

	reimbs, err := s.repo.GetAllByField(ctx, "reimb_status", status)
	if err != nil {
		return nil, err
	}
	if len(reimbs) == 0 {
		return nil, domain.ErrReimbNotFound
	}
	return reimbs, nil
}

// AddNewReimb persists a new reimbursement. Status, submission timestamp and
// resolution fields are forced to their initial values regardless of what the
// caller supplied, so forged state never reaches storage.
func (s *ReimbService) AddNewReimb(ctx context.Context, input ports.NewReimbInput) (*domain.Reimbursement, error) {
	if !validation.AllNonEmpty(input.Description, input.Type) || input.Amount <= 0 {
		return nil, fmt.Errorf("%w: invalid property values found in provided reimbursement", domain.ErrBadRequest)
	}
	if !domain.ValidType(domain.ReimbType(input.Type)) {
		return nil, fmt.Errorf("%w: unknown reimbursement type %q", domain.ErrBadRequest, input.Type)
	}
	if !validation.IsValidID(input.AuthorID) {
		return nil, fmt.Errorf("%w: invalid author id", domain.ErrBadRequest)
	}

	if input.IdempotencyKey != "" {
		isDup, err := s.dedup.IsDuplicate(ctx, input.AuthorID, input.IdempotencyKey)
		if err != nil {
			s.logger.Warn().Err(err).Int64("author_id", input.AuthorID).Msg("dedup check failed, processing anyway")
		} else if isDup {
			return nil, domain.ErrDuplicateSubmission
		}
	}

	persisted, err := s.repo.Save(ctx, &domain.Reimbursement{
		Amount:      input.Amount,
		Submitted:   time.Now().UTC(),
		Resolved:    nil,
		Description: input.Description,
		AuthorID:    input.AuthorID,
		ResolverID:  nil,
		Status:      domain.StatusPending,
		Type:        domain.ReimbType(input.Type),
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("author_id", input.AuthorID).Msg("failed to persist reimbursement")
		return nil, err
	}

	if input.IdempotencyKey != "" {
		if markErr := s.dedup.Mark(ctx, input.AuthorID, input.IdempotencyKey); markErr != nil {
			s.logger.Warn().Err(markErr).Int64("reimb_id", persisted.ID).Msg("failed to set dedup key")
		}
	}

	s.logger.Info().
		Int64("reimb_id", persisted.ID).
		Int64("author_id", persisted.AuthorID).
		Str("reimb_type", string(persisted.Type)).
		Msg("reimbursement submitted")

	return persisted, nil
}

// ResolveReimb transitions a pending reimbursement into its terminal status,
// stamping the resolver and the resolution time. Re-resolution is rejected.
func (s *ReimbService) ResolveReimb(ctx context.Context, input ports.ResolveReimbInput) (bool, error) {
	if !validation.IsValidID(input.ID) {
		return false, fmt.Errorf("%w: invalid reimbursement id", domain.ErrBadRequest)
	}
	if !validation.IsValidID(input.ResolverID) {
		return false, fmt.Errorf("%w: invalid resolver id", domain.ErrBadRequest)
	}

	next := domain.ReimbStatus(input.Status)
	if !domain.StatusPending.CanTransitionTo(next) {
		return false, fmt.Errorf("%w: %q is not a terminal status", domain.ErrBadRequest, input.Status)
	}

	current, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return false, err
	}
	if current.Status != domain.StatusPending {
		return false, domain.ErrNotPending
	}

	ok, err := s.repo.UpdateStatus(ctx, input.ID, next, input.ResolverID, time.Now().UTC())
	if err != nil {
		s.logger.Error().Err(err).Int64("reimb_id", input.ID).Msg("failed to resolve reimbursement")
		return false, err
	}

	s.logger.Info().
		Int64("reimb_id", input.ID).
		Int64("resolver_id", input.ResolverID).
		Str("reimb_status", input.Status).
		Msg("reimbursement resolved")

	return ok, nil
}

// UpdateReimb rewrites the author-editable fields. Like resolution, it is
// only allowed while the reimbursement is still pending.
func (s *ReimbService) UpdateReimb(ctx context.Context, input ports.UpdateReimbInput) (bool, error) {
	if !validation.IsValidID(input.ID) {
		return false, fmt.Errorf("%w: invalid reimbursement id", domain.ErrBadRequest)
	}
	if !validation.AllNonEmpty(input.Description, input.Type) || input.Amount <= 0 {
		return false, fmt.Errorf("%w: invalid property values found in provided reimbursement update", domain.ErrBadRequest)
	}
	if !domain.ValidType(domain.ReimbType(input.Type)) {
		return false, fmt.Errorf("%w: unknown reimbursement type %q", domain.ErrBadRequest, input.Type)
	}

	current, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return false, err
	}
	if current.Status != domain.StatusPending {
		return false, domain.ErrNotPending
	}

	ok, err := s.repo.Update(ctx, &domain.Reimbursement{
		ID:          input.ID,
		Amount:      input.Amount,
		Description: input.Description,
		Type:        domain.ReimbType(input.Type),
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("reimb_id", input.ID).Msg("failed to update reimbursement")
		return false, err
	}

	s.logger.Info().Int64("reimb_id", input.ID).Msg("reimbursement updated")
	return ok, nil
}

// DeleteReimbByID accepts exactly one lookup key, which must be the identity
// field carrying a valid id. Deletion is unconditional regardless of status.
func (s *ReimbService) DeleteReimbByID(ctx context.Context, lookup ports.Lookup) (bool, error) {
	if !domain.IsReimbField(lookup.Field) {
		return false, fmt.Errorf("%w: unrecognized reimbursement field %q", domain.ErrBadRequest, lookup.Field)
	}

	id, err := strconv.ParseInt(lookup.Value, 10, 64)
	if err != nil || !validation.IsValidID(id) {
		return false, fmt.Errorf("%w: invalid reimbursement id", domain.ErrBadRequest)
	}

	if _, err := s.repo.DeleteByID(ctx, id); err != nil {
		return false, err
	}

	s.logger.Info().Int64("reimb_id", id).Msg("reimbursement deleted")
	return true, nil
}
