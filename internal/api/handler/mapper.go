package handler

import (
	"github.com/corpfin/reimbursement-system/internal/core/domain"
)

// --- Service result → HTTP response ---

func toUserResponse(u *domain.PublicUser) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
	}
}

func toUserListResponse(users []domain.PublicUser) []userResponse {
	out := make([]userResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}
	return out
}

func toReimbResponse(r *domain.Reimbursement) reimbResponse {
	return reimbResponse{
		ID:          r.ID,
		Amount:      r.Amount,
		Submitted:   r.Submitted.UTC(),
		Resolved:    r.Resolved,
		Description: r.Description,
		AuthorID:    r.AuthorID,
		ResolverID:  r.ResolverID,
		Status:      string(r.Status),
		Type:        string(r.Type),
	}
}

func toReimbListResponse(reimbs []domain.Reimbursement) []reimbResponse {
	out := make([]reimbResponse, len(reimbs))
	for i := range reimbs {
		out[i] = toReimbResponse(&reimbs[i])
	}
	return out
}
