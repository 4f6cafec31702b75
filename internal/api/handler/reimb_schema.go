package handler

import "time"

// --- Request types ---

type newReimbRequest struct {
	Amount      float64 `json:"amount"      validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
	Type        string  `json:"reimb_type"  validate:"required,oneof=lodging travel food other"`
}

type updateReimbRequest struct {
	ID          int64   `json:"reimb_id"    validate:"required,gt=0"`
	Amount      float64 `json:"amount"      validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
	Type        string  `json:"reimb_type"  validate:"required,oneof=lodging travel food other"`
}

type resolveReimbRequest struct {
	Status string `json:"reimb_status" validate:"required,oneof=approved denied"`
}

// --- Response types ---

// reimbResponse preserves the persisted field names as the wire contract.
type reimbResponse struct {
	ID          int64      `json:"reimb_id"`
	Amount      float64    `json:"amount"`
	Submitted   time.Time  `json:"submitted"`
	Resolved    *time.Time `json:"resolved"`
	Description string     `json:"description"`
	AuthorID    int64      `json:"author_id"`
	ResolverID  *int64     `json:"resolver_id"`
	Status      string     `json:"reimb_status"`
	Type        string     `json:"reimb_type"`
}
