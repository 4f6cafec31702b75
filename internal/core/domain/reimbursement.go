package domain

import "time"

// ReimbStatus represents the lifecycle state of a reimbursement.
type ReimbStatus string

const (
	StatusPending  ReimbStatus = "pending"
	StatusApproved ReimbStatus = "approved"
	StatusDenied   ReimbStatus = "denied"
)

// validTransitions defines the allowed state machine transitions.
// Approved and denied are terminal: a reimbursement is resolved at most once.
var validTransitions = map[ReimbStatus][]ReimbStatus{
	StatusPending: {StatusApproved, StatusDenied},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s ReimbStatus) CanTransitionTo(next ReimbStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ReimbType is the expense category of a reimbursement.
type ReimbType string

const (
	TypeLodging ReimbType = "lodging"
	TypeTravel  ReimbType = "travel"
	TypeFood    ReimbType = "food"
	TypeOther   ReimbType = "other"
)

// ValidType reports whether t is one of the enumerated expense categories.
func ValidType(t ReimbType) bool {
	switch t {
	case TypeLodging, TypeTravel, TypeFood, TypeOther:
		return true
	}
	return false
}

// Reimbursement is the core aggregate. Resolved and ResolverID stay nil until
// the single resolution write stamps them.
type Reimbursement struct {
	ID          int64       `json:"reimb_id" bson:"_id"`
	Amount      float64     `json:"amount" bson:"amount"`
	Submitted   time.Time   `json:"submitted" bson:"submitted"`
	Resolved    *time.Time  `json:"resolved" bson:"resolved"`
	Description string      `json:"description" bson:"description"`
	AuthorID    int64       `json:"author_id" bson:"author_id"`
	ResolverID  *int64      `json:"resolver_id" bson:"resolver_id"`
	Status      ReimbStatus `json:"reimb_status" bson:"reimb_status"`
	Type        ReimbType   `json:"reimb_type" bson:"reimb_type"`
}

// ReimbIDField is the persisted name of the reimbursement identity field.
const ReimbIDField = "reimb_id"

// reimbLookupFields is the static set of field names accepted as lookup keys.
var reimbLookupFields = map[string]struct{}{
	ReimbIDField:   {},
	"amount":       {},
	"submitted":    {},
	"resolved":     {},
	"description":  {},
	"author_id":    {},
	"resolver_id":  {},
	"reimb_status": {},
	"reimb_type":   {},
}

// IsReimbField reports whether name is a recognized Reimbursement lookup field.
func IsReimbField(name string) bool {
	_, ok := reimbLookupFields[name]
	return ok
}
