package domain

import "errors"

// Error taxonomy. Services wrap these with context via fmt.Errorf("...: %w");
// the HTTP layer owns the mapping to status codes.
var (
	// ErrBadRequest covers malformed or disallowed input: invalid ids, empty
	// strings, shape failures, unrecognized lookup keys.
	ErrBadRequest = errors.New("bad request")

	// ErrNotPending rejects any mutation of a reimbursement that has already
	// been resolved. A reimbursement is resolved at most once.
	ErrNotPending = errors.New("only pending reimbursements can be updated")

	ErrUserNotFound  = errors.New("user not found")
	ErrReimbNotFound = errors.New("reimbursement not found")

	// Uniqueness conflicts on well-formed create/update requests.
	ErrUsernameTaken = errors.New("the provided username is already in use")
	ErrEmailTaken    = errors.New("the provided email is already in use")
	ErrDuplicateUser = errors.New("user already exists")

	// ErrDuplicateSubmission rejects a reimbursement replayed with an
	// idempotency key that was already marked as processed.
	ErrDuplicateSubmission = errors.New("duplicate reimbursement submission")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")

	// ErrInternalServer stands in for any storage failure. Repositories
	// translate driver errors into it, dropping the underlying detail so
	// nothing storage-specific leaks past the API boundary.
	ErrInternalServer = errors.New("internal server error")
)
