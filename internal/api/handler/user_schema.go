package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type newUserRequest struct {
	Username  string `json:"username"   validate:"required"`
	Password  string `json:"password"   validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Role      string `json:"role_name"  validate:"required,oneof=admin finance employee"`
}

type updateUserRequest struct {
	ID        int64  `json:"ers_user_id" validate:"required,gt=0"`
	Username  string `json:"username"    validate:"required"`
	Password  string `json:"password"    validate:"required,min=8"`
	FirstName string `json:"first_name"  validate:"required"`
	LastName  string `json:"last_name"   validate:"required"`
	Email     string `json:"email"       validate:"required,email"`
	Role      string `json:"role_name"   validate:"required,oneof=admin finance employee"`
}

// --- Response types ---

// userResponse is the transport view of a user. There is deliberately no
// password field anywhere in this file: the JSON contract cannot leak what
// the type cannot carry.
type userResponse struct {
	ID        int64  `json:"ers_user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role_name"`
}

type updatedResponse struct {
	Updated bool `json:"updated"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}
