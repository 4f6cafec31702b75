package domain

const (
	RoleAdmin    = "admin"
	RoleFinance  = "finance"
	RoleEmployee = "employee"
)

// DefaultRole is assigned to self-registered users; elevation happens
// through the admin user management endpoints only.
const DefaultRole = RoleEmployee

// ValidRole reports whether r is one of the enumerated user roles.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleFinance, RoleEmployee:
		return true
	}
	return false
}

// User is the storage-facing entity. Password holds the bcrypt hash and is
// never serialized; callers outside the service layer only ever see PublicUser.
type User struct {
	ID        int64  `json:"ers_user_id" bson:"_id"`
	Username  string `json:"username" bson:"username"`
	Password  string `json:"-" bson:"password"`
	FirstName string `json:"first_name" bson:"first_name"`
	LastName  string `json:"last_name" bson:"last_name"`
	Email     string `json:"email" bson:"email"`
	Role      string `json:"role_name" bson:"role_name"`
}

// PublicUser is the caller-facing projection of User. It has no credential
// field at all, so password scrubbing cannot be forgotten.
type PublicUser struct {
	ID        int64  `json:"ers_user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role_name"`
}

// Public projects the entity into its caller-facing shape.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
	}
}

// UserIDField is the persisted name of the user identity field.
const UserIDField = "ers_user_id"

// userLookupFields is the static set of field names accepted as single-record
// lookup keys. The credential field is deliberately absent.
var userLookupFields = map[string]struct{}{
	UserIDField:  {},
	"username":   {},
	"first_name": {},
	"last_name":  {},
	"email":      {},
	"role_name":  {},
}

// IsUserField reports whether name is a recognized User lookup field.
func IsUserField(name string) bool {
	_, ok := userLookupFields[name]
	return ok
}
