package model

const (
	RoleAdmin = "Admin"
)

// User is owned by the external sign-up flow; the backend reads Role for
// authorization and promotes users to Admin.
type User struct {
	ID    string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name  string `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,max=100"`
	Email string `json:"email" bson:"email" validate:"required,email"`
	Role  string `json:"role,omitempty" bson:"role,omitempty" validate:"omitempty,oneof=Admin"`
}

// IsAdmin reports whether the user carries the Admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type AdminStatus struct {
	IsAdmin bool `json:"isAdmin"`
}

type AccessToken struct {
	AccessToken string `json:"accessToken"`
}
