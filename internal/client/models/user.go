package models

import "fmt"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Roles lists the roles an admin may assign.
var Roles = []Role{RoleUser, RoleAdmin}

func (r Role) Valid() bool {
	for _, x := range Roles {
		if r == x {
			return true
		}
	}
	return false
}

type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Photo string `json:"photo,omitempty"`
}

func (u *User) Validate() error {
	if u == nil {
		return fmt.Errorf("%w: user is empty", ErrMalformed)
	}
	if u.ID == "" {
		return fmt.Errorf("%w: user: %w", ErrMalformed, ErrMissingID)
	}
	return nil
}

func (u User) String() string {
	return fmt.Sprintf("%s <%s> (%s)", u.Name, u.Email, u.Role)
}
