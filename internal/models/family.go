package models

// Role is the permission level of a family within a trip.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Family represents one participant group of a trip.
type Family struct {
	// ID is the unique identifier for the family (UUID format).
	ID string `json:"id"`

	// Name is the display name of the family.
	Name string `json:"name"`

	// MemberCount is the number of people in the family. Always positive.
	MemberCount int `json:"memberCount"`

	// Role is ADMIN or USER. Only admins may change roles and member counts.
	Role Role `json:"role"`
}

// IsAdmin reports whether the family holds the ADMIN role.
func (f Family) IsAdmin() bool {
	return f.Role == RoleAdmin
}
