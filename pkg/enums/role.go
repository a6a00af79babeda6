package enums

import "strings"

// Role is the access level of a representative account.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleRepresentative Role = "representative"
)

var roles = []Role{RoleAdmin, RoleRepresentative}

func (r Role) String() string { return string(r) }

// IsValid is strict: only the stored lowercase spelling counts.
func (r Role) IsValid() bool {
	parsed, err := ParseRole(string(r))
	return err == nil && parsed == r
}

// ParseRole accepts any letter case.
func ParseRole(value string) (Role, error) {
	return lookup("role", value, roles, strings.ToLower)
}
