package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Role ranks a user inside a tenant. Lower values carry more privilege.
type Role int

const (
	RoleSuperuser Role = 1
	RoleAdmin     Role = 2
	RoleManager   Role = 3
	RoleUser      Role = 4
)

func (r Role) String() string {
	switch r {
	case RoleSuperuser:
		return "superuser"
	case RoleAdmin:
		return "admin"
	case RoleManager:
		return "manager"
	case RoleUser:
		return "user"
	default:
		return "unknown"
	}
}

// Title is the label shown in role pickers.
func (r Role) Title() string {
	switch r {
	case RoleSuperuser:
		return "Superuser"
	case RoleAdmin:
		return "Administrator"
	case RoleManager:
		return "Manager"
	case RoleUser:
		return "User"
	default:
		return "Unknown"
	}
}

func (r Role) Valid() bool {
	return r >= RoleSuperuser && r <= RoleUser
}

// AtLeast reports whether r grants at least the privilege of other.
func (r Role) AtLeast(other Role) bool {
	return r.Valid() && r <= other
}

// CanManageTeams reports whether the role may create, update or delete teams and users.
func (r Role) CanManageTeams() bool {
	return r.AtLeast(RoleManager)
}

// RoleOptions lists every role in privilege order.
func RoleOptions() []Role {
	return []Role{RoleSuperuser, RoleAdmin, RoleManager, RoleUser}
}

// ParseRole accepts a role name ("admin") or its numeric value ("2").
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if n, err := strconv.Atoi(s); err == nil {
		if r := Role(n); r.Valid() {
			return r, nil
		}
		return 0, fmt.Errorf("unknown role %q", s)
	}
	for _, r := range RoleOptions() {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}
