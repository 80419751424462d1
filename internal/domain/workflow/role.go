package workflow

import (
	"fmt"
	"strings"
)

// Role is the closed set of roles the engine authorizes against.
type Role string

const (
	RoleSubmitter Role = "Submitter"
	RoleEHS       Role = "EHS"
	RoleManager   Role = "Manager"
	RoleAdmin     Role = "Admin"
)

var knownRoles = []Role{RoleSubmitter, RoleEHS, RoleManager, RoleAdmin}

// ParseRole matches case-insensitively against the known roles.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	for _, r := range knownRoles {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalidArgument, s)
}

func (r Role) Valid() bool {
	for _, k := range knownRoles {
		if r == k {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }

// Caller is the resolved identity of whoever is asking for a transition.
type Caller struct {
	ID   string
	Role Role
}

func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }

func (c Caller) CanSubmit() bool { return c.Role == RoleSubmitter || c.Role == RoleAdmin }
