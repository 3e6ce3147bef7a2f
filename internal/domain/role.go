package domain

import "fmt"

// Role is both the author of a message and the global view mode.
type Role string

const (
	RoleSeeker Role = "apprentice"
	RoleGuide  Role = "mentor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSeeker, RoleGuide:
		return true
	default:
		return false
	}
}

// Other returns the role on the opposite side of the dialogue.
func (r Role) Other() Role {
	if r == RoleGuide {
		return RoleSeeker
	}
	return RoleGuide
}

func ParseRole(raw string) (Role, error) {
	switch raw {
	case "apprentice", "seeker":
		return RoleSeeker, nil
	case "mentor", "guide":
		return RoleGuide, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, raw)
	}
}
