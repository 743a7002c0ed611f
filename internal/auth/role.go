package auth

import "errors"

// Role is the closed set of account roles. There is no open-ended or
// default role: unknown values fail at the parsing edge.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleCoach  Role = "coach"
	RoleRunner Role = "runner"
)

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleCoach, RoleRunner:
		return Role(s), nil
	}
	return "", ErrUnknownRole
}

// Badge pairs a role with the presentation attributes the dashboard renders
// for it. The table is exhaustive over the closed role set.
type Badge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var roleBadges = map[Role]Badge{
	RoleAdmin:  {Label: "ADMIN", Color: "#898AC4"},
	RoleCoach:  {Label: "COACH", Color: "#A2AADB"},
	RoleRunner: {Label: "RUNNER", Color: "#C0C9EE"},
}

func (r Role) Badge() (Badge, error) {
	badge, ok := roleBadges[r]
	if !ok {
		return Badge{}, ErrUnknownRole
	}
	return badge, nil
}
