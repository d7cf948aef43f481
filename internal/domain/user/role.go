package user

import (
	"fmt"

	vo "hotelops/internal/domain/shared/valueobjects"
)

type Role string

const (
	RoleManager     Role = "Manager"
	RoleHousekeeper Role = "Housekeeper"
	RoleDirector    Role = "Director"
	RoleAdmin       Role = "Admin"
)

var allRoles = []Role{RoleManager, RoleHousekeeper, RoleDirector, RoleAdmin}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return vo.Canonical(string(r), allRoles...) == r
}

func ParseRole(s string) (Role, error) {
	if r := vo.Canonical(s, allRoles...); r != "" {
		return r, nil
	}
	return "", fmt.Errorf("invalid role %q, valid values: %v", s, allRoles)
}
