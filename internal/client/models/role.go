package models

import (
	"errors"
	"fmt"
	"strings"
)

// MemberRole is a catalog entry; ids are stable and match the member_roles table.
type MemberRole struct {
	ID   int64
	Name string
}

var (
	RoleAdmin  = MemberRole{ID: 1, Name: "admin"}
	RoleEditor = MemberRole{ID: 2, Name: "editor"}
	RoleViewer = MemberRole{ID: 3, Name: "viewer"}
)

var ErrUnknownRole = errors.New("unknown member role")

// Roles returns the whole catalog ordered by id.
func Roles() []MemberRole {
	return []MemberRole{RoleAdmin, RoleEditor, RoleViewer}
}

func RoleByID(id int64) (MemberRole, error) {
	for _, r := range Roles() {
		if r.ID == id {
			return r, nil
		}
	}
	return MemberRole{}, fmt.Errorf("%w: %d", ErrUnknownRole, id)
}

// RoleByName resolves a case-insensitive role name such as "Editor".
func RoleByName(name string) (MemberRole, error) {
	for _, r := range Roles() {
		if strings.EqualFold(r.Name, strings.TrimSpace(name)) {
			return r, nil
		}
	}
	return MemberRole{}, fmt.Errorf("%w: %q", ErrUnknownRole, name)
}
