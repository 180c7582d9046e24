package domain

import "strings"

// RoleName is the fixed enumeration of roles known to the system.
type RoleName string

const (
	RoleAdmin     RoleName = "ADMIN"
	RoleUser      RoleName = "USER"
	RoleOrganizer RoleName = "ORGANIZER"
)

// AllRoles lists every role in seeding order.
var AllRoles = []RoleName{RoleAdmin, RoleUser, RoleOrganizer}

// ParseRoleName maps a case-insensitive string onto the enumeration.
func ParseRoleName(s string) (RoleName, bool) {
	name := RoleName(strings.ToUpper(strings.TrimSpace(s)))
	for _, r := range AllRoles {
		if r == name {
			return r, true
		}
	}
	return "", false
}

// SelectableAtSignup reports whether a caller may request this role on the
// public signup path. Other roles exist in storage but are assigned out of band.
func (r RoleName) SelectableAtSignup() bool {
	return r == RoleAdmin || r == RoleUser
}

// PermissionName is the fixed enumeration of capabilities.
type PermissionName string

const (
	PermEventRead     PermissionName = "EVENT_READ"
	PermEventRegister PermissionName = "EVENT_REGISTER"
	PermEventCreate   PermissionName = "EVENT_CREATE"
	PermEventManage   PermissionName = "EVENT_MANAGE"
	PermProfileRead   PermissionName = "PROFILE_READ"
	PermUserRead      PermissionName = "USER_READ"
	PermUserManage    PermissionName = "USER_MANAGE"
)

// Permission is an atomic capability granted through roles.
type Permission struct {
	ID   int64          `json:"id,omitempty"`
	Name PermissionName `json:"name"`
}

// Role is a named bundle of permissions.
type Role struct {
	ID          int64        `json:"id,omitempty"`
	Name        RoleName     `json:"name"`
	Permissions []Permission `json:"permissions,omitempty"`
}

// DefaultRolePermissions is the reference data written by the seeder.
func DefaultRolePermissions() map[RoleName][]PermissionName {
	return map[RoleName][]PermissionName{
		RoleUser: {
			PermEventRead,
			PermEventRegister,
			PermProfileRead,
		},
		RoleOrganizer: {
			PermEventRead,
			PermEventCreate,
			PermEventManage,
			PermProfileRead,
		},
		RoleAdmin: {
			PermEventRead,
			PermEventRegister,
			PermEventCreate,
			PermEventManage,
			PermProfileRead,
			PermUserRead,
			PermUserManage,
		},
	}
}
