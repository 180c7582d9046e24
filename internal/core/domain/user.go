package domain

import (
	"slices"
	"strings"
	"time"
)

// User models a registered account.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"createdAt"`
	Roles        []Role    `json:"roles,omitempty"`
}

// NormalizeEmail trims and lower-cases an address. Uniqueness and login
// lookups both go through it, so "A@X.com" and "a@x.com" are the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RoleNames returns the distinct role names held by the user, sorted.
func (u *User) RoleNames() []string {
	set := make(map[string]struct{}, len(u.Roles))
	for _, r := range u.Roles {
		set[string(r.Name)] = struct{}{}
	}
	return sortedKeys(set)
}

// PermissionNames returns the union of permissions granted by all of the
// user's roles, deduplicated and sorted.
func (u *User) PermissionNames() []string {
	set := make(map[string]struct{})
	for _, r := range u.Roles {
		for _, p := range r.Permissions {
			set[string(p.Name)] = struct{}{}
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
