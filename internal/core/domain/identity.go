package domain

import "time"

// Identity is the authenticated principal carried by a bearer token. It is
// handed explicitly from the auth middleware to handlers and services.
type Identity struct {
	UserID    int64
	Email     string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports whether the identity holds any of the given roles.
func (i Identity) HasRole(roles ...RoleName) bool {
	for _, held := range i.Roles {
		for _, want := range roles {
			if held == string(want) {
				return true
			}
		}
	}
	return false
}
