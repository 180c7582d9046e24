package ports

import (
	"context"
)

// SignupInput carries a public registration request.
type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// AdminInput carries an out-of-band administrator provisioning request.
type AdminInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Confirmation is the only thing returned from a successful registration.
type Confirmation struct {
	Message string
}

// LoginResult is the issued token plus the identity summary of the account.
type LoginResult struct {
	Token       string
	UserID      int64
	Email       string
	FirstName   string
	LastName    string
	Roles       []string
	Permissions []string
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*Confirmation, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	CreateAdminUser(ctx context.Context, in AdminInput) (*Confirmation, error)
}
