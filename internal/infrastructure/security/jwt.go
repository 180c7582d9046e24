package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/eventra/eventra-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// claims is the JWT payload. The subject is the account email; uid and roles
// let protected routes authorize without a store round trip.
type claims struct {
	UserID int64    `json:"uid"`
	Roles  []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// JWTIssuer signs and verifies HS256 bearer tokens with a server-held secret.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration, issuer string) *JWTIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

// Generate issues a token for identity. Each token carries a random jti, so
// two tokens for the same subject never compare equal.
func (j *JWTIssuer) Generate(identity domain.Identity) (string, error) {
	if identity.Email == "" {
		return "", fmt.Errorf("%w: empty subject", domain.ErrTokenSign)
	}

	now := j.now()
	c := claims{
		UserID: identity.UserID,
		Roles:  identity.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Email,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTokenSign, err)
	}
	return signed, nil
}

// Verify parses token and returns the identity it carries.
func (j *JWTIssuer) Verify(token string) (*domain.Identity, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (interface{}, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrTokenInvalidSignature
		default:
			return nil, domain.ErrTokenMalformed
		}
	}
	if c.Subject == "" {
		return nil, domain.ErrTokenMalformed
	}

	identity := &domain.Identity{
		UserID: c.UserID,
		Email:  c.Subject,
		Roles:  c.Roles,
	}
	if c.IssuedAt != nil {
		identity.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		identity.ExpiresAt = c.ExpiresAt.Time
	}
	return identity, nil
}
