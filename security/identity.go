package security

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleHR    = "hr"
	RoleAdmin = "admin"
	RoleStaff = "staff"

	issuer = "timekeeper"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Principal is the authenticated caller of a request.
type Principal struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// HasRole reports whether the principal holds any of roles.
func (p Principal) HasRole(roles ...string) bool {
	return slices.Contains(roles, p.Role)
}

type Identity struct {
	UniqueName string `json:"unique_name"`
	Role       string `json:"role"`
}

// IdentityClaims includes Identity and standard JWT claims
type IdentityClaims struct {
	Identity
	jwt.RegisteredClaims
}

func CreateIdentityToken(principal Principal, secret []byte, expiresIn time.Duration) (string, error) {
	if principal.Username == "" {
		return "", errors.New("username is required")
	}
	now := time.Now()
	claims := IdentityClaims{
		Identity: Identity{
			UniqueName: principal.Username,
			Role:       principal.Role,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   principal.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}

	// Use HS256 signing method (symmetric key)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secret)
}

// ParseIdentityToken validates the signature and expiry and returns the caller.
func ParseIdentityToken(tokenStr string, secret []byte) (*Principal, error) {
	var claims IdentityClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return PrincipalFromClaims(claims)
}

func PrincipalFromClaims(claims IdentityClaims) (*Principal, error) {
	name := claims.UniqueName
	if name == "" {
		name = claims.Subject
	}
	if name == "" {
		return nil, fmt.Errorf("%w: missing user name", ErrInvalidToken)
	}
	return &Principal{Username: name, Role: claims.Role}, nil
}
