package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims for session tokens.
type Claims struct {
	UserName string `json:"userName"`
	jwt.RegisteredClaims
}

// TokenService issues and decodes signed session tokens.
type TokenService interface {
	// Issue creates a signed token whose subject is userName.
	Issue(userName string) (string, error)

	// Decode verifies the signature and returns the claims. Expiry is not
	// checked; token liveness is decided by the credential store.
	Decode(token string) (*Claims, error)
}
