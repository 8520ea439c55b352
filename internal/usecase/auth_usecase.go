// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"dentist/internal/domain/entity"
)

// LoginOutput carries the session token issued by a successful login.
type LoginOutput struct {
	Token string
}

// AuthUsecase covers credential verification and the session token lifecycle.
type AuthUsecase interface {
	// VerifyCredentials returns the user owning userName when password
	// matches. Every failure is reported as ErrInvalidCredential.
	VerifyCredentials(ctx context.Context, userName, password string) (*entity.User, error)

	// Login issues a new token for an already verified user and records it.
	// Tokens from earlier logins stay valid.
	Login(ctx context.Context, user *entity.User) (*LoginOutput, error)

	// Logout revokes token for user. Revoking an unknown token succeeds.
	Logout(ctx context.Context, user *entity.User, token string) (bool, error)

	// ResolveByToken returns the user a live token belongs to. Every failure
	// is reported as ErrInvalidToken.
	ResolveByToken(ctx context.Context, token string) (*entity.User, error)

	// ResetPassword overwrites the password of userName without checking the
	// previous one.
	ResetPassword(ctx context.Context, userName, newPassword string) (bool, error)
}
