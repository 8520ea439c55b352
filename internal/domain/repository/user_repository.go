// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"dentist/internal/domain/entity"
)

// UserKeyPrefix prefixes every user key in the single-table store.
const UserKeyPrefix = "user#"

// UserRepository is the credential store: the user directory plus the set of
// live session tokens of each user. Implementations report failures with the
// sentinels of internal/domain/errors.
type UserRepository interface {
	// Create persists a new user. Fails with ErrAlreadyExists when the key is taken.
	Create(ctx context.Context, user *entity.User) (*entity.User, error)

	// FindByUserName retrieves a single user. Fails with ErrNotFound.
	FindByUserName(ctx context.Context, userName string) (*entity.User, error)

	// Update applies patch to an existing user and returns the stored record
	// after the write. Fails with ErrNotFound.
	Update(ctx context.Context, userName string, patch entity.UserPatch) (*entity.User, error)

	// Delete removes an existing user. Fails with ErrNotFound.
	Delete(ctx context.Context, userName string) error

	// List scans every user record.
	List(ctx context.Context) (*entity.UserList, error)

	// AddToken adds token to the user's token set.
	AddToken(ctx context.Context, userName, token string) error

	// RemoveToken removes token from the user's token set. Removing an absent
	// token is not an error.
	RemoveToken(ctx context.Context, userName, token string) error

	// UpdatePasswordHash overwrites the stored password hash.
	UpdatePasswordHash(ctx context.Context, userName, hash string) error

	// FindByToken decodes token, loads its subject and checks the token is
	// still in the subject's set. Any failure is ErrInvalidToken.
	FindByToken(ctx context.Context, token string) (*entity.User, error)
}
