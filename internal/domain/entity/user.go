// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"slices"
	"time"
)

// User is a record of the user directory. UserName is the immutable key.
type User struct {
	UserName     string    // Login name, unique across the directory.
	Name         string    // Given name.
	Surname      string    // Family name.
	Telephone    string    // Contact phone number.
	FiscalCode   string    // National fiscal code.
	BornDate     string    // Date of birth, YYYY-MM-DD.
	PasswordHash string    // bcrypt hash. Never rendered to clients.
	Tokens       []string  // Session tokens currently accepted for this user.
	Role         Role      // Directory role.
	Version      int       // Incremented by the store on every write.
	Created      time.Time // Set by the store on creation.
	Modified     time.Time // Set by the store on every write.
}

// HasToken reports whether token is one of the user's live session tokens.
func (u *User) HasToken(token string) bool {
	return slices.Contains(u.Tokens, token)
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserPatch lists the profile fields an update may change. Nil fields are
// left untouched.
type UserPatch struct {
	Name       *string
	Surname    *string
	Telephone  *string
	FiscalCode *string
	BornDate   *string
	Role       *Role
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Surname == nil && p.Telephone == nil &&
		p.FiscalCode == nil && p.BornDate == nil && p.Role == nil
}

// Apply writes the non-nil fields of the patch onto u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Surname != nil {
		u.Surname = *p.Surname
	}
	if p.Telephone != nil {
		u.Telephone = *p.Telephone
	}
	if p.FiscalCode != nil {
		u.FiscalCode = *p.FiscalCode
	}
	if p.BornDate != nil {
		u.BornDate = *p.BornDate
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
}

// UserList is the result of a full directory scan.
type UserList struct {
	Count int
	Data  []*User
}
