// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the unique login identifier of the account.
	Email string `json:"email"`

	// Username is the display name of the user.
	Username string `json:"username"`

	// PasswordHash stores the bcrypt digest of the user's password.
	// It is never serialized and never the plaintext.
	PasswordHash string `json:"-"`

	// IsActive reports whether the account may authenticate. Deactivating an
	// account invalidates all of its outstanding tokens at their next use.
	IsActive bool `json:"is_active"`

	// IsSuperuser grants unrestricted access to every resource.
	IsSuperuser bool `json:"is_superuser"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserCreate is the registration payload. Password is plaintext and is
// replaced by a hash before the account reaches the store.
type UserCreate struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	IsActive    *bool  `json:"is_active,omitempty"`
	IsSuperuser bool   `json:"is_superuser,omitempty"`
}

// UserPatch is a partial update of an account.
// A nil field is left unchanged; a non-nil field overwrites the stored value.
type UserPatch struct {
	Email       *string `json:"email,omitempty"`
	Username    *string `json:"username,omitempty"`
	Password    *string `json:"password,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsSuperuser *bool   `json:"is_superuser,omitempty"`

	// PasswordHash is set by the service layer after hashing Password.
	// It is what the store persists; Password itself never reaches it.
	PasswordHash *string `json:"-"`
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.Username == nil && p.Password == nil &&
		p.IsActive == nil && p.IsSuperuser == nil && p.PasswordHash == nil
}

// TouchesPrivileges reports whether the patch changes fields that only a
// superuser may change.
func (p UserPatch) TouchesPrivileges() bool {
	return p.IsActive != nil || p.IsSuperuser != nil
}

// Apply merges the patch into u and returns the result.
func (p UserPatch) Apply(u User) User {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.IsSuperuser != nil {
		u.IsSuperuser = *p.IsSuperuser
	}
	return u
}

// PasswordUpdate is the payload of a self-service password change.
type PasswordUpdate struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
