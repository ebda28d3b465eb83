// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"strings"

	"github.com/MKhiriev/go-item-keeper/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldEmail targets the login email of an account.
	FieldEmail = "email"

	// FieldUsername targets the display name of an account.
	FieldUsername = "username"

	// FieldPassword targets a plaintext password on its way to the hasher.
	FieldPassword = "password"

	// FieldNewPassword targets the replacement password of a password change.
	FieldNewPassword = "new_password"

	// FieldTitle targets the title of an item.
	FieldTitle = "title"

	// FieldPatch requires a partial update to change at least one field.
	FieldPatch = "patch"
)

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// PayloadValidator implements Validator for the inbound account and item
// payloads: UserCreate, UserPatch, PasswordUpdate, ItemCreate and ItemPatch.
//
// Both value and pointer forms are accepted.
type PayloadValidator struct {
}

// NewPayloadValidator constructs a PayloadValidator and returns it as the
// Validator interface.
func NewPayloadValidator() Validator {
	return &PayloadValidator{}
}

// Validate dispatches on the dynamic type of obj.
//
// Returns ErrUnsupportedType for any other type. Optional fields restrict
// validation to the named subset; when omitted, every field of the payload
// is validated.
func (v *PayloadValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UserCreate:
		return v.validateUserCreate(value, fields...)
	case *models.UserCreate:
		return v.validateUserCreate(*value, fields...)

	case models.UserPatch:
		return v.validateUserPatch(value, fields...)
	case *models.UserPatch:
		return v.validateUserPatch(*value, fields...)

	case models.PasswordUpdate:
		return v.validatePasswordUpdate(value, fields...)
	case *models.PasswordUpdate:
		return v.validatePasswordUpdate(*value, fields...)

	case models.ItemCreate:
		return v.validateItemCreate(value, fields...)
	case *models.ItemCreate:
		return v.validateItemCreate(*value, fields...)

	case models.ItemPatch:
		return v.validateItemPatch(value, fields...)
	case *models.ItemPatch:
		return v.validateItemPatch(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *PayloadValidator) validateUserCreate(u models.UserCreate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := validateEmail(u.Email); err != nil {
				return err
			}
		case FieldUsername:
			if strings.TrimSpace(u.Username) == "" {
				return ErrEmptyUsername
			}
		case FieldPassword:
			if err := validatePassword(u.Password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateUserPatch checks only the fields present in the patch.
func (v *PayloadValidator) validateUserPatch(p models.UserPatch, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPatch, FieldEmail, FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldPatch:
			if p.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		case FieldEmail:
			if p.Email != nil {
				if err := validateEmail(*p.Email); err != nil {
					return err
				}
			}
		case FieldUsername:
			if p.Username != nil && strings.TrimSpace(*p.Username) == "" {
				return ErrEmptyUsername
			}
		case FieldPassword:
			if p.Password != nil {
				if err := validatePassword(*p.Password); err != nil {
					return err
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *PayloadValidator) validatePasswordUpdate(p models.PasswordUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPassword, FieldNewPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldPassword:
			if p.CurrentPassword == "" {
				return ErrEmptyPassword
			}
		case FieldNewPassword:
			if err := validatePassword(p.NewPassword); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *PayloadValidator) validateItemCreate(i models.ItemCreate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if strings.TrimSpace(i.Title) == "" {
				return ErrEmptyTitle
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *PayloadValidator) validateItemPatch(p models.ItemPatch, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPatch, FieldTitle}
	}

	for _, f := range fields {
		switch f {
		case FieldPatch:
			if p.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		case FieldTitle:
			if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
				return ErrEmptyTitle
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateEmail accepts a bare RFC 5322 address, without a display name.
func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}
