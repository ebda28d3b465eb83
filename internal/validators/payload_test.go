// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-item-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func validUserCreate() models.UserCreate {
	return models.UserCreate{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "secret123",
	}
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestNewPayloadValidator(t *testing.T) {
	require.NotNil(t, NewPayloadValidator())
}

func TestValidate_Dispatch(t *testing.T) {
	v := NewPayloadValidator()
	ctx := context.Background()
	uc := validUserCreate()
	ic := models.ItemCreate{Title: "Foo"}
	up := models.UserPatch{Username: strPtr("bob")}
	ip := models.ItemPatch{Title: strPtr("Bar")}
	pu := models.PasswordUpdate{CurrentPassword: "old", NewPassword: "new-secret"}

	for _, obj := range []any{uc, &uc, ic, &ic, up, &up, ip, &ip, pu, &pu} {
		assert.NoError(t, v.Validate(ctx, obj))
	}

	assert.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, models.User{}), ErrUnsupportedType)
}

func TestValidate_UnknownField(t *testing.T) {
	v := NewPayloadValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, validUserCreate(), "nope"), ErrUnknownField)
	assert.ErrorIs(t, v.Validate(ctx, models.ItemCreate{Title: "x"}, FieldEmail), ErrUnknownField)
}

// ---------------------------------------------------------------------------
// UserCreate
// ---------------------------------------------------------------------------

func TestValidate_UserCreate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.UserCreate)
		wantErr error
	}{
		{"valid", func(*models.UserCreate) {}, nil},
		{"empty email", func(u *models.UserCreate) { u.Email = "" }, ErrInvalidEmail},
		{"email without at", func(u *models.UserCreate) { u.Email = "alice" }, ErrInvalidEmail},
		{"email with display name", func(u *models.UserCreate) { u.Email = "Alice <alice@example.com>" }, ErrInvalidEmail},
		{"blank username", func(u *models.UserCreate) { u.Username = "  " }, ErrEmptyUsername},
		{"empty password", func(u *models.UserCreate) { u.Password = "" }, ErrEmptyPassword},
		{"password too long", func(u *models.UserCreate) { u.Password = strings.Repeat("a", 73) }, ErrPasswordTooLong},
		{"password at limit", func(u *models.UserCreate) { u.Password = strings.Repeat("a", 72) }, nil},
	}

	v := NewPayloadValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUserCreate()
			tt.mutate(&u)

			err := v.Validate(context.Background(), u)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_UserCreate_FieldScoping(t *testing.T) {
	v := NewPayloadValidator()
	u := models.UserCreate{Email: "alice@example.com"}

	assert.NoError(t, v.Validate(context.Background(), u, FieldEmail))
	assert.ErrorIs(t, v.Validate(context.Background(), u, FieldEmail, FieldPassword), ErrEmptyPassword)
}

// ---------------------------------------------------------------------------
// UserPatch
// ---------------------------------------------------------------------------

func TestValidate_UserPatch(t *testing.T) {
	tests := []struct {
		name    string
		patch   models.UserPatch
		wantErr error
	}{
		{"empty patch", models.UserPatch{}, ErrNoFieldsToUpdate},
		{"privilege only", models.UserPatch{IsActive: boolPtr(false)}, nil},
		{"valid email", models.UserPatch{Email: strPtr("new@example.com")}, nil},
		{"invalid email", models.UserPatch{Email: strPtr("broken")}, ErrInvalidEmail},
		{"blank username", models.UserPatch{Username: strPtr("")}, ErrEmptyUsername},
		{"empty password", models.UserPatch{Password: strPtr("")}, ErrEmptyPassword},
		{"long password", models.UserPatch{Password: strPtr(strings.Repeat("b", 100))}, ErrPasswordTooLong},
	}

	v := NewPayloadValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.patch)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// PasswordUpdate
// ---------------------------------------------------------------------------

func TestValidate_PasswordUpdate(t *testing.T) {
	v := NewPayloadValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.PasswordUpdate{NewPassword: "x"}), ErrEmptyPassword)
	assert.ErrorIs(t, v.Validate(ctx, models.PasswordUpdate{CurrentPassword: "x"}), ErrEmptyPassword)
	assert.ErrorIs(t,
		v.Validate(ctx, models.PasswordUpdate{CurrentPassword: "x", NewPassword: strings.Repeat("c", 80)}),
		ErrPasswordTooLong)
}

// ---------------------------------------------------------------------------
// Items
// ---------------------------------------------------------------------------

func TestValidate_ItemCreate(t *testing.T) {
	v := NewPayloadValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ItemCreate{Title: "Foo", Description: strPtr("bar")}))
	assert.NoError(t, v.Validate(ctx, models.ItemCreate{Title: "Foo"}))
	assert.ErrorIs(t, v.Validate(ctx, models.ItemCreate{}), ErrEmptyTitle)
	assert.ErrorIs(t, v.Validate(ctx, models.ItemCreate{Title: "   "}), ErrEmptyTitle)
}

func TestValidate_ItemPatch(t *testing.T) {
	v := NewPayloadValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.ItemPatch{}), ErrNoFieldsToUpdate)
	assert.NoError(t, v.Validate(ctx, models.ItemPatch{Description: models.Null[string]()}))
	assert.NoError(t, v.Validate(ctx, models.ItemPatch{Title: strPtr("new")}))
	assert.ErrorIs(t, v.Validate(ctx, models.ItemPatch{Title: strPtr("")}), ErrEmptyTitle)
}
