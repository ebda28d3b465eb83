// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-item-keeper/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestPrincipalCtxKey(t *testing.T) {
	if PrincipalCtxKey.String() != "principal" {
		t.Errorf("expected 'principal', got '%s'", PrincipalCtxKey.String())
	}
}

func TestGetPrincipalFromContext_Success(t *testing.T) {
	want := models.User{UserID: 42, Email: "alice@example.com", IsActive: true}
	ctx := WithPrincipal(context.Background(), want)

	got, ok := GetPrincipalFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if got.UserID != 42 || got.Email != "alice@example.com" {
		t.Errorf("unexpected principal %+v", got)
	}
}

func TestGetPrincipalFromContext_Missing(t *testing.T) {
	got, ok := GetPrincipalFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if got.UserID != 0 {
		t.Errorf("expected zero principal, got %+v", got)
	}
}

func TestGetPrincipalFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), PrincipalCtxKey, int64(42))

	_, ok := GetPrincipalFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetPrincipalFromContext_PointerIsRejected(t *testing.T) {
	ctx := context.WithValue(context.Background(), PrincipalCtxKey, &models.User{UserID: 1})

	_, ok := GetPrincipalFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for *models.User, got true")
	}
}

func TestGetPrincipalFromContext_DifferentKey(t *testing.T) {
	otherKey := contextKey("otherKey")
	ctx := context.WithValue(context.Background(), otherKey, models.User{UserID: 99})

	_, ok := GetPrincipalFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}
