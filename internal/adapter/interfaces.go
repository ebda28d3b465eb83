// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is a Go client for the go-item-keeper HTTP API.
//
// [APIClient] covers signup, login, the caller's own account and item
// management. Non-2xx responses are mapped to the sentinel errors of this
// package so that callers can use [errors.Is] (for example [ErrForbidden]
// for 403 and [ErrNotFound] for 404).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-item-keeper/models"
)

// APIClient talks to a go-item-keeper server over HTTP.
type APIClient interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" before a login.
	Token() string

	// Signup registers a new regular account.
	Signup(ctx context.Context, in models.UserCreate) (models.User, error)

	// Login exchanges credentials for an access token and stores it via
	// SetToken.
	Login(ctx context.Context, email, password string) (models.AccessToken, error)

	// Me returns the account the stored token belongs to.
	Me(ctx context.Context) (models.User, error)

	// UpdatePassword changes the caller's password.
	UpdatePassword(ctx context.Context, in models.PasswordUpdate) error

	ListItems(ctx context.Context, page models.Page) (models.ItemList, error)
	GetItem(ctx context.Context, id int64) (models.Item, error)
	CreateItem(ctx context.Context, in models.ItemCreate) (models.Item, error)
	UpdateItem(ctx context.Context, id int64, patch models.ItemPatch) (models.Item, error)
	DeleteItem(ctx context.Context, id int64) error

	// Version reports the server version.
	Version(ctx context.Context) (models.VersionInfo, error)
}
