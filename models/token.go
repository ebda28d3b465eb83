// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeBearer is the only token type issued by the service.
const TokenTypeBearer = "bearer"

// Token wraps a JWT session token with convenience accessors for
// authentication flows.
//
// It embeds [jwt.RegisteredClaims] so that it can be handed directly to
// [jwt.ParseWithClaims]. SignedString holds the compact
// header.payload.signature form; UserID and ExpiresAtTime are parsed copies
// of the "sub" and "exp" claims.
type Token struct {
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the account identifier extracted from the "sub" claim.
	UserID int64 `json:"-"`
}

// GetUserID extracts the user identifier from the token's "sub" (subject) claim,
// parses it as a base-10 int64, and returns the result.
//
// Returns an error if the subject claim is missing, empty, or cannot be
// converted to int64.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// ExpiresAtTime returns the absolute expiry of the token, or the zero time
// when the claim is absent.
func (t *Token) ExpiresAtTime() time.Time {
	if t.ExpiresAt == nil {
		return time.Time{}
	}
	return t.ExpiresAt.Time
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// AccessToken is the login response body.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NewAccessToken builds the bearer response for a signed token.
func NewAccessToken(t Token) AccessToken {
	return AccessToken{AccessToken: t.SignedString, TokenType: TokenTypeBearer}
}
