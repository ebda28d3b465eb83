// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-item-keeper/models"
	"github.com/golang-jwt/jwt/v5"
)

// Failure kinds reported by [TokenCodec.Parse]. Exactly one of them is
// wrapped in every parse error.
var (
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenInvalidSignature = errors.New("token signature is invalid")
	ErrTokenExpired          = errors.New("token is expired")

	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")
	ErrInvalidTokenCodecParams    = errors.New("invalid params for token codec")
)

// TokenCodec issues and parses HMAC-SHA256 signed session tokens.
//
// Tokens carry the standard registered claims: iss, sub (the account id in
// base 10), iat and exp. Rotating the sign key invalidates every token
// issued with the previous key.
type TokenCodec struct {
	signKey []byte
	issuer  string
	now     func() time.Time
}

// NewTokenCodec returns a codec signing with signKey and stamping issuer
// into every token. Both values are required.
func NewTokenCodec(signKey, issuer string) (*TokenCodec, error) {
	if signKey == "" || issuer == "" {
		return nil, ErrInvalidTokenCodecParams
	}

	return &TokenCodec{
		signKey: []byte(signKey),
		issuer:  issuer,
		now:     time.Now,
	}, nil
}

// Issue signs a token for subjectID valid for ttl from now.
//
// A non-positive ttl is accepted and yields a token that is already
// expired.
func (c *TokenCodec) Issue(subjectID int64, ttl time.Duration) (models.Token, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Issuer:    c.issuer,
		Subject:   strconv.FormatInt(subjectID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing token: %w", err)
	}

	return models.Token{
		RegisteredClaims: claims,
		SignedString:     signed,
		UserID:           subjectID,
	}, nil
}

// Parse verifies tokenString and returns its claims.
//
// The returned error wraps ErrTokenInvalidSignature when the signature does
// not verify (including tokens signed with any algorithm other than HS256),
// ErrTokenExpired when exp lies in the past, and ErrTokenMalformed for
// everything else: undecodable input, a foreign issuer or a missing or
// non-numeric subject.
func (c *TokenCodec) Parse(tokenString string) (models.Token, error) {
	var token models.Token

	_, err := jwt.ParseWithClaims(tokenString, &token, func(*jwt.Token) (any, error) {
		return c.signKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return models.Token{}, classifyTokenError(err)
	}

	userID, err := token.GetUserID()
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}

	token.SignedString = tokenString
	token.UserID = userID

	return token, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrTokenInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}
