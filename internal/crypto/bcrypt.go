// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest input bcrypt looks at.
const maxPasswordBytes = 72

var (
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
	ErrInvalidCost     = errors.New("invalid bcrypt cost")
)

// BcryptHasher is the [PasswordHasher] backed by bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using the given cost factor.
// A zero cost selects bcrypt.DefaultCost.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCost, cost)
	}

	return &BcryptHasher{cost: cost}, nil
}

// Hash returns a bcrypt digest of plain. Inputs longer than 72 bytes are
// rejected rather than truncated.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	if len(plain) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// Verify reports whether plain matches digest.
func (h *BcryptHasher) Verify(plain, digest string) bool {
	if digest == "" || len(plain) > maxPasswordBytes {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// Cost returns the cost factor used for new digests.
func (h *BcryptHasher) Cost() int {
	return h.cost
}
