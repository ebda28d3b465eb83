package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-item-keeper/internal/policy"
	"github.com/MKhiriev/go-item-keeper/internal/store"
)

// Authentication failures.
var (
	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrUnauthenticated covers a missing, malformed, expired or badly signed
	// token, and a token whose subject no longer exists.
	ErrUnauthenticated = errors.New("could not validate credentials")

	// ErrAccountInactive is returned for a valid token or password whose
	// account has been deactivated.
	ErrAccountInactive = errors.New("inactive user")
)

// Authorization and store failures, re-exported so that callers of this
// package need a single import to classify an error.
var (
	ErrForbidden        = policy.ErrForbidden
	ErrNotFound         = policy.ErrNotFound
	ErrStoreUnavailable = store.ErrStoreUnavailable
	ErrValueRejected    = store.ErrValueRejected
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrIncorrectPassword = fmt.Errorf("%w: incorrect password", ErrInvalidDataProvided)
	ErrSamePassword      = fmt.Errorf("%w: new password cannot be the same as the current one", ErrInvalidDataProvided)

	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
