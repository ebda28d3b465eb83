package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail     = errors.New("invalid email")
	ErrEmptyUsername    = errors.New("username is required")
	ErrEmptyPassword    = errors.New("password is required")
	ErrPasswordTooLong  = errors.New("password must not exceed 72 bytes")
	ErrEmptyTitle       = errors.New("title is required")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
)
