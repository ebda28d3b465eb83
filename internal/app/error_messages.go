// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-item-keeper transport handlers and middleware.
//
// All Msg* constants are human-readable strings written into the "detail"
// field of error responses. Keeping them in one place keeps the wording
// identical between the HTTP and gRPC transports.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgIncorrectEmailOrPassword is returned by the login endpoint for an
	// unknown email and for a wrong password alike.
	MsgIncorrectEmailOrPassword = "Incorrect email or password"

	// MsgCouldNotValidateCredentials is returned when the bearer token is
	// missing, malformed, expired, badly signed or names a deleted account.
	MsgCouldNotValidateCredentials = "Could not validate credentials"

	// MsgInactiveUser is returned for a deactivated account.
	MsgInactiveUser = "Inactive user"

	// MsgNotEnoughPrivileges is returned when the principal is authenticated
	// but not permitted to act on the target.
	MsgNotEnoughPrivileges = "The user doesn't have enough privileges"

	// MsgNotFound is returned when the target resource does not exist.
	MsgNotFound = "Not found"

	// MsgEmailAlreadyExists is returned when an account with the requested
	// email already exists.
	MsgEmailAlreadyExists = "The user with this email already exists in the system"

	// MsgServiceUnavailable is returned when the record store is temporarily
	// unreachable. The client may retry.
	MsgServiceUnavailable = "Service temporarily unavailable"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "Internal server error"

	// MsgMethodNotAllowed is returned for a known path with an unsupported
	// HTTP method.
	MsgMethodNotAllowed = "Method Not Allowed"
)
