// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors for malformed requests. All of them are reported as
// unprocessable input.
var (
	// ErrInvalidJSON is returned when the request body is not valid JSON for
	// the expected payload.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidForm is returned when a form-encoded body cannot be parsed.
	ErrInvalidForm = errors.New("invalid form was passed")

	// ErrInvalidPathID is returned when the {id} path segment is not a
	// positive integer.
	ErrInvalidPathID = errors.New("invalid id in path")

	// ErrInvalidQueryParam is returned when skip or limit is not a
	// non-negative integer.
	ErrInvalidQueryParam = errors.New("invalid query parameter")
)
