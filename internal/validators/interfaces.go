// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks inbound account and item payloads before they
// reach the service layer.
//
// A Validator accepts any supported payload and optionally a list of field
// names that restricts the check to that subset. Failures are reported as
// package-level sentinel errors so handlers can map them to a single
// "invalid data" response.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
