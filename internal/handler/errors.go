// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoTransportEnabled means neither an HTTP nor a gRPC address was
// configured.
var errNoTransportEnabled = errors.New("no transport is enabled")
