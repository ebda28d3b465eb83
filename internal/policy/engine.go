// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package policy

import "github.com/MKhiriev/go-item-keeper/models"

// Engine evaluates the decision table. The zero value is ready to use and
// safe for concurrent use.
type Engine struct{}

// NewEngine returns an [Engine].
func NewEngine() *Engine {
	return &Engine{}
}

// Authorize decides whether principal may perform action on target.
func (e *Engine) Authorize(principal models.User, action Action, target Target) Decision {
	req := Request{Principal: principal, Action: action, Target: target}
	for _, rule := range rules {
		if rule.Matches(req) {
			return rule.Decision
		}
	}
	// unreachable: the table ends with a catch-all
	return deny("default-deny", ErrForbidden)
}

// Scope returns the filter a list of owned resources must apply for
// principal: none for superusers, the principal's own id otherwise.
func (e *Engine) Scope(principal models.User) ListScope {
	if principal.IsSuperuser {
		return ListScope{}
	}
	id := principal.UserID
	return ListScope{OwnerID: &id}
}
