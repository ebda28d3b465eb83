// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package policy

import "github.com/MKhiriev/go-item-keeper/models"

// Request is what a rule matches against.
type Request struct {
	Principal models.User
	Action    Action
	Target    Target
}

// Rule is one row of the decision table.
type Rule struct {
	Name     string
	Matches  func(Request) bool
	Decision Decision
}

// rules is evaluated top to bottom; the first match decides.
//
// target-not-found precedes the superuser rule so a missing row is reported
// as such to everyone, and the self-delete guard precedes it so it holds
// unconditionally.
var rules = []Rule{
	{
		Name:     "target-not-found",
		Matches:  func(r Request) bool { return !r.Target.Found },
		Decision: deny("target-not-found", ErrNotFound),
	},
	{
		Name: "superuser-self-delete",
		Matches: func(r Request) bool {
			return r.Principal.IsSuperuser &&
				r.Action == ActionDelete &&
				r.Target.Kind == KindAccount &&
				r.Target.ID == r.Principal.UserID
		},
		Decision: deny("superuser-self-delete", ErrForbidden),
	},
	{
		Name:     "superuser",
		Matches:  func(r Request) bool { return r.Principal.IsSuperuser },
		Decision: allow("superuser"),
	},
	{
		Name:     "list-own-items",
		Matches:  func(r Request) bool { return r.Action == ActionList && r.Target.Kind == KindItem },
		Decision: allow("list-own-items"),
	},
	{
		Name:     "create-item",
		Matches:  func(r Request) bool { return r.Action == ActionCreate && r.Target.Kind == KindItem },
		Decision: allow("create-item"),
	},
	{
		Name: "superuser-only",
		Matches: func(r Request) bool {
			return r.Action == ActionManage ||
				(r.Target.Kind == KindAccount && (r.Action == ActionList || r.Action == ActionCreate))
		},
		Decision: deny("superuser-only", ErrForbidden),
	},
	{
		Name: "item-owner",
		Matches: func(r Request) bool {
			return r.Target.Kind == KindItem && isRowAction(r.Action) && r.Target.OwnerID == r.Principal.UserID
		},
		Decision: allow("item-owner"),
	},
	{
		Name: "account-self",
		Matches: func(r Request) bool {
			return r.Target.Kind == KindAccount && isRowAction(r.Action) && r.Target.ID == r.Principal.UserID
		},
		Decision: allow("account-self"),
	},
	{
		Name:     "default-deny",
		Matches:  func(Request) bool { return true },
		Decision: deny("default-deny", ErrForbidden),
	},
}

func isRowAction(a Action) bool {
	return a == ActionRead || a == ActionUpdate || a == ActionDelete
}

// Rules returns a copy of the decision table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
