// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package policy

import "errors"

var (
	ErrForbidden = errors.New("not enough privileges")
	ErrNotFound  = errors.New("resource not found")
)

// Action is an operation a principal wants to perform.
type Action int

const (
	ActionList Action = iota + 1
	ActionRead
	ActionCreate
	ActionUpdate
	ActionDelete
	// ActionManage changes privilege fields (is_active, is_superuser) of an
	// account.
	ActionManage
)

func (a Action) String() string {
	switch a {
	case ActionList:
		return "list"
	case ActionRead:
		return "read"
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	case ActionManage:
		return "manage"
	default:
		return "unknown"
	}
}

// Kind is the type of resource an action targets.
type Kind int

const (
	KindAccount Kind = iota + 1
	KindItem
)

func (k Kind) String() string {
	switch k {
	case KindAccount:
		return "account"
	case KindItem:
		return "item"
	default:
		return "unknown"
	}
}

// Target is a snapshot of the resource an action applies to.
//
// Found is false when the lookup returned nothing. For collection actions
// (list, create) there is no single row; use [Collection].
type Target struct {
	Kind    Kind
	Found   bool
	ID      int64
	OwnerID int64
}

// Account returns the target for a loaded account.
func Account(id int64) Target {
	return Target{Kind: KindAccount, Found: true, ID: id, OwnerID: id}
}

// Item returns the target for a loaded item.
func Item(id, ownerID int64) Target {
	return Target{Kind: KindItem, Found: true, ID: id, OwnerID: ownerID}
}

// Missing returns the target for a lookup that found nothing.
func Missing(kind Kind) Target {
	return Target{Kind: kind}
}

// Collection returns the target for list and create actions.
func Collection(kind Kind) Target {
	return Target{Kind: kind, Found: true}
}

// Decision is the outcome of [Engine.Authorize]. Reason is set only when
// Allowed is false and is one of ErrForbidden or ErrNotFound.
type Decision struct {
	Allowed bool
	Reason  error
	// Rule names the table entry that decided.
	Rule string
}

// Err returns nil for an allowed decision and the denial reason otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	if d.Reason == nil {
		return ErrForbidden
	}
	return d.Reason
}

func allow(rule string) Decision {
	return Decision{Allowed: true, Rule: rule}
}

func deny(rule string, reason error) Decision {
	return Decision{Reason: reason, Rule: rule}
}

// ListScope restricts a list query. A nil OwnerID means unfiltered.
type ListScope struct {
	OwnerID *int64
}

// Unfiltered reports whether the scope lets every row through.
func (s ListScope) Unfiltered() bool {
	return s.OwnerID == nil
}
