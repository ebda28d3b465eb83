// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package policy decides whether a principal may perform an action on an
// account or an item.
//
// The decision is a pure function of the principal, the action and a
// snapshot of the target. Rules live in an ordered table evaluated top to
// bottom; the first rule that matches decides. Callers load the target,
// ask the [Engine], and only then disclose or mutate it.
//
// Listing owned resources is not decided per row: [Engine.Scope] returns the
// filter the store must apply so non-superusers only ever see their own
// items.
package policy
