// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Item is a record owned by exactly one account.
type Item struct {
	ItemID      int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Item model.
func (i Item) TableName() string {
	return "items"
}

// ItemCreate is the payload for a new item. The owner is always the caller.
type ItemCreate struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// ItemPatch is a partial update of an item.
//
// Title follows the pointer rule (nil leaves it unchanged). Description is an
// [Optional] because it is nullable: an omitted key leaves it unchanged while
// an explicit JSON null clears it.
type ItemPatch struct {
	Title       *string          `json:"title,omitempty"`
	Description Optional[string] `json:"description,omitzero"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Title == nil && !p.Description.Set
}

// Apply merges the patch into it and returns the result.
func (p ItemPatch) Apply(it Item) Item {
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Description.Set {
		it.Description = p.Description.Ptr()
	}
	return it
}

// Optional distinguishes an absent JSON field from an explicit null.
//
// Set is true when the key was present in the payload; Null is true when its
// value was null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns a present Optional holding an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// IsZero reports whether the value is absent, so that omitzero drops it.
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

// Ptr returns nil for absent or null values and a pointer to a copy of
// Value otherwise.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// UnmarshalJSON is only invoked for keys present in the payload, which is
// what marks the value as Set.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

// MarshalJSON writes null for absent and null values.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
