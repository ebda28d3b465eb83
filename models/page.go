package models

import "math"

const (
	// DefaultPageLimit is used when a list request carries no limit.
	DefaultPageLimit = 100
	// MaxPageLimit caps the number of rows a single list request may return.
	MaxPageLimit = 1000
)

// Page is an offset/limit window over an id-ordered list.
type Page struct {
	Skip  uint64 `json:"skip"`
	Limit uint64 `json:"limit"`
}

// Normalize applies the default and maximum limit and keeps Skip within
// the range of a SQL bigint.
func (p Page) Normalize() Page {
	if p.Skip > math.MaxInt64 {
		p.Skip = math.MaxInt64
	}
	if p.Limit == 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// UserList is a page of accounts.
type UserList struct {
	Data  []User `json:"data"`
	Count int    `json:"count"`
}

// ItemList is a page of items.
type ItemList struct {
	Data  []Item `json:"data"`
	Count int    `json:"count"`
}
