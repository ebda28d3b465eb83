// Package http implements the REST transport of go-item-keeper.
//
// It wires the /api/v1 routes on a chi router, resolves the bearer token of
// every protected request into a principal, and maps service errors to
// status codes with a {"detail": ...} body. Tracing, access logging,
// compression and request timeouts are applied as middleware before a
// request reaches the service layer.
package http
