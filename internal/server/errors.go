package server

import "errors"

// errNoListener means neither transport has both an address and a handler,
// so there is nothing to accept connections on.
var errNoListener = errors.New("server: neither an HTTP nor a gRPC listener is configured")
