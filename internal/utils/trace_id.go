package utils

import (
	"regexp"

	"github.com/google/uuid"
)

// inboundTraceID limits caller-supplied trace ids to what is safe to echo
// into logs and response headers.
var inboundTraceID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// TraceID returns incoming when a caller sent a usable id, and a fresh
// UUIDv7 otherwise, so ids minted here sort by request time.
func TraceID(incoming string) string {
	if inboundTraceID.MatchString(incoming) {
		return incoming
	}

	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
