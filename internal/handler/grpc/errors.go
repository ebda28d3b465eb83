package grpc

import (
	"errors"

	"github.com/MKhiriev/go-item-keeper/internal/app"
	"github.com/MKhiriev/go-item-keeper/internal/service"
	"github.com/MKhiriev/go-item-keeper/internal/store"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type errorCode struct {
	err    error
	code   codes.Code
	detail string
}

// errorCodeMap mirrors the HTTP mapping; first match wins.
var errorCodeMap = []errorCode{
	{service.ErrUnauthenticated, codes.Unauthenticated, app.MsgCouldNotValidateCredentials},
	{service.ErrAccountInactive, codes.Unauthenticated, app.MsgInactiveUser},
	{service.ErrInvalidCredentials, codes.Unauthenticated, app.MsgIncorrectEmailOrPassword},
	{service.ErrForbidden, codes.PermissionDenied, app.MsgNotEnoughPrivileges},
	{service.ErrNotFound, codes.NotFound, app.MsgNotFound},
	{service.ErrStoreUnavailable, codes.Unavailable, app.MsgServiceUnavailable},
	{store.ErrEmailAlreadyExists, codes.AlreadyExists, app.MsgEmailAlreadyExists},
	{service.ErrInvalidDataProvided, codes.InvalidArgument, app.MsgInvalidDataProvided},
	{service.ErrValueRejected, codes.InvalidArgument, app.MsgInvalidDataProvided},
}

// statusFromError converts a service error into a gRPC status error.
func statusFromError(err error) error {
	for _, entry := range errorCodeMap {
		if errors.Is(err, entry.err) {
			return status.Error(entry.code, entry.detail)
		}
	}
	return status.Error(codes.Internal, app.MsgInternalServerError)
}
