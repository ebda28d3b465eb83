package grpc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-item-keeper/internal/logger"
	"github.com/MKhiriev/go-item-keeper/internal/service"
	"github.com/MKhiriev/go-item-keeper/internal/utils"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	authorizationKey = "authorization"
	traceIDKey       = "x-trace-id"

	healthServicePrefix = "/grpc.health.v1.Health/"
)

// public reports whether fullMethod may be called without a token.
func public(fullMethod string) bool {
	return strings.HasPrefix(fullMethod, healthServicePrefix)
}

func firstMetadata(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// withTraceID attaches a child logger carrying trace_id. A well-formed
// inbound x-trace-id is reused.
func (h *Handler) withTraceID(ctx context.Context) context.Context {
	traceID := utils.TraceID(firstMetadata(ctx, traceIDKey))

	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID)
	})
	return l.WithContext(ctx)
}

// resolve turns the "authorization" metadata into a principal.
func (h *Handler) resolve(ctx context.Context) (context.Context, error) {
	tokenString, err := utils.ParseBearerToken(firstMetadata(ctx, authorizationKey))
	if err != nil {
		return ctx, statusFromError(fmt.Errorf("%w: %w", service.ErrUnauthenticated, err))
	}

	user, err := h.services.AuthService.ResolvePrincipal(ctx, tokenString)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*Handler.resolve").Msg("token rejected")
		return ctx, statusFromError(err)
	}

	return utils.WithPrincipal(ctx, user), nil
}

func (h *Handler) withTraceIDUnary(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	return handler(h.withTraceID(ctx), req)
}

func (h *Handler) withLoggingUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	logger.FromContext(ctx).Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}

func (h *Handler) authUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if public(info.FullMethod) {
		return handler(ctx, req)
	}

	ctx, err := h.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

// wrappedStream replaces the context of a server stream.
type wrappedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *wrappedStream) Context() context.Context {
	return s.ctx
}

func (h *Handler) withTraceIDStream(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	return handler(srv, &wrappedStream{ServerStream: ss, ctx: h.withTraceID(ss.Context())})
}

func (h *Handler) authStream(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	if public(info.FullMethod) {
		return handler(srv, ss)
	}

	ctx, err := h.resolve(ss.Context())
	if err != nil {
		return err
	}
	return handler(srv, &wrappedStream{ServerStream: ss, ctx: ctx})
}
