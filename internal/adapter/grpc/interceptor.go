package grpc

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/simaogato/walletflow-backend/internal/identity"
)

// CallerHeader optionally names the caller a token-authenticated request runs on behalf of
const CallerHeader = "x-walletflow-caller"

// defaultSubject identifies token holders that did not name themselves
const defaultSubject = "api-token"

// AuthInterceptor returns a gRPC unary server interceptor that validates
// the authorization token from request metadata.
// If the token is missing or invalid, it returns status.Unauthenticated.
// If valid, it calls the handler with the caller attached to the context.
func AuthInterceptor(validToken string) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization header")
		}

		if authHeaders[0] != validToken {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		caller := identity.Caller{Subject: defaultSubject}
		if names := md.Get(CallerHeader); len(names) > 0 && names[0] != "" {
			caller.Subject = names[0]
		}

		return handler(identity.WithCaller(ctx, caller), req)
	}
}

// LoggingInterceptor returns a gRPC unary server interceptor that logs every call
// with its method, status code and duration
func LoggingInterceptor(logger logrus.FieldLogger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		entry := logger.WithFields(logrus.Fields{
			"method":      info.FullMethod,
			"code":        code.String(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		switch code {
		case codes.OK:
			entry.Info("rpc completed")
		case codes.Internal, codes.Unavailable, codes.Unknown:
			entry.WithError(err).Error("rpc failed")
		default:
			entry.WithError(err).Warn("rpc rejected")
		}
		return resp, err
	}
}
