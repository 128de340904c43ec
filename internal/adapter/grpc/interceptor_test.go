package grpc

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/simaogato/walletflow-backend/internal/identity"
)

func TestAuthInterceptor(t *testing.T) {
	validToken := "test-token-123"
	interceptor := AuthInterceptor(validToken)

	tests := []struct {
		name           string
		ctx            context.Context
		handlerCalled  bool
		expectedCaller string
		expectedCode   codes.Code
		expectedErrMsg string
	}{
		{
			name: "Valid Token",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("authorization", validToken),
			),
			handlerCalled:  true,
			expectedCaller: "api-token",
			expectedCode:   codes.OK,
		},
		{
			name: "Valid Token With Named Caller",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("authorization", validToken, CallerHeader, "alice"),
			),
			handlerCalled:  true,
			expectedCaller: "alice",
			expectedCode:   codes.OK,
		},
		{
			name: "Invalid Token",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("authorization", "wrong-token"),
			),
			handlerCalled:  false,
			expectedCode:   codes.Unauthenticated,
			expectedErrMsg: "invalid token",
		},
		{
			name:           "Missing Token",
			ctx:            context.Background(),
			handlerCalled:  false,
			expectedCode:   codes.Unauthenticated,
			expectedErrMsg: "missing metadata",
		},
		{
			name: "Missing Authorization Header",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("other-header", "value"),
			),
			handlerCalled:  false,
			expectedCode:   codes.Unauthenticated,
			expectedErrMsg: "missing authorization header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			var caller identity.Caller
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				handlerCalled = true
				caller = identity.FromContext(ctx)
				return "success", nil
			}

			info := &grpc.UnaryServerInfo{
				FullMethod: "/test.Service/Method",
			}

			resp, err := interceptor(tt.ctx, "test-request", info, handler)

			assert.Equal(t, tt.handlerCalled, handlerCalled, "handler called status mismatch")

			if tt.expectedCode == codes.OK {
				assert.NoError(t, err)
				assert.Equal(t, "success", resp)
				assert.Equal(t, tt.expectedCaller, caller.Subject)
			} else {
				assert.Error(t, err)
				st, ok := status.FromError(err)
				assert.True(t, ok, "error should be a gRPC status")
				assert.Equal(t, tt.expectedCode, st.Code())
				assert.Contains(t, st.Message(), tt.expectedErrMsg)
			}
		})
	}
}

func TestLoggingInterceptor(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel logrus.Level
		wantCode  string
	}{
		{"Success logs info", nil, logrus.InfoLevel, "OK"},
		{"Client error logs warning", status.Error(codes.NotFound, "wallet missing"), logrus.WarnLevel, "NotFound"},
		{"Server error logs error", status.Error(codes.Unavailable, "db down"), logrus.ErrorLevel, "Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, hook := test.NewNullLogger()
			interceptor := LoggingInterceptor(logger)
			info := &grpc.UnaryServerInfo{FullMethod: "/walletflow.v1.WalletFlowService/GetWallet"}

			_, err := interceptor(context.Background(), "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
				return "resp", tt.err
			})

			assert.Equal(t, tt.err, err)
			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tt.wantLevel, entry.Level)
			assert.Equal(t, tt.wantCode, entry.Data["code"])
			assert.Equal(t, info.FullMethod, entry.Data["method"])
		})
	}
}
