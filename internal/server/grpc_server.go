package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/oggyb/muzz-discovery/internal/config"
	"github.com/oggyb/muzz-discovery/internal/logger"
	"github.com/oggyb/muzz-discovery/internal/metrics"
	_ "github.com/oggyb/muzz-discovery/internal/proto/codec" // registers the JSON codec
)

// RequestIDHeader is read from incoming metadata and echoed back in headers.
const RequestIDHeader = "x-request-id"

// NewGRPCServer builds a gRPC server with the logging/metrics interceptor and
// all provided services registered.
func NewGRPCServer(log *slog.Logger, registrars ...Registrar) *grpc.Server {
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		UnaryInterceptor(log),
		RecoveryInterceptor(),
	))

	// register all services
	for _, r := range registrars {
		r.Register(grpcServer)
	}

	// enable reflection for easier debugging with grpcurl
	reflection.Register(grpcServer)

	return grpcServer
}

// StartGRPCServer boots a gRPC server in the background. The returned channel
// yields Serve's error once the server stops.
func StartGRPCServer(cfg *config.Config, log *slog.Logger, registrars ...Registrar) (*grpc.Server, <-chan error, error) {
	addr := fmt.Sprintf("%s:%s", cfg.GRPC.Host, cfg.GRPC.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	grpcServer := NewGRPCServer(log, registrars...)
	errCh := make(chan error, 1)
	go func() {
		errCh <- grpcServer.Serve(lis)
	}()
	return grpcServer, errCh, nil
}

// UnaryInterceptor tags each call with a request id, puts a request-scoped
// logger into the context and records per-method metrics.
func UnaryInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()

		requestID := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get(RequestIDHeader); len(v) > 0 {
				requestID = v[0]
			}
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID))

		ctx, reqLog := logger.ForRequest(ctx, log, requestID, info.FullMethod)
		resp, err := handler(ctx, req)

		code := status.Code(err)
		elapsed := time.Since(start)
		metrics.RecordRPC(info.FullMethod, code.String(), elapsed.Seconds())

		if err != nil {
			reqLog.Warn("rpc failed", "code", code.String(), "duration", elapsed, "err", err)
		} else {
			reqLog.Info("rpc completed", "code", code.String(), "duration", elapsed)
		}
		return resp, err
	}
}

// RecoveryInterceptor turns a handler panic into codes.Internal so one bad
// request cannot take the process down. It runs inside UnaryInterceptor, so
// the request logger is already in the context.
func RecoveryInterceptor() grpc.UnaryServerInterceptor {
	return grpc_recovery.UnaryServerInterceptor(
		grpc_recovery.WithRecoveryHandlerContext(func(ctx context.Context, p interface{}) error {
			logger.FromContext(ctx).Error("panic recovered", "panic", p)
			return status.Error(codes.Internal, "internal error")
		}),
	)
}
