package notifier

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/oshokin/patient-monitor/internal/logger"
)

// LoggingInterceptor hands the logger of base to every handler and logs
// each call with its method, duration and status code.
func LoggingInterceptor(base context.Context) grpc.UnaryServerInterceptor {
	log := logger.FromContext(base)

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = logger.ToContext(ctx, log)
		ctx = logger.WithKV(ctx, "method", info.FullMethod)

		started := time.Now()
		resp, err := handler(ctx, req)

		kvs := []any{"code", status.Code(err).String(), "duration", time.Since(started)}
		if err != nil {
			logger.WarnKV(ctx, "Call failed", append(kvs, "error", err)...)
		} else {
			logger.DebugKV(ctx, "Call served", kvs...)
		}

		return resp, err
	}
}
