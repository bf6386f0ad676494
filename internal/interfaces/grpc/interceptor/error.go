package interceptor

import (
	"context"
	"fmt"

	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/coinpurse/internal/core/application"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func errorUnaryInterceptor(
	ctx context.Context, req interface{}, _ *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	res, err := handler(ctx, req)
	if err != nil {
		return nil, toStatusError(err)
	}
	return res, nil
}

func errorStreamInterceptor(
	srv interface{}, stream grpc.ServerStream, _ *grpc.StreamServerInfo,
	handler grpc.StreamHandler,
) error {
	if err := handler(srv, stream); err != nil {
		return toStatusError(err)
	}
	return nil
}

// toStatusError maps application errors to status errors. Errors already
// carrying a status are returned as they are.
func toStatusError(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case application.IsInvalidArgument(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case application.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func recoveryOpts() []grpc_recovery.Option {
	return []grpc_recovery.Option{
		grpc_recovery.WithRecoveryHandler(func(p interface{}) error {
			log.Errorf("grpc: recovered from panic: %v", p)
			return status.Error(codes.Internal, fmt.Sprintf("%v", p))
		}),
	}
}
