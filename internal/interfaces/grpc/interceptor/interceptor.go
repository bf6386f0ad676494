package interceptor

import (
	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_logrus "github.com/grpc-ecosystem/go-grpc-middleware/logging/logrus"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpc_ctxtags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

// UnaryInterceptor returns the chain of unary server interceptors: request
// tagging, logging, panic recovery and translation of application errors
// into status errors.
func UnaryInterceptor() grpc.ServerOption {
	entry := log.NewEntry(log.StandardLogger())
	return grpc.UnaryInterceptor(
		grpc_middleware.ChainUnaryServer(
			grpc_ctxtags.UnaryServerInterceptor(),
			grpc_logrus.UnaryServerInterceptor(entry, logrusOpts()...),
			grpc_recovery.UnaryServerInterceptor(recoveryOpts()...),
			errorUnaryInterceptor,
		),
	)
}

// StreamInterceptor returns the chain of stream server interceptors.
func StreamInterceptor() grpc.ServerOption {
	entry := log.NewEntry(log.StandardLogger())
	return grpc.StreamInterceptor(
		grpc_middleware.ChainStreamServer(
			grpc_ctxtags.StreamServerInterceptor(),
			grpc_logrus.StreamServerInterceptor(entry, logrusOpts()...),
			grpc_recovery.StreamServerInterceptor(recoveryOpts()...),
			errorStreamInterceptor,
		),
	)
}

func logrusOpts() []grpc_logrus.Option {
	return []grpc_logrus.Option{
		grpc_logrus.WithLevels(grpc_logrus.DefaultCodeToLevel),
	}
}
