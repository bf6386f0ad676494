// Package coinpursev1 declares the coinpurse.v1 gRPC services. Every request
// and response is a google.protobuf.Struct, so the service descriptors are
// declared here instead of being generated from a proto file.
package coinpursev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	WalletServiceName       = "coinpurse.v1.WalletService"
	CalculatorServiceName   = "coinpurse.v1.CalculatorService"
	HistoryServiceName      = "coinpurse.v1.HistoryService"
	NotificationServiceName = "coinpurse.v1.NotificationService"
)

type WalletServiceServer interface {
	GetInfo(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetWallet(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddCoins(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResetWallet(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCurrencies(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type CalculatorServiceServer interface {
	Calculate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Spend(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type HistoryServiceServer interface {
	GetHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddRecord(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResetHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// NotificationServiceServer streams wallet and history events. The stream
// sends *structpb.Struct messages.
type NotificationServiceServer interface {
	WalletNotifications(*structpb.Struct, grpc.ServerStream) error
	HistoryNotifications(*structpb.Struct, grpc.ServerStream) error
}

type unaryFn func(
	srv interface{}, ctx context.Context, req *structpb.Struct,
) (*structpb.Struct, error)

func unaryMethod(service, method string, fn unaryFn) grpc.MethodDesc {
	fullMethod := FullMethod(service, method)
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(
			srv interface{}, ctx context.Context, dec func(interface{}) error,
			interceptor grpc.UnaryServerInterceptor,
		) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return fn(srv, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return fn(srv, ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

type streamFn func(
	srv interface{}, req *structpb.Struct, stream grpc.ServerStream,
) error

func serverStream(name string, fn streamFn) grpc.StreamDesc {
	return grpc.StreamDesc{
		StreamName: name,
		Handler: func(srv interface{}, stream grpc.ServerStream) error {
			in := new(structpb.Struct)
			if err := stream.RecvMsg(in); err != nil {
				return err
			}
			return fn(srv, in, stream)
		},
		ServerStreams: true,
	}
}

// FullMethod returns the name of a method as used on the wire.
func FullMethod(service, method string) string {
	return "/" + service + "/" + method
}

var WalletServiceDesc = grpc.ServiceDesc{
	ServiceName: WalletServiceName,
	HandlerType: (*WalletServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(WalletServiceName, "GetInfo", func(
			srv interface{}, ctx context.Context, req *structpb.Struct,
		) (*structpb.Struct, error) {
			return srv.(WalletServiceServer).GetInfo(ctx, req)
		}),
		unaryMethod(WalletServiceName, "GetWallet", func(
			srv interface{}, ctx context.Context, req *structpb.Struct,
		) (*structpb.Struct, error) {
			return srv.(WalletServiceServer).GetWallet(ctx, req)
		}),
		unaryMethod(WalletServiceName, "AddCoins", func(
			srv interface{}, ctx context.Context, req *structpb.Struct,
		) (*structpb.Struct, error) {
			return srv.(WalletServiceServer).AddCoins(ctx, req)
		}),
		unaryMethod(WalletServiceName, "ResetWallet", func(
			srv interface{}, ctx context.Context, req *structpb.Struct,
		) (*structpb.Struct, error) {
			return srv.(WalletServiceServer).ResetWallet(ctx, req)
		}),
		unaryMethod(WalletServiceName, "ListCurrencies", func(
			srv interface{}, ctx context.Context, req *structpb.Struct,
		) (*structpb.Struct, error) {
			return srv.(WalletServiceServer).ListCurrencies(ctx, req)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "coinpurse/v1/wallet.proto",
}

var CalculatorServiceDesc = grpc.ServiceDesc{
	ServiceName: CalculatorServiceName,
	HandlerType: (*CalculatorServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(CalculatorServiceName, "Calculate", func(
			srv interface{}, ctx context.Context, req *structpb.Struct,
		) (*structpb.Struct, error) {
			return srv.(CalculatorServiceServer).Calculate(ctx, req)
		}),
		unaryMethod(CalculatorServiceName, "Spend", func(
			srv interface{}, ctx context.Context, req *structpb.Struct,
		) (*structpb.Struct, error) {
			return srv.(CalculatorServiceServer).Spend(ctx, req)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "coinpurse/v1/calculator.proto",
}

var HistoryServiceDesc = grpc.ServiceDesc{
	ServiceName: HistoryServiceName,
	HandlerType: (*HistoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(HistoryServiceName, "GetHistory", func(
			srv interface{}, ctx context.Context, req *structpb.Struct,
		) (*structpb.Struct, error) {
			return srv.(HistoryServiceServer).GetHistory(ctx, req)
		}),
		unaryMethod(HistoryServiceName, "AddRecord", func(
			srv interface{}, ctx context.Context, req *structpb.Struct,
		) (*structpb.Struct, error) {
			return srv.(HistoryServiceServer).AddRecord(ctx, req)
		}),
		unaryMethod(HistoryServiceName, "ResetHistory", func(
			srv interface{}, ctx context.Context, req *structpb.Struct,
		) (*structpb.Struct, error) {
			return srv.(HistoryServiceServer).ResetHistory(ctx, req)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "coinpurse/v1/history.proto",
}

var NotificationServiceDesc = grpc.ServiceDesc{
	ServiceName: NotificationServiceName,
	HandlerType: (*NotificationServiceServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		serverStream("WalletNotifications", func(
			srv interface{}, req *structpb.Struct, stream grpc.ServerStream,
		) error {
			return srv.(NotificationServiceServer).WalletNotifications(req, stream)
		}),
		serverStream("HistoryNotifications", func(
			srv interface{}, req *structpb.Struct, stream grpc.ServerStream,
		) error {
			return srv.(NotificationServiceServer).HistoryNotifications(req, stream)
		}),
	},
	Metadata: "coinpurse/v1/notification.proto",
}

func RegisterWalletServiceServer(s grpc.ServiceRegistrar, srv WalletServiceServer) {
	s.RegisterService(&WalletServiceDesc, srv)
}

func RegisterCalculatorServiceServer(
	s grpc.ServiceRegistrar, srv CalculatorServiceServer,
) {
	s.RegisterService(&CalculatorServiceDesc, srv)
}

func RegisterHistoryServiceServer(s grpc.ServiceRegistrar, srv HistoryServiceServer) {
	s.RegisterService(&HistoryServiceDesc, srv)
}

func RegisterNotificationServiceServer(
	s grpc.ServiceRegistrar, srv NotificationServiceServer,
) {
	s.RegisterService(&NotificationServiceDesc, srv)
}
