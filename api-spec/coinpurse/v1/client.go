package coinpursev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client invokes the unary methods and opens the server streams of the
// coinpurse.v1 services over a client connection.
type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn}
}

// Call invokes a unary method of the given service. A nil request is sent
// as an empty struct.
func (c *Client) Call(
	ctx context.Context, service, method string, req map[string]interface{},
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(
		ctx, FullMethod(service, method), in, out, opts...,
	); err != nil {
		return nil, err
	}
	return out, nil
}

// Subscribe opens one of the notification streams.
func (c *Client) Subscribe(
	ctx context.Context, method string, req map[string]interface{},
	opts ...grpc.CallOption,
) (*NotificationStream, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, err
	}
	desc := &grpc.StreamDesc{StreamName: method, ServerStreams: true}
	stream, err := c.conn.NewStream(
		ctx, desc, FullMethod(NotificationServiceName, method), opts...,
	)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &NotificationStream{stream}, nil
}

type NotificationStream struct {
	grpc.ClientStream
}

func (s *NotificationStream) Recv() (*structpb.Struct, error) {
	m := new(structpb.Struct)
	if err := s.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
