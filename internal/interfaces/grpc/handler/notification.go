package grpc_handler

import (
	"fmt"

	pb "github.com/vulpemventures/coinpurse/api-spec/coinpurse/v1"
	"github.com/vulpemventures/coinpurse/internal/core/application"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

var ErrStreamConnectionClosed = fmt.Errorf("connection closed on by server")

type notification struct {
	appSvc  *application.NotificationService
	chClose chan struct{}
}

func NewNotificationHandler(
	appSvc *application.NotificationService, chClose chan struct{},
) pb.NotificationServiceServer {
	return &notification{appSvc, chClose}
}

// WalletNotifications streams the events of all wallets, or only of the one
// of the requested country if any.
func (n notification) WalletNotifications(
	req *structpb.Struct, stream grpc.ServerStream,
) error {
	chWalletEvents, err := n.appSvc.GetWalletChannel(stream.Context())
	if err != nil {
		return err
	}
	country, _ := parseCountry(req)

	for {
		select {
		case e := <-chWalletEvents:
			if country != "" && e.Country != country {
				continue
			}
			msg, err := toStruct(walletEventToMap(e))
			if err != nil {
				return err
			}
			if err := stream.SendMsg(msg); err != nil {
				return err
			}
		case <-stream.Context().Done():
			return nil
		case <-n.chClose:
			return ErrStreamConnectionClosed
		}
	}
}

// HistoryNotifications streams the events of all spend histories, or only
// of the one of the requested country if any.
func (n notification) HistoryNotifications(
	req *structpb.Struct, stream grpc.ServerStream,
) error {
	chHistoryEvents, err := n.appSvc.GetHistoryChannel(stream.Context())
	if err != nil {
		return err
	}
	country, _ := parseCountry(req)

	for {
		select {
		case e := <-chHistoryEvents:
			if country != "" && e.Country != country {
				continue
			}
			msg, err := toStruct(historyEventToMap(e))
			if err != nil {
				return err
			}
			if err := stream.SendMsg(msg); err != nil {
				return err
			}
		case <-stream.Context().Done():
			return nil
		case <-n.chClose:
			return ErrStreamConnectionClosed
		}
	}
}
