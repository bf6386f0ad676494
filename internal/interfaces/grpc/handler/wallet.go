package grpc_handler

import (
	"context"

	pb "github.com/vulpemventures/coinpurse/api-spec/coinpurse/v1"
	"github.com/vulpemventures/coinpurse/internal/core/application"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type wallet struct {
	appSvc *application.WalletService
}

func NewWalletHandler(
	appSvc *application.WalletService,
) pb.WalletServiceServer {
	return &wallet{
		appSvc: appSvc,
	}
}

func (w *wallet) GetInfo(
	ctx context.Context, _ *structpb.Struct,
) (*structpb.Struct, error) {
	info := w.appSvc.GetInfo(ctx)
	return toStruct(map[string]interface{}{
		"version": info.Version,
		"commit":  info.Commit,
		"date":    info.Date,
	})
}

func (w *wallet) GetWallet(
	ctx context.Context, req *structpb.Struct,
) (*structpb.Struct, error) {
	country, err := parseCountry(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	info, err := w.appSvc.GetWallet(ctx, country)
	if err != nil {
		return nil, err
	}
	return toStruct(walletToMap(info))
}

func (w *wallet) AddCoins(
	ctx context.Context, req *structpb.Struct,
) (*structpb.Struct, error) {
	country, err := parseCountry(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	denomination, err := parseInt64(req, "denomination")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	delta, err := parseInt64(req, "delta")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	info, err := w.appSvc.AddCoins(ctx, country, denomination, delta)
	if err != nil {
		return nil, err
	}
	return toStruct(walletToMap(info))
}

func (w *wallet) ResetWallet(
	ctx context.Context, req *structpb.Struct,
) (*structpb.Struct, error) {
	country, err := parseCountry(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if !req.GetFields()["with_history"].GetBoolValue() {
		if err := w.appSvc.ResetWallet(ctx, country); err != nil {
			return nil, err
		}
		return toStruct(map[string]interface{}{"deleted_records": 0})
	}

	count, err := w.appSvc.ResetAll(ctx, country)
	if err != nil {
		return nil, err
	}
	return toStruct(map[string]interface{}{"deleted_records": count})
}

func (w *wallet) ListCurrencies(
	ctx context.Context, _ *structpb.Struct,
) (*structpb.Struct, error) {
	currencies := w.appSvc.ListCurrencies(ctx)
	list := make([]interface{}, 0, len(currencies))
	for _, c := range currencies {
		list = append(list, currencyToMap(c))
	}
	return toStruct(map[string]interface{}{"currencies": list})
}
