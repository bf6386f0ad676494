package grpc_handler

import (
	"context"

	pb "github.com/vulpemventures/coinpurse/api-spec/coinpurse/v1"
	"github.com/vulpemventures/coinpurse/internal/core/application"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type history struct {
	appSvc *application.HistoryService
}

func NewHistoryHandler(appSvc *application.HistoryService) pb.HistoryServiceServer {
	return &history{appSvc}
}

func (h *history) GetHistory(
	ctx context.Context, req *structpb.Struct,
) (*structpb.Struct, error) {
	country, err := parseCountry(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	records, err := h.appSvc.GetHistory(ctx, country)
	if err != nil {
		return nil, err
	}
	return toStruct(map[string]interface{}{"records": recordsToList(records)})
}

func (h *history) AddRecord(
	ctx context.Context, req *structpb.Struct,
) (*structpb.Struct, error) {
	country, err := parseCountry(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	combo, err := parseCombo(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	remaining, err := parseInt64(req, "remaining")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	record, err := h.appSvc.AddRecord(ctx, country, combo, remaining)
	if err != nil {
		return nil, err
	}
	return toStruct(map[string]interface{}{"record": recordToMap(record)})
}

func (h *history) ResetHistory(
	ctx context.Context, req *structpb.Struct,
) (*structpb.Struct, error) {
	country, err := parseCountry(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	count, err := h.appSvc.ResetHistory(ctx, country)
	if err != nil {
		return nil, err
	}
	return toStruct(map[string]interface{}{"deleted_records": count})
}
