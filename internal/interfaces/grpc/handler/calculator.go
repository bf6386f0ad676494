package grpc_handler

import (
	"context"

	pb "github.com/vulpemventures/coinpurse/api-spec/coinpurse/v1"
	"github.com/vulpemventures/coinpurse/internal/core/application"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type calculator struct {
	appSvc *application.CalculatorService
}

func NewCalculatorHandler(
	appSvc *application.CalculatorService,
) pb.CalculatorServiceServer {
	return &calculator{appSvc}
}

// Calculate suggests a combo for the requested amount. If the request
// carries spend=true and a combo is found, it's spent right away.
func (c *calculator) Calculate(
	ctx context.Context, req *structpb.Struct,
) (*structpb.Struct, error) {
	country, err := parseCountry(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	amount, err := parseAmount(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	strategy, err := parseStrategy(req, c.appSvc.DefaultStrategy())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if !req.GetFields()["spend"].GetBoolValue() {
		result, err := c.appSvc.Calculate(ctx, country, amount, strategy)
		if err != nil {
			return nil, err
		}
		return toStruct(calculationToMap(result))
	}

	result, record, err := c.appSvc.CalculateAndSpend(
		ctx, country, amount, strategy,
	)
	if err != nil {
		return nil, err
	}
	res := calculationToMap(result)
	if record != nil {
		res["record"] = recordToMap(record)
	}
	return toStruct(res)
}

func (c *calculator) Spend(
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

	record, err := c.appSvc.Spend(ctx, country, combo)
	if err != nil {
		return nil, err
	}
	return toStruct(map[string]interface{}{"record": recordToMap(record)})
}
