package grpctest

import (
	"context"
	"io"
	"time"

	pb "github.com/vulpemventures/coinpurse/api-spec/coinpurse/v1"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type walletEvent struct {
	EventType  string
	Country    string
	Err        error
	ConnClosed bool
}

func (g *GrpcTestSuite) TestCoinpurseSanity() {
	info, err := g.client.Call(ctx, pb.WalletServiceName, "GetInfo", nil)
	g.Require().NoError(err)
	g.Equal("test", info.GetFields()["version"].GetStringValue())

	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stream, err := g.client.Subscribe(
		streamCtx, "WalletNotifications", map[string]interface{}{"country": "US"},
	)
	g.Require().NoError(err)

	chEvents := make(chan walletEvent, 10)
	go func() {
		for {
			msg, err := stream.Recv()
			if err == io.EOF {
				chEvents <- walletEvent{ConnClosed: true}
				return
			}
			if err != nil {
				chEvents <- walletEvent{Err: err}
				return
			}
			chEvents <- walletEvent{
				EventType: msg.GetFields()["event_type"].GetStringValue(),
				Country:   msg.GetFields()["country"].GetStringValue(),
			}
		}
	}()
	// Let the server register the subscription.
	time.Sleep(200 * time.Millisecond)

	for _, c := range []struct{ denomination, delta int64 }{
		{100, 2}, {50, 3}, {10, 5},
	} {
		_, err := g.client.Call(ctx, pb.WalletServiceName, "AddCoins",
			map[string]interface{}{
				"country":      "us",
				"denomination": c.denomination,
				"delta":        c.delta,
			},
		)
		g.Require().NoError(err)
	}

	wallet, err := g.client.Call(ctx, pb.WalletServiceName, "GetWallet",
		map[string]interface{}{"country": "US"},
	)
	g.Require().NoError(err)
	g.Equal(float64(400), wallet.GetFields()["balance"].GetNumberValue())
	g.Equal("$4.00", wallet.GetFields()["formatted"].GetStringValue())

	calc, err := g.client.Call(ctx, pb.CalculatorServiceName, "Calculate",
		map[string]interface{}{
			"country": "US",
			"amount":  160,
			"spend":   true,
		},
	)
	g.Require().NoError(err)
	g.True(calc.GetFields()["found"].GetBoolValue())
	g.Equal(float64(160), calc.GetFields()["total"].GetNumberValue())
	g.Len(calc.GetFields()["combo"].GetListValue().GetValues(), 3)
	record := calc.GetFields()["record"].GetStructValue()
	g.Require().NotNil(record)
	g.Equal(float64(160), record.GetFields()["spent"].GetNumberValue())
	g.Equal(float64(240), record.GetFields()["remaining"].GetNumberValue())

	history, err := g.client.Call(ctx, pb.HistoryServiceName, "GetHistory",
		map[string]interface{}{"country": "US"},
	)
	g.Require().NoError(err)
	g.Len(history.GetFields()["records"].GetListValue().GetValues(), 1)

	// Created, 3 coins added and coins used, in any order.
	received := make([]string, 0)
	timeout := time.After(3 * time.Second)
	for len(received) < 5 {
		select {
		case e := <-chEvents:
			g.Require().NoError(e.Err)
			g.Require().False(e.ConnClosed)
			g.Equal("US", e.Country)
			received = append(received, e.EventType)
		case <-timeout:
			g.FailNowf("timeout", "received only %v", received)
		}
	}
	g.ElementsMatch([]string{
		"WalletCreated", "WalletCoinsAdded", "WalletCoinsAdded",
		"WalletCoinsAdded", "WalletCoinsUsed",
	}, received)

	reset, err := g.client.Call(ctx, pb.WalletServiceName, "ResetWallet",
		map[string]interface{}{"country": "US", "with_history": true},
	)
	g.Require().NoError(err)
	g.Equal(float64(1), reset.GetFields()["deleted_records"].GetNumberValue())
}

func (g *GrpcTestSuite) TestErrors() {
	tests := []struct {
		name    string
		service string
		method  string
		req     map[string]interface{}
		code    codes.Code
	}{
		{
			name:    "unsupported currency",
			service: pb.WalletServiceName,
			method:  "GetWallet",
			req:     map[string]interface{}{"country": "XX"},
			code:    codes.InvalidArgument,
		},
		{
			name:    "missing country",
			service: pb.WalletServiceName,
			method:  "AddCoins",
			req:     map[string]interface{}{"denomination": 100, "delta": 1},
			code:    codes.InvalidArgument,
		},
		{
			name:    "invalid denomination",
			service: pb.WalletServiceName,
			method:  "AddCoins",
			req: map[string]interface{}{
				"country": "JP", "denomination": 3, "delta": 1,
			},
			code: codes.InvalidArgument,
		},
		{
			name:    "non positive amount",
			service: pb.CalculatorServiceName,
			method:  "Calculate",
			req:     map[string]interface{}{"country": "JP", "amount": 0},
			code:    codes.InvalidArgument,
		},
		{
			name:    "unknown strategy",
			service: pb.CalculatorServiceName,
			method:  "Calculate",
			req: map[string]interface{}{
				"country": "JP", "amount": 10, "strategy": "random",
			},
			code: codes.InvalidArgument,
		},
		{
			name:    "empty combo",
			service: pb.CalculatorServiceName,
			method:  "Spend",
			req: map[string]interface{}{
				"country": "JP", "combo": []interface{}{},
			},
			code: codes.InvalidArgument,
		},
		{
			name:    "unknown method",
			service: pb.WalletServiceName,
			method:  "Unknown",
			code:    codes.Unimplemented,
		},
	}

	for _, tt := range tests {
		tt := tt
		g.Run(tt.name, func() {
			_, err := g.client.Call(ctx, tt.service, tt.method, tt.req)
			g.Require().Error(err)
			g.Equal(tt.code, status.Code(err), err.Error())
		})
	}
}

func (g *GrpcTestSuite) TestStrategies() {
	for _, c := range []struct{ denomination, delta int64 }{
		{50, 1}, {10, 3},
	} {
		_, err := g.client.Call(ctx, pb.WalletServiceName, "AddCoins",
			map[string]interface{}{
				"country":      "KR",
				"denomination": c.denomination,
				"delta":        c.delta,
			},
		)
		g.Require().NoError(err)
	}

	tests := []struct {
		strategy string
		amount   int64
		found    bool
		count    int
	}{
		{"max-first", 30, true, 1},
		{"min-first", 30, true, 1},
		{"max-first", 60, true, 2},
		{"min-first", 80, true, 2},
		{"max-first", 35, false, 0},
		{"min-first", 100, false, 0},
	}
	for _, tt := range tests {
		res, err := g.client.Call(ctx, pb.CalculatorServiceName, "Calculate",
			map[string]interface{}{
				"country":  "KR",
				"amount":   tt.amount,
				"strategy": tt.strategy,
			},
		)
		g.Require().NoError(err)
		g.Equal(tt.found, res.GetFields()["found"].GetBoolValue())
		g.Equal(tt.strategy, res.GetFields()["strategy"].GetStringValue())
		g.Len(res.GetFields()["combo"].GetListValue().GetValues(), tt.count)
	}

	_, err := g.client.Call(ctx, pb.WalletServiceName, "ResetWallet",
		map[string]interface{}{"country": "KR", "with_history": true},
	)
	g.Require().NoError(err)
}
