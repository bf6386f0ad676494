package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	pb "github.com/vulpemventures/coinpurse/api-spec/coinpurse/v1"
)

var (
	amount   int64
	strategy string
	spend    bool
	combo    string

	calcSpendCmd = &cobra.Command{
		Use:   "spend",
		Short: "spend a combination of coins",
		Long: "this command removes the given coins from the wallet of the " +
			"given country and records the payment in its history",
		RunE: calcSpend,
	}
	calcCmd = &cobra.Command{
		Use:   "calc",
		Short: "find the coins to pay an amount",
		Long: "this command returns a combination of the coins held in the " +
			"wallet of the given country summing up exactly to the given " +
			"amount, optionally spending it",
		RunE: calc,
	}
)

func init() {
	calcCmd.PersistentFlags().StringVar(
		&country, "country", "", "country code of the wallet",
	)
	calcCmd.MarkPersistentFlagRequired("country")
	calcCmd.Flags().Int64Var(&amount, "amount", 0, "amount to pay in minor units")
	calcCmd.Flags().StringVar(
		&strategy, "strategy", "", "coin selection strategy, default is the daemon one",
	)
	calcCmd.Flags().BoolVar(
		&spend, "spend", false, "spend the found combination, if any",
	)
	calcCmd.MarkFlagRequired("amount")

	calcSpendCmd.Flags().StringVar(
		&combo, "coins", "", "comma separated list of denomination:quantity",
	)
	calcSpendCmd.MarkFlagRequired("coins")

	calcCmd.AddCommand(calcSpendCmd)
}

func calc(_ *cobra.Command, _ []string) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be a positive number")
	}

	client, cleanup, err := getClient()
	if err != nil {
		return err
	}
	defer cleanup()

	req := map[string]interface{}{
		"country": country,
		"amount":  amount,
		"spend":   spend,
	}
	if strategy != "" {
		req["strategy"] = strategy
	}

	reply, err := client.Call(
		context.Background(), pb.CalculatorServiceName, "Calculate", req,
	)
	if err != nil {
		return err
	}
	return printResponse(reply)
}

func calcSpend(_ *cobra.Command, _ []string) error {
	coins, err := parseCoins(combo)
	if err != nil {
		return err
	}

	client, cleanup, err := getClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.Call(
		context.Background(), pb.CalculatorServiceName, "Spend",
		map[string]interface{}{
			"country": country,
			"combo":   coinsToRequest(coins),
		},
	)
	if err != nil {
		return err
	}
	return printResponse(reply)
}
