package main

import (
	"context"

	"github.com/spf13/cobra"
	pb "github.com/vulpemventures/coinpurse/api-spec/coinpurse/v1"
)

var (
	country      string
	denomination int64
	delta        int64
	withHistory  bool

	walletInfoCmd = &cobra.Command{
		Use:   "info",
		Short: "get info about the daemon",
		Long:  "this command returns the version info of the coinpurse daemon",
		RunE:  walletInfo,
	}
	walletBalanceCmd = &cobra.Command{
		Use:   "balance",
		Short: "get wallet coins and balance",
		Long: "this command returns the coins held in the wallet of the given " +
			"country, along with their total value",
		RunE: walletBalance,
	}
	walletAddCmd = &cobra.Command{
		Use:   "add",
		Short: "add or remove coins",
		Long: "this command lets you change the quantity of a single coin " +
			"denomination in the wallet of the given country, use a negative " +
			"delta to remove coins",
		RunE: walletAdd,
	}
	walletResetCmd = &cobra.Command{
		Use:   "reset",
		Short: "empty the wallet",
		Long: "this command sets the quantity of every coin of the wallet of " +
			"the given country to zero, optionally clearing its history too",
		RunE: walletReset,
	}
	walletCmd = &cobra.Command{
		Use:   "wallet",
		Short: "interact with coinpurse wallet interface",
		Long: "this command lets you inspect and edit the coins held in the " +
			"wallet of a country",
	}
	currenciesCmd = &cobra.Command{
		Use:   "currencies",
		Short: "list supported currencies",
		Long: "this command returns the catalog of supported currencies with " +
			"their coin denominations",
		RunE: listCurrencies,
	}
)

func init() {
	for _, cmd := range []*cobra.Command{
		walletBalanceCmd, walletAddCmd, walletResetCmd,
	} {
		cmd.Flags().StringVar(&country, "country", "", "country code of the wallet")
		cmd.MarkFlagRequired("country")
	}
	walletAddCmd.Flags().Int64Var(
		&denomination, "denomination", 0, "value of the coin in minor units",
	)
	walletAddCmd.Flags().Int64Var(
		&delta, "delta", 1, "number of coins to add (or remove if negative)",
	)
	walletAddCmd.MarkFlagRequired("denomination")
	walletResetCmd.Flags().BoolVar(
		&withHistory, "with-history", false, "clear the spending history too",
	)

	walletCmd.AddCommand(
		walletInfoCmd, walletBalanceCmd, walletAddCmd, walletResetCmd,
	)
}

func walletInfo(_ *cobra.Command, _ []string) error {
	client, cleanup, err := getClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.Call(
		context.Background(), pb.WalletServiceName, "GetInfo", nil,
	)
	if err != nil {
		return err
	}
	return printResponse(reply)
}

func walletBalance(_ *cobra.Command, _ []string) error {
	client, cleanup, err := getClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.Call(
		context.Background(), pb.WalletServiceName, "GetWallet",
		map[string]interface{}{"country": country},
	)
	if err != nil {
		return err
	}
	return printResponse(reply)
}

func walletAdd(_ *cobra.Command, _ []string) error {
	client, cleanup, err := getClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.Call(
		context.Background(), pb.WalletServiceName, "AddCoins",
		map[string]interface{}{
			"country":      country,
			"denomination": denomination,
			"delta":        delta,
		},
	)
	if err != nil {
		return err
	}
	return printResponse(reply)
}

func walletReset(_ *cobra.Command, _ []string) error {
	client, cleanup, err := getClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.Call(
		context.Background(), pb.WalletServiceName, "ResetWallet",
		map[string]interface{}{
			"country":      country,
			"with_history": withHistory,
		},
	)
	if err != nil {
		return err
	}
	return printResponse(reply)
}

func listCurrencies(_ *cobra.Command, _ []string) error {
	client, cleanup, err := getClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.Call(
		context.Background(), pb.WalletServiceName, "ListCurrencies", nil,
	)
	if err != nil {
		return err
	}
	return printResponse(reply)
}
