package main

import (
	"context"

	"github.com/spf13/cobra"
	pb "github.com/vulpemventures/coinpurse/api-spec/coinpurse/v1"
)

var (
	historyListCmd = &cobra.Command{
		Use:   "list",
		Short: "list spend records",
		Long: "this command returns the spend records of the given country, " +
			"newest first",
		RunE: historyList,
	}
	historyResetCmd = &cobra.Command{
		Use:   "reset",
		Short: "clear spend records",
		Long:  "this command deletes all spend records of the given country",
		RunE:  historyReset,
	}
	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "interact with the spending history",
		Long: "this command lets you list or clear the payments made with the " +
			"wallet of a country",
	}
)

func init() {
	historyCmd.PersistentFlags().StringVar(
		&country, "country", "", "country code of the wallet",
	)
	historyCmd.MarkPersistentFlagRequired("country")
	historyCmd.AddCommand(historyListCmd, historyResetCmd)
}

func historyList(_ *cobra.Command, _ []string) error {
	client, cleanup, err := getClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.Call(
		context.Background(), pb.HistoryServiceName, "GetHistory",
		map[string]interface{}{"country": country},
	)
	if err != nil {
		return err
	}
	return printResponse(reply)
}

func historyReset(_ *cobra.Command, _ []string) error {
	client, cleanup, err := getClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.Call(
		context.Background(), pb.HistoryServiceName, "ResetHistory",
		map[string]interface{}{"country": country},
	)
	if err != nil {
		return err
	}
	return printResponse(reply)
}
