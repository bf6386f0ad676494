package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	coinselector "github.com/vulpemventures/coinpurse/internal/infrastructure/coin-selector"
	"google.golang.org/protobuf/types/known/structpb"
)

var (
	solveAmount   string
	solveCoins    string
	solveStrategy string
	solveCountry  string

	solveCmd = &cobra.Command{
		Use:   "solve",
		Short: "find a combination of coins offline",
		Long: "this command returns a combination of the given coins summing " +
			"up exactly to the given amount, without connecting to the daemon. " +
			"If a country is given, the amount is expressed in the major unit " +
			"of its currency (ie. 1.60 for $1.60)",
		RunE: solve,
	}
)

func init() {
	solveCmd.Flags().StringVar(&solveAmount, "amount", "", "amount to pay")
	solveCmd.Flags().StringVar(
		&solveCoins, "coins", "", "comma separated list of denomination:quantity",
	)
	solveCmd.Flags().StringVar(
		&solveStrategy, "strategy", domain.MaxFirst.String(),
		fmt.Sprintf(
			"coin selection strategy, one of %s",
			strings.Join(domain.CoinSelectionStrategies(), " | "),
		),
	)
	solveCmd.Flags().StringVar(
		&solveCountry, "country", "", "country code used to parse and format amounts",
	)
	solveCmd.MarkFlagRequired("amount")
	solveCmd.MarkFlagRequired("coins")
}

func solve(_ *cobra.Command, _ []string) error {
	strategy, err := domain.ParseCoinSelectionStrategy(solveStrategy)
	if err != nil {
		return err
	}
	coins, err := parseCoins(solveCoins)
	if err != nil {
		return err
	}

	var currency *domain.Currency
	if solveCountry != "" {
		currency, err = domain.GetCurrency(strings.ToUpper(solveCountry))
		if err != nil {
			return err
		}
	}
	amount, err := parseAmount(solveAmount, currency)
	if err != nil {
		return err
	}

	result := coinselector.Solve(amount, coins, strategy)
	total := domain.Coins(result).Total()

	res := map[string]interface{}{
		"amount":   amount,
		"strategy": strategy.String(),
		"combo":    coinsToRequest(result),
		"total":    total,
		"found":    len(result) > 0,
	}
	if currency != nil {
		res["formatted"] = currency.FormatAmount(total)
	}

	reply, err := structpb.NewStruct(res)
	if err != nil {
		return err
	}
	return printResponse(reply)
}

// parseAmount returns the given amount in minor units. Without a currency
// the amount must already be an integer number of minor units.
func parseAmount(str string, currency *domain.Currency) (int64, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(str))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", str)
	}

	exp := int32(0)
	if currency != nil {
		exp = int32(currency.Exponent)
	}
	minor := value.Shift(exp)
	if !minor.Equal(minor.Truncate(0)) {
		return 0, fmt.Errorf(
			"invalid amount %q, too many decimal places", str,
		)
	}
	return minor.IntPart(), nil
}
