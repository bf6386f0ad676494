package coinselector_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	coinselector "github.com/vulpemventures/coinpurse/internal/infrastructure/coin-selector"
	minfirst "github.com/vulpemventures/coinpurse/internal/infrastructure/coin-selector/min-first"
)

var inventory = []domain.Coin{
	{Denomination: 100, Quantity: 2},
	{Denomination: 50, Quantity: 3},
	{Denomination: 10, Quantity: 5},
}

func TestNew(t *testing.T) {
	for _, strategy := range []domain.CoinSelectionStrategy{
		domain.MaxFirst, domain.MinFirst,
	} {
		selector, err := coinselector.New(strategy, minfirst.WithLimit(1))
		require.NoError(t, err)
		require.NotNil(t, selector)
	}

	selector, err := coinselector.New(domain.CoinSelectionStrategy(7))
	require.ErrorIs(t, err, domain.ErrUnknownStrategy)
	require.Nil(t, selector)
}

func TestSolve(t *testing.T) {
	t.Run("max first", func(t *testing.T) {
		combo := coinselector.Solve(160, inventory, domain.MaxFirst)
		require.Equal(t, []domain.Coin{
			{Denomination: 100, Quantity: 1},
			{Denomination: 50, Quantity: 1},
			{Denomination: 10, Quantity: 1},
		}, combo)
	})

	t.Run("min first", func(t *testing.T) {
		combo := coinselector.Solve(160, inventory, domain.MinFirst)
		require.Contains(t, [][]domain.Coin{
			{
				{Denomination: 10, Quantity: 1},
				{Denomination: 50, Quantity: 1},
				{Denomination: 100, Quantity: 1},
			},
			{
				{Denomination: 10, Quantity: 1},
				{Denomination: 50, Quantity: 3},
			},
		}, combo)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		combo := coinselector.Solve(160, inventory, domain.CoinSelectionStrategy(-1))
		require.Empty(t, combo)
	})
}

func TestSolveProperties(t *testing.T) {
	strategies := []domain.CoinSelectionStrategy{domain.MaxFirst, domain.MinFirst}
	balance := domain.Coins(inventory).Total()

	for _, strategy := range strategies {
		for amount := int64(-20); amount <= balance+20; amount += 5 {
			combo := coinselector.Solve(amount, inventory, strategy)
			require.NotNil(t, combo)

			if amount <= 0 || amount > balance {
				require.Empty(t, combo, "%s %d", strategy, amount)
				continue
			}
			if len(combo) <= 0 {
				continue
			}

			require.Equal(t, amount, domain.Coins(combo).Total())
			for _, coin := range combo {
				require.Positive(t, coin.Quantity)
				require.LessOrEqual(
					t, coin.Quantity,
					domain.Coins(inventory).QuantityOf(coin.Denomination),
				)
			}
		}
	}
}
