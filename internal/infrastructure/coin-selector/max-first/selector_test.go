package maxfirst_selector_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	maxfirst "github.com/vulpemventures/coinpurse/internal/infrastructure/coin-selector/max-first"
)

var inventory = []domain.Coin{
	{Denomination: 100, Quantity: 2},
	{Denomination: 50, Quantity: 3},
	{Denomination: 10, Quantity: 5},
}

func TestSelectCoins(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		coins    []domain.Coin
		expected []domain.Coin
	}{
		{
			name:   "one of each",
			amount: 160,
			coins:  inventory,
			expected: []domain.Coin{
				{Denomination: 100, Quantity: 1},
				{Denomination: 50, Quantity: 1},
				{Denomination: 10, Quantity: 1},
			},
		},
		{
			name:   "capped by quantity",
			amount: 300,
			coins:  inventory,
			expected: []domain.Coin{
				{Denomination: 100, Quantity: 2},
				{Denomination: 50, Quantity: 2},
			},
		},
		{
			name:   "whole inventory",
			amount: 400,
			coins:  inventory,
			expected: []domain.Coin{
				{Denomination: 100, Quantity: 2},
				{Denomination: 50, Quantity: 3},
				{Denomination: 10, Quantity: 5},
			},
		},
		{
			name:   "unsorted input",
			amount: 60,
			coins: []domain.Coin{
				{Denomination: 10, Quantity: 5},
				{Denomination: 50, Quantity: 3, Image: "50.png"},
			},
			expected: []domain.Coin{
				{Denomination: 50, Quantity: 1, Image: "50.png"},
				{Denomination: 10, Quantity: 1},
			},
		},
		{
			name:   "duplicated denominations",
			amount: 100,
			coins: []domain.Coin{
				{Denomination: 50, Quantity: 1},
				{Denomination: 50, Quantity: 1},
			},
			expected: []domain.Coin{
				{Denomination: 50, Quantity: 1},
				{Denomination: 50, Quantity: 1},
			},
		},
		{
			name:     "exceeds inventory value",
			amount:   9999,
			coins:    inventory,
			expected: []domain.Coin{},
		},
		{
			name:   "greedy miss",
			amount: 30,
			coins: []domain.Coin{
				{Denomination: 25, Quantity: 1},
				{Denomination: 10, Quantity: 3},
			},
			expected: []domain.Coin{},
		},
		{
			name:     "not reachable",
			amount:   165,
			coins:    inventory,
			expected: []domain.Coin{},
		},
		{
			name:     "zero amount",
			amount:   0,
			coins:    inventory,
			expected: []domain.Coin{},
		},
		{
			name:     "negative amount",
			amount:   -50,
			coins:    inventory,
			expected: []domain.Coin{},
		},
		{
			name:   "zero quantity and invalid denominations",
			amount: 50,
			coins: []domain.Coin{
				{Denomination: 100, Quantity: 0},
				{Denomination: 0, Quantity: 4},
				{Denomination: 50, Quantity: 1},
			},
			expected: []domain.Coin{
				{Denomination: 50, Quantity: 1},
			},
		},
		{
			name:     "empty inventory",
			amount:   10,
			coins:    nil,
			expected: []domain.Coin{},
		},
	}

	selector := maxfirst.NewMaxFirstCoinSelector()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			coins := domain.Coins(tt.coins).Clone()

			combo := selector.SelectCoins(tt.amount, tt.coins)
			require.Equal(t, tt.expected, combo)
			if len(combo) > 0 {
				require.Equal(t, tt.amount, domain.Coins(combo).Total())
				require.GreaterOrEqual(
					t, combo[0].Denomination, combo[len(combo)-1].Denomination,
				)
			}
			// Input must be left untouched.
			require.Equal(t, coins, domain.Coins(tt.coins).Clone())
		})
	}
}

func TestSelectCoinsIsDeterministic(t *testing.T) {
	selector := maxfirst.NewMaxFirstCoinSelector()
	for amount := int64(0); amount <= 400; amount += 10 {
		first := selector.SelectCoins(amount, inventory)
		second := selector.SelectCoins(amount, inventory)
		require.Equal(t, first, second)
	}
}
