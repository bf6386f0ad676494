package minfirst_selector

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

func TestFindCombos(t *testing.T) {
	inventory := []domain.Coin{
		{Denomination: 100, Quantity: 2},
		{Denomination: 50, Quantity: 3},
		{Denomination: 10, Quantity: 5},
	}

	tests := []struct {
		name     string
		amount   int64
		coins    []domain.Coin
		limit    int
		expected [][]domain.Coin
	}{
		{
			name:   "ranked by coin count",
			amount: 160,
			coins:  inventory,
			limit:  3,
			expected: [][]domain.Coin{
				{
					{Denomination: 10, Quantity: 1},
					{Denomination: 50, Quantity: 1},
					{Denomination: 100, Quantity: 1},
				},
				{
					{Denomination: 10, Quantity: 1},
					{Denomination: 50, Quantity: 3},
				},
			},
		},
		{
			name:   "limited",
			amount: 160,
			coins:  inventory,
			limit:  1,
			expected: [][]domain.Coin{
				{
					{Denomination: 10, Quantity: 1},
					{Denomination: 50, Quantity: 3},
				},
			},
		},
		{
			name:   "greedy miss",
			amount: 30,
			coins: []domain.Coin{
				{Denomination: 25, Quantity: 1},
				{Denomination: 10, Quantity: 3},
			},
			limit: 3,
			expected: [][]domain.Coin{
				{
					{Denomination: 10, Quantity: 3},
				},
			},
		},
		{
			name:     "zero amount",
			amount:   0,
			coins:    inventory,
			limit:    3,
			expected: [][]domain.Coin{{}},
		},
		{
			name:     "negative amount",
			amount:   -10,
			coins:    inventory,
			limit:    3,
			expected: [][]domain.Coin{},
		},
		{
			name:     "exceeds inventory value",
			amount:   9999,
			coins:    inventory,
			limit:    3,
			expected: [][]domain.Coin{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			combos := findCombos(tt.amount, tt.coins, tt.limit, DefaultMaxVisits)
			require.Equal(t, tt.expected, combos)
		})
	}
}

func TestFindCombosShortlistBound(t *testing.T) {
	coins := []domain.Coin{
		{Denomination: 1, Quantity: 100},
		{Denomination: 5, Quantity: 20},
		{Denomination: 10, Quantity: 10},
		{Denomination: 50, Quantity: 2},
	}

	for amount := int64(1); amount <= 150; amount++ {
		combos := findCombos(amount, coins, DefaultLimit, DefaultMaxVisits)
		require.NotEmpty(t, combos)
		require.LessOrEqual(t, len(combos), DefaultLimit)

		for i, combo := range combos {
			require.Equal(t, amount, domain.Coins(combo).Total())
			if i > 0 {
				require.LessOrEqual(
					t, domain.Coins(combos[i-1]).Count(), domain.Coins(combo).Count(),
				)
			}
		}
	}
}

func TestFindCombosMaxVisits(t *testing.T) {
	coins := []domain.Coin{
		{Denomination: 100, Quantity: 2},
		{Denomination: 50, Quantity: 3},
		{Denomination: 10, Quantity: 5},
	}

	s := &search{
		coins:     domain.Coins(coins).Sorted(false),
		limit:     DefaultLimit,
		maxVisits: 1,
	}
	s.dfs(0, []domain.Coin{}, 160)
	require.Equal(t, 1, s.visits)
	require.Empty(t, s.combos)

	// Without bound the same search finds both combos.
	s = &search{
		coins: domain.Coins(coins).Sorted(false),
		limit: DefaultLimit,
	}
	s.dfs(0, []domain.Coin{}, 160)
	require.Len(t, s.combos, 2)
	require.Greater(t, s.visits, 1)
}
