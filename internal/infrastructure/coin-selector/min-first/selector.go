package minfirst_selector

import (
	"math/rand"
	"sort"

	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/core/ports"
)

const (
	// DefaultLimit is the max number of combos collected and suggested.
	DefaultLimit = 3
	// DefaultMaxVisits caps the number of explored branches.
	DefaultMaxVisits = 1000000
)

type selector struct {
	limit     int
	maxVisits int
	randIntn  func(n int) int
}

// Option customizes the behaviour of the selector.
type Option func(s *selector)

// WithLimit sets the max number of combos to collect before picking one.
func WithLimit(limit int) Option {
	return func(s *selector) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// WithMaxVisits bounds the number of branches explored by the search.
// A non positive value disables the bound.
func WithMaxVisits(maxVisits int) Option {
	return func(s *selector) {
		s.maxVisits = maxVisits
	}
}

// WithRandIntn sets the source used to pick one of the collected combos. It
// must return a uniform number in [0, n).
func WithRandIntn(randIntn func(n int) int) Option {
	return func(s *selector) {
		if randIntn != nil {
			s.randIntn = randIntn
		}
	}
}

func NewMinFirstCoinSelector(opts ...Option) ports.CoinSelector {
	s := &selector{
		limit:     DefaultLimit,
		maxVisits: DefaultMaxVisits,
		randIntn:  rand.Intn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectCoins collects a shortlist of combos covering the amount exactly,
// starting from the smallest denominations, and returns one of them chosen
// at random, so that the suggestion is not always the same.
func (s *selector) SelectCoins(
	amount int64, coins []domain.Coin,
) []domain.Coin {
	combos := findCombos(amount, coins, s.limit, s.maxVisits)
	if len(combos) <= 0 {
		return []domain.Coin{}
	}
	return combos[s.randIntn(len(combos))]
}

// FindCombos returns at most limit combos covering the given amount exactly,
// sorted by number of coins, fewest first.
func FindCombos(amount int64, coins []domain.Coin, limit int) [][]domain.Coin {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return findCombos(amount, coins, limit, DefaultMaxVisits)
}

func findCombos(
	amount int64, coins []domain.Coin, limit, maxVisits int,
) [][]domain.Coin {
	s := &search{
		coins:     domain.Coins(coins).Sorted(false),
		limit:     limit,
		maxVisits: maxVisits,
		combos:    make([][]domain.Coin, 0, limit),
	}
	s.dfs(0, []domain.Coin{}, amount)

	sort.SliceStable(s.combos, func(i, j int) bool {
		return domain.Coins(s.combos[i]).Count() < domain.Coins(s.combos[j]).Count()
	})
	if len(s.combos) > limit {
		s.combos = s.combos[:limit]
	}
	return s.combos
}

// search holds the state of a depth-first exploration of the coins sorted
// by ascending denomination.
type search struct {
	coins     []domain.Coin
	limit     int
	maxVisits int
	visits    int
	combos    [][]domain.Coin
}

// dfs tries, for the coin at the given index, every usable count from the
// max down to zero. A branch is accepted as soon as the remaining amount
// reaches zero; counts never exceed remaining/denomination so overshooting
// branches are never explored.
// Current is never modified in place: each branch taking coins gets its own
// extended copy.
func (s *search) dfs(index int, current []domain.Coin, remaining int64) {
	if s.maxVisits > 0 && s.visits >= s.maxVisits {
		return
	}
	s.visits++

	if remaining == 0 {
		s.combos = append(s.combos, current)
		return
	}
	if index >= len(s.coins) || len(s.combos) >= s.limit {
		return
	}

	coin := s.coins[index]
	for count := coin.MaxUsable(remaining); count >= 0; count-- {
		next := current
		if count > 0 {
			next = make([]domain.Coin, len(current), len(current)+1)
			copy(next, current)
			next = append(next, domain.Coin{
				Denomination: coin.Denomination,
				Quantity:     count,
				Image:        coin.Image,
			})
		}
		s.dfs(index+1, next, remaining-coin.Denomination*count)
	}
}
