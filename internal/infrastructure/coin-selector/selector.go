package coinselector

import (
	"fmt"

	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/core/ports"
	maxfirst "github.com/vulpemventures/coinpurse/internal/infrastructure/coin-selector/max-first"
	minfirst "github.com/vulpemventures/coinpurse/internal/infrastructure/coin-selector/min-first"
)

// New returns the coin selector implementing the given strategy. Options
// only apply to the MinFirst strategy.
func New(
	strategy domain.CoinSelectionStrategy, opts ...minfirst.Option,
) (ports.CoinSelector, error) {
	switch strategy {
	case domain.MaxFirst:
		return maxfirst.NewMaxFirstCoinSelector(), nil
	case domain.MinFirst:
		return minfirst.NewMinFirstCoinSelector(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownStrategy, strategy)
	}
}

// Solve returns a combo of the given coins summing up exactly to amount,
// selected with the given strategy, or an empty combo if none exists.
// The given coins are never modified.
func Solve(
	amount int64, coins []domain.Coin, strategy domain.CoinSelectionStrategy,
) []domain.Coin {
	selector, err := New(strategy)
	if err != nil {
		return []domain.Coin{}
	}
	return selector.SelectCoins(amount, coins)
}
