package ports

import "github.com/vulpemventures/coinpurse/internal/core/domain"

// CoinSelector is the abstraction for any kind of service intended to return
// a combo of the given coins summing up exactly to the target amount, based
// on a specific strategy.
type CoinSelector interface {
	// SelectCoins implements a certain coin selection strategy. An empty combo
	// means that no exact combination exists for the amount.
	SelectCoins(amount int64, coins []domain.Coin) []domain.Coin
}
