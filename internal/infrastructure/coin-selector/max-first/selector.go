package maxfirst_selector

import (
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/core/ports"
)

type selector struct{}

func NewMaxFirstCoinSelector() ports.CoinSelector {
	return &selector{}
}

// SelectCoins walks the coins from the largest denomination to the smallest
// one, taking as many coins as possible at each step.
// Greedy selection is not complete for arbitrary denominations: if the pass
// doesn't hit the amount exactly, no combo is returned even if a different
// one would exist.
func (s *selector) SelectCoins(
	amount int64, coins []domain.Coin,
) []domain.Coin {
	sorted := domain.Coins(coins).Sorted(true)

	combo := make([]domain.Coin, 0)
	remaining := amount
	for _, coin := range sorted {
		if remaining <= 0 {
			break
		}

		maxUsable := coin.MaxUsable(remaining)
		if maxUsable <= 0 {
			continue
		}

		combo = append(combo, domain.Coin{
			Denomination: coin.Denomination,
			Quantity:     maxUsable,
			Image:        coin.Image,
		})
		remaining -= coin.Denomination * maxUsable
	}

	if remaining != 0 {
		return []domain.Coin{}
	}
	return combo
}
