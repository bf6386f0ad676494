package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

var (
	ErrEmptyCombo            = fmt.Errorf("combo must contain at least one coin")
	ErrComboExceedsInventory = fmt.Errorf("combo exceeds wallet inventory")
	ErrInvalidComboCoin      = fmt.Errorf("combo coins must have positive denomination and quantity")
)

// validateCombo checks that the combo is not empty and that every one of
// its coins has positive denomination and quantity.
func validateCombo(combo []domain.Coin) error {
	if len(combo) <= 0 {
		return ErrEmptyCombo
	}
	for _, c := range combo {
		if c.Denomination <= 0 || c.Quantity <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidComboCoin, c)
		}
	}
	return nil
}

type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// CalculationResult holds the outcome of a coin combination request. An
// empty combo means that no exact combination of the wallet coins exists for
// the requested amount.
type CalculationResult struct {
	Country   string
	Amount    int64
	Strategy  domain.CoinSelectionStrategy
	Combo     []domain.Coin
	Total     int64
	Found     bool
	Formatted string
}

type BalanceInfo struct {
	Country   string
	Balance   int64
	Formatted string
	Coins     []domain.Coin
}

type WalletInfo struct {
	domain.Wallet
	Currency domain.Currency
}

// getOrCreateWallet returns the wallet of the given country, creating an
// empty one if not yet existing.
func getOrCreateWallet(
	ctx context.Context, repo domain.WalletRepository, country string,
) (*domain.Wallet, error) {
	wallet, err := repo.GetWallet(ctx, country)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, domain.ErrWalletNotFound) {
		return nil, err
	}

	newWallet, err := domain.NewWallet(country)
	if err != nil {
		return nil, err
	}
	if err := repo.CreateWallet(ctx, newWallet); err != nil {
		if !errors.Is(err, domain.ErrWalletAlreadyExists) {
			return nil, err
		}
	}
	return repo.GetWallet(ctx, country)
}
