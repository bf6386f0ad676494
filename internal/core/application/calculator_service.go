package application

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/core/ports"
	coinselector "github.com/vulpemventures/coinpurse/internal/infrastructure/coin-selector"
	minfirst "github.com/vulpemventures/coinpurse/internal/infrastructure/coin-selector/min-first"
)

// CalculatorService is responsible for suggesting which coins to hand over
// to pay an exact amount, and for spending them:
//   - Calculate a combo of the wallet coins summing up exactly to an amount.
//   - Spend a combo, decrementing the wallet inventory and recording the
//     spend in the history.
type CalculatorService struct {
	repoManager     ports.RepoManager
	defaultStrategy domain.CoinSelectionStrategy
	selectorOpts    []minfirst.Option

	log  func(format string, a ...interface{})
	warn func(err error, format string, a ...interface{})
}

func NewCalculatorService(
	repoManager ports.RepoManager, defaultStrategy domain.CoinSelectionStrategy,
	selectorOpts ...minfirst.Option,
) *CalculatorService {
	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("calculator service: %s", format)
		log.Debugf(format, a...)
	}
	warnFn := func(err error, format string, a ...interface{}) {
		format = fmt.Sprintf("calculator service: %s", format)
		log.WithError(err).Warnf(format, a...)
	}
	return &CalculatorService{
		repoManager, defaultStrategy, selectorOpts, logFn, warnFn,
	}
}

func (cs *CalculatorService) DefaultStrategy() domain.CoinSelectionStrategy {
	return cs.defaultStrategy
}

// Calculate returns a combo of the coins held in the wallet of the given
// country summing up exactly to amount, selected with the given strategy.
func (cs *CalculatorService) Calculate(
	ctx context.Context, country string, amount int64,
	strategy domain.CoinSelectionStrategy,
) (*CalculationResult, error) {
	wallet, err := getOrCreateWallet(
		ctx, cs.repoManager.WalletRepository(), country,
	)
	if err != nil {
		return nil, err
	}

	selector, err := coinselector.New(strategy, cs.selectorOpts...)
	if err != nil {
		return nil, err
	}

	combo := selector.SelectCoins(amount, wallet.Inventory())
	total := domain.Coins(combo).Total()
	result := &CalculationResult{
		Country:   country,
		Amount:    amount,
		Strategy:  strategy,
		Combo:     combo,
		Total:     total,
		Found:     len(combo) > 0,
		Formatted: wallet.Currency().FormatAmount(total),
	}
	observeCalculation(result)

	cs.log(
		"calculated combo for %d in %s wallet with %s strategy: %v",
		amount, country, strategy, combo,
	)
	return result, nil
}

// Spend removes the coins of the given combo from the wallet and adds a
// record to its spend history.
func (cs *CalculatorService) Spend(
	ctx context.Context, country string, combo []domain.Coin,
) (*domain.SpendRecord, error) {
	if err := validateCombo(combo); err != nil {
		return nil, err
	}

	walletRepo := cs.repoManager.WalletRepository()
	if _, err := getOrCreateWallet(ctx, walletRepo, country); err != nil {
		return nil, err
	}

	var remaining int64
	if err := walletRepo.UpdateWallet(
		ctx, country, domain.WalletCoinsUsed,
		func(w *domain.Wallet) (*domain.Wallet, error) {
			if !w.CanSpend(combo) {
				return nil, ErrComboExceedsInventory
			}
			w.UseCoins(combo)
			remaining = w.Balance()
			return w, nil
		},
	); err != nil {
		return nil, err
	}

	record := domain.NewSpendRecord(country, combo, remaining, time.Now())
	if _, err := cs.repoManager.HistoryRepository().AddRecord(
		ctx, record,
	); err != nil {
		cs.warn(err, "failed to add spend record %s to history", record.ID)
		cs.restoreCoins(ctx, country, combo)
		return nil, err
	}
	observeSpend(country, record.CoinCount(), record.Spent)

	cs.log(
		"spent %d coin(s) from %s wallet, %d left", record.CoinCount(),
		country, remaining,
	)
	return record, nil
}

// CalculateAndSpend calculates a combo for the given amount and, if found,
// spends it right away. The returned record is nil if no combo was found.
func (cs *CalculatorService) CalculateAndSpend(
	ctx context.Context, country string, amount int64,
	strategy domain.CoinSelectionStrategy,
) (*CalculationResult, *domain.SpendRecord, error) {
	result, err := cs.Calculate(ctx, country, amount, strategy)
	if err != nil {
		return nil, nil, err
	}
	if !result.Found {
		return result, nil, nil
	}

	record, err := cs.Spend(ctx, country, result.Combo)
	if err != nil {
		return nil, nil, err
	}
	return result, record, nil
}

// restoreCoins gives back the coins of a spent combo whose record could not
// be stored. CanSpend guarantees the whole combo was subtracted.
func (cs *CalculatorService) restoreCoins(
	ctx context.Context, country string, combo []domain.Coin,
) {
	if err := cs.repoManager.WalletRepository().UpdateWallet(
		ctx, country, domain.WalletCoinsAdded,
		func(w *domain.Wallet) (*domain.Wallet, error) {
			for _, c := range combo {
				if err := w.AddCoins(c.Denomination, c.Quantity); err != nil {
					return nil, err
				}
			}
			return w, nil
		},
	); err != nil {
		cs.warn(err, "failed to restore spent coins of %s wallet", country)
		return
	}
	cs.log("restored %d coin(s) of %s wallet", domain.Coins(combo).Count(), country)
}
