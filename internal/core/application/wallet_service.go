package application

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/core/ports"
)

// WalletService is responsible for operations related to the management of
// the coin wallets, one per supported country:
//   - Get a wallet, creating an empty one the first time it's requested.
//   - Add or remove coins of a certain denomination.
//   - Reset a wallet, optionally together with its spend history.
//   - List the supported currencies.
//
// This service doesn't register any handler for wallet events, rather it
// allows its users to register their own through the repo manager.
type WalletService struct {
	repoManager ports.RepoManager
	buildInfo   BuildInfo

	log func(format string, a ...interface{})
}

func NewWalletService(
	repoManager ports.RepoManager, buildInfo BuildInfo,
) *WalletService {
	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("wallet service: %s", format)
		log.Debugf(format, a...)
	}
	return &WalletService{repoManager, buildInfo, logFn}
}

func (ws *WalletService) GetInfo(_ context.Context) BuildInfo {
	return ws.buildInfo
}

func (ws *WalletService) GetWallet(
	ctx context.Context, country string,
) (*WalletInfo, error) {
	wallet, err := getOrCreateWallet(
		ctx, ws.repoManager.WalletRepository(), country,
	)
	if err != nil {
		return nil, err
	}
	return &WalletInfo{*wallet, wallet.Currency()}, nil
}

// AddCoins adds delta coins of the given denomination to the wallet, or
// removes them if delta is negative.
func (ws *WalletService) AddCoins(
	ctx context.Context, country string, denomination, delta int64,
) (*WalletInfo, error) {
	repo := ws.repoManager.WalletRepository()
	if _, err := getOrCreateWallet(ctx, repo, country); err != nil {
		return nil, err
	}

	var updatedWallet *domain.Wallet
	if err := repo.UpdateWallet(
		ctx, country, domain.WalletCoinsAdded,
		func(w *domain.Wallet) (*domain.Wallet, error) {
			if err := w.AddCoins(denomination, delta); err != nil {
				return nil, err
			}
			updatedWallet = w
			return w, nil
		},
	); err != nil {
		return nil, err
	}

	ws.log(
		"added %d coin(s) of %d to %s wallet", delta, denomination, country,
	)
	return &WalletInfo{*updatedWallet, updatedWallet.Currency()}, nil
}

func (ws *WalletService) ResetWallet(ctx context.Context, country string) error {
	repo := ws.repoManager.WalletRepository()
	if _, err := getOrCreateWallet(ctx, repo, country); err != nil {
		return err
	}

	if err := repo.UpdateWallet(
		ctx, country, domain.WalletReset,
		func(w *domain.Wallet) (*domain.Wallet, error) {
			w.Reset()
			return w, nil
		},
	); err != nil {
		return err
	}

	ws.log("reset %s wallet", country)
	return nil
}

// ResetAll resets the wallet of the given country and deletes its spend
// history. It returns the number of deleted records.
func (ws *WalletService) ResetAll(
	ctx context.Context, country string,
) (int, error) {
	if err := ws.ResetWallet(ctx, country); err != nil {
		return 0, err
	}
	count, err := ws.repoManager.HistoryRepository().ResetHistory(ctx, country)
	if err != nil {
		return 0, err
	}

	ws.log("deleted %d spend record(s) of %s wallet", count, country)
	return count, nil
}

func (ws *WalletService) GetBalance(
	ctx context.Context, country string,
) (*BalanceInfo, error) {
	wallet, err := getOrCreateWallet(
		ctx, ws.repoManager.WalletRepository(), country,
	)
	if err != nil {
		return nil, err
	}

	balance := wallet.Balance()
	return &BalanceInfo{
		Country:   country,
		Balance:   balance,
		Formatted: wallet.Currency().FormatAmount(balance),
		Coins:     wallet.Inventory(),
	}, nil
}

func (ws *WalletService) ListCurrencies(_ context.Context) []domain.Currency {
	return domain.ListCurrencies()
}
