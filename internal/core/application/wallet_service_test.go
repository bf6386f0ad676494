package application_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/coinpurse/internal/core/application"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/infrastructure/storage/db/inmemory"
)

func TestWalletService(t *testing.T) {
	repoManager := inmemory.NewRepoManager()

	buildInfo := application.BuildInfo{Version: "dev", Commit: "none", Date: "unknown"}
	svc := application.NewWalletService(repoManager, buildInfo)
	require.Equal(t, buildInfo, svc.GetInfo(ctx))

	t.Run("get_wallet", func(t *testing.T) {
		wallet, err := svc.GetWallet(ctx, "KR")
		require.NoError(t, err)
		require.NotNil(t, wallet)
		require.Empty(t, wallet.Coins)
		require.Equal(t, "₩", wallet.Currency.Symbol)

		wallet, err = svc.GetWallet(ctx, "IT")
		require.ErrorIs(t, err, domain.ErrCurrencyNotSupported)
		require.Nil(t, wallet)
	})

	t.Run("add_coins", func(t *testing.T) {
		wallet, err := svc.AddCoins(ctx, "US", 25, 4)
		require.NoError(t, err)
		require.Equal(t, int64(100), wallet.Balance())

		wallet, err = svc.AddCoins(ctx, "US", 25, -1)
		require.NoError(t, err)
		require.Equal(t, int64(75), wallet.Balance())

		_, err = svc.AddCoins(ctx, "US", 500, 1)
		require.ErrorIs(t, err, domain.ErrInvalidDenomination)

		_, err = svc.AddCoins(ctx, "US", 25, -10)
		require.ErrorIs(t, err, domain.ErrInsufficientCoins)

		balance, err := svc.GetBalance(ctx, "US")
		require.NoError(t, err)
		require.Equal(t, int64(75), balance.Balance)
		require.Equal(t, "$0.75", balance.Formatted)
		require.Len(t, balance.Coins, 1)
	})

	t.Run("reset", func(t *testing.T) {
		_, err := svc.AddCoins(ctx, "JP", 100, 3)
		require.NoError(t, err)

		record := domain.NewSpendRecord(
			"JP", []domain.Coin{{Denomination: 100, Quantity: 1}}, 200, now(),
		)
		_, err = repoManager.HistoryRepository().AddRecord(ctx, record)
		require.NoError(t, err)

		err = svc.ResetWallet(ctx, "JP")
		require.NoError(t, err)

		balance, err := svc.GetBalance(ctx, "JP")
		require.NoError(t, err)
		require.Zero(t, balance.Balance)

		history, err := repoManager.HistoryRepository().GetHistory(ctx, "JP")
		require.NoError(t, err)
		require.Len(t, history, 1)

		count, err := svc.ResetAll(ctx, "JP")
		require.NoError(t, err)
		require.Equal(t, 1, count)

		history, err = repoManager.HistoryRepository().GetHistory(ctx, "JP")
		require.NoError(t, err)
		require.Empty(t, history)
	})

	t.Run("list_currencies", func(t *testing.T) {
		currencies := svc.ListCurrencies(ctx)
		require.Len(t, currencies, 3)
	})
}
