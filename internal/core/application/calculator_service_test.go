package application_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/coinpurse/internal/core/application"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/core/ports"
	minfirst "github.com/vulpemventures/coinpurse/internal/infrastructure/coin-selector/min-first"
	dbbadger "github.com/vulpemventures/coinpurse/internal/infrastructure/storage/db/badger"
)

func now() time.Time {
	return time.Now()
}

func TestCalculatorService(t *testing.T) {
	repoManager := newRepoManagerForCalculatorService(t)

	svc := application.NewCalculatorService(
		repoManager, domain.MaxFirst,
		minfirst.WithRandIntn(func(int) int { return 0 }),
	)
	require.Equal(t, domain.MaxFirst, svc.DefaultStrategy())

	t.Run("calculate", func(t *testing.T) {
		tests := []struct {
			name     string
			amount   int64
			strategy domain.CoinSelectionStrategy
			expected []domain.Coin
		}{
			{
				name:     "max first",
				amount:   160,
				strategy: domain.MaxFirst,
				expected: []domain.Coin{
					{Denomination: 100, Quantity: 1, Image: "coins/KR/100.png"},
					{Denomination: 50, Quantity: 1, Image: "coins/KR/50.png"},
					{Denomination: 10, Quantity: 1, Image: "coins/KR/10.png"},
				},
			},
			{
				name:     "min first",
				amount:   160,
				strategy: domain.MinFirst,
				expected: []domain.Coin{
					{Denomination: 10, Quantity: 1, Image: "coins/KR/10.png"},
					{Denomination: 50, Quantity: 1, Image: "coins/KR/50.png"},
					{Denomination: 100, Quantity: 1, Image: "coins/KR/100.png"},
				},
			},
			{
				name:     "not found",
				amount:   9999,
				strategy: domain.MaxFirst,
				expected: []domain.Coin{},
			},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				result, err := svc.Calculate(ctx, "KR", tt.amount, tt.strategy)
				require.NoError(t, err)
				require.NotNil(t, result)
				require.Equal(t, tt.expected, result.Combo)
				require.Equal(t, len(tt.expected) > 0, result.Found)
				require.Equal(t, domain.Coins(tt.expected).Total(), result.Total)
			})
		}

		result, err := svc.Calculate(ctx, "KR", 160, domain.CoinSelectionStrategy(9))
		require.ErrorIs(t, err, domain.ErrUnknownStrategy)
		require.Nil(t, result)

		result, err = svc.Calculate(ctx, "XX", 160, domain.MaxFirst)
		require.ErrorIs(t, err, domain.ErrCurrencyNotSupported)
		require.Nil(t, result)
	})

	t.Run("spend", func(t *testing.T) {
		record, err := svc.Spend(ctx, "KR", nil)
		require.ErrorIs(t, err, application.ErrEmptyCombo)
		require.Nil(t, record)

		record, err = svc.Spend(ctx, "KR", []domain.Coin{
			{Denomination: 100, Quantity: 3},
		})
		require.ErrorIs(t, err, application.ErrComboExceedsInventory)
		require.Nil(t, record)

		record, err = svc.Spend(ctx, "KR", []domain.Coin{
			{Denomination: 100, Quantity: 2},
			{Denomination: 50, Quantity: -1},
		})
		require.ErrorIs(t, err, application.ErrInvalidComboCoin)
		require.Nil(t, record)

		wallet, err := repoManager.WalletRepository().GetWallet(ctx, "KR")
		require.NoError(t, err)
		require.Equal(t, int64(400), wallet.Balance())

		result, record, err := svc.CalculateAndSpend(ctx, "KR", 160, domain.MaxFirst)
		require.NoError(t, err)
		require.True(t, result.Found)
		require.NotNil(t, record)
		require.Equal(t, int64(160), record.Spent)
		require.Equal(t, int64(240), record.Amount)
		require.Equal(t, "₩", record.Symbol)

		wallet, err = repoManager.WalletRepository().GetWallet(ctx, "KR")
		require.NoError(t, err)
		require.Equal(t, int64(240), wallet.Balance())

		history, err := repoManager.HistoryRepository().GetHistory(ctx, "KR")
		require.NoError(t, err)
		require.Len(t, history, 1)
		require.Equal(t, record.ID, history[0].ID)

		result, record, err = svc.CalculateAndSpend(ctx, "KR", 9999, domain.MaxFirst)
		require.NoError(t, err)
		require.False(t, result.Found)
		require.Nil(t, record)
	})
}

func TestCalculatorServiceSpendWithoutHistory(t *testing.T) {
	repoManager := failingHistoryRepoManager{newRepoManagerForCalculatorService(t)}

	svc := application.NewCalculatorService(repoManager, domain.MaxFirst)

	record, err := svc.Spend(ctx, "KR", []domain.Coin{
		{Denomination: 100, Quantity: 1},
		{Denomination: 50, Quantity: 1},
		{Denomination: 10, Quantity: 1},
	})
	require.Error(t, err)
	require.Nil(t, record)

	wallet, err := repoManager.WalletRepository().GetWallet(ctx, "KR")
	require.NoError(t, err)
	require.Equal(t, int64(400), wallet.Balance())
	require.Equal(t, int64(2), domain.Coins(wallet.Coins).QuantityOf(100))
	require.Equal(t, int64(3), domain.Coins(wallet.Coins).QuantityOf(50))
	require.Equal(t, int64(5), domain.Coins(wallet.Coins).QuantityOf(10))
}

func newRepoManagerForCalculatorService(t *testing.T) ports.RepoManager {
	rm, err := dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)

	wallet, err := domain.NewWallet("KR")
	require.NoError(t, err)
	require.NoError(t, wallet.AddCoins(100, 2))
	require.NoError(t, wallet.AddCoins(50, 3))
	require.NoError(t, wallet.AddCoins(10, 5))

	err = rm.WalletRepository().CreateWallet(ctx, wallet)
	require.NoError(t, err)

	return rm
}
