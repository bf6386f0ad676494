package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

func TestNewWallet(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		w, err := domain.NewWallet("KR")
		require.NoError(t, err)
		require.NotNil(t, w)
		require.Equal(t, "KR", w.Country)
		require.Empty(t, w.Coins)
		require.Zero(t, w.Balance())
		require.NotZero(t, w.CreatedAt)
		require.Equal(t, "₩", w.Currency().Symbol)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			country string
			err     error
		}{
			{"", domain.ErrWalletMissingCountry},
			{"IT", domain.ErrCurrencyNotSupported},
		}

		for _, tt := range tests {
			w, err := domain.NewWallet(tt.country)
			require.ErrorIs(t, err, tt.err)
			require.Nil(t, w)
		}
	})
}

func TestWalletAddCoins(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		w, err := domain.NewWallet("US")
		require.NoError(t, err)

		err = w.AddCoins(25, 4)
		require.NoError(t, err)
		err = w.AddCoins(10, 2)
		require.NoError(t, err)
		err = w.AddCoins(25, 1)
		require.NoError(t, err)
		require.Len(t, w.Coins, 2)
		require.Equal(t, int64(5), w.Inventory().QuantityOf(25))
		require.Equal(t, "coins/US/25.png", w.Coins[0].Image)
		require.Equal(t, int64(145), w.Balance())

		err = w.AddCoins(25, -5)
		require.NoError(t, err)
		require.Zero(t, w.Inventory().QuantityOf(25))
		require.Len(t, w.Coins, 2)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		w, err := domain.NewWallet("US")
		require.NoError(t, err)
		err = w.AddCoins(10, 2)
		require.NoError(t, err)

		tests := []struct {
			name         string
			denomination int64
			delta        int64
			err          error
		}{
			{"zero delta", 10, 0, domain.ErrZeroDelta},
			{"unknown denomination", 500, 1, domain.ErrInvalidDenomination},
			{"below zero", 10, -3, domain.ErrInsufficientCoins},
			{"missing denomination", 5, -1, domain.ErrInsufficientCoins},
		}

		for _, tt := range tests {
			err := w.AddCoins(tt.denomination, tt.delta)
			require.ErrorIs(t, err, tt.err, tt.name)
		}
		require.Equal(t, int64(20), w.Balance())
	})
}

func TestWalletUseCoins(t *testing.T) {
	t.Parallel()

	w, err := domain.NewWallet("KR")
	require.NoError(t, err)
	require.NoError(t, w.AddCoins(100, 2))
	require.NoError(t, w.AddCoins(50, 3))
	require.NoError(t, w.AddCoins(10, 5))

	combo := []domain.Coin{
		{Denomination: 100, Quantity: 1},
		{Denomination: 50, Quantity: 1},
		{Denomination: 10, Quantity: 1},
	}
	require.True(t, w.CanSpend(combo))

	spent := w.UseCoins(combo)
	require.Equal(t, int64(160), spent)
	require.Equal(t, int64(240), w.Balance())

	// Quantities never go below zero.
	tooMany := []domain.Coin{{Denomination: 100, Quantity: 5}}
	require.False(t, w.CanSpend(tooMany))
	w.UseCoins(tooMany)
	require.Zero(t, w.Inventory().QuantityOf(100))
	require.Equal(t, int64(140), w.Balance())

	// Records of the same denomination add up.
	require.NoError(t, w.AddCoins(10, 1))
	w.UseCoins([]domain.Coin{
		{Denomination: 10, Quantity: 2},
		{Denomination: 10, Quantity: 3},
	})
	require.Zero(t, w.Inventory().QuantityOf(10))
	require.Equal(t, int64(100), w.Balance())

	// Non-positive quantities never add coins back.
	negative := []domain.Coin{
		{Denomination: 50, Quantity: 1},
		{Denomination: 50, Quantity: -1},
	}
	require.False(t, w.CanSpend(negative))
	w.UseCoins([]domain.Coin{{Denomination: 50, Quantity: -1}})
	require.Equal(t, int64(2), w.Inventory().QuantityOf(50))
	require.Equal(t, int64(100), w.Balance())

	w.Reset()
	require.Empty(t, w.Coins)
	require.Zero(t, w.Balance())
}

func TestNewSpendRecord(t *testing.T) {
	t.Parallel()

	combo := []domain.Coin{
		{Denomination: 100, Quantity: 1},
		{Denomination: 10, Quantity: 3},
	}
	date := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)

	record := domain.NewSpendRecord("JP", combo, 270, date)
	require.NotEmpty(t, record.ID)
	require.Equal(t, "JP", record.Country)
	require.Equal(t, "¥", record.Symbol)
	require.Equal(t, int64(130), record.Spent)
	require.Equal(t, int64(270), record.Amount)
	require.Equal(t, int64(4), record.CoinCount())
	require.True(t, date.Equal(record.Date))
	require.Equal(t, time.UTC, record.Date.Location())

	combo[0].Quantity = 10
	require.Equal(t, int64(1), record.Combo[0].Quantity)

	other := domain.NewSpendRecord("JP", combo, 0, date)
	require.NotEqual(t, record.ID, other.ID)
}
