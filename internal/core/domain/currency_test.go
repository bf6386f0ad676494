package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

func TestGetCurrency(t *testing.T) {
	t.Parallel()

	currency, err := domain.GetCurrency("US")
	require.NoError(t, err)
	require.Equal(t, "USD", currency.Name)
	require.Equal(t, "$", currency.Symbol)
	require.True(t, currency.HasDenomination(25))
	require.False(t, currency.HasDenomination(500))

	currency, err = domain.GetCurrency("XX")
	require.ErrorIs(t, err, domain.ErrCurrencyNotSupported)
	require.Nil(t, currency)

	require.Equal(t, "KR", domain.CurrencyInfo("XX").Code)
	require.Equal(t, "¥", domain.CurrencySymbol("JP"))
	require.Empty(t, domain.CurrencySymbol("XX"))
	require.Equal(t, "coins/KR/500.png", domain.CoinImage("KR", 500))
	require.Empty(t, domain.CoinImage("KR", 5))
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		country  string
		amount   int64
		expected string
	}{
		{"US", 160, "$1.60"},
		{"US", 5, "$0.05"},
		{"US", 0, "$0.00"},
		{"JP", 160, "¥160"},
		{"KR", 1500, "₩1500"},
	}

	for _, tt := range tests {
		currency := domain.CurrencyInfo(tt.country)
		require.Equal(t, tt.expected, currency.FormatAmount(tt.amount))
	}
}

func TestListCurrencies(t *testing.T) {
	t.Parallel()

	list := domain.ListCurrencies()
	require.Len(t, list, 3)
	require.Equal(t, "JP", list[0].Code)
	require.Equal(t, "KR", list[1].Code)
	require.Equal(t, "US", list[2].Code)
	for _, c := range list {
		require.NotEmpty(t, c.Denominations)
	}
}
