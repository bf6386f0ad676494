package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

func TestParseCoinSelectionStrategy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected domain.CoinSelectionStrategy
	}{
		{"", domain.MaxFirst},
		{"max-first", domain.MaxFirst},
		{"MIN-FIRST", domain.MinFirst},
		{" min-first ", domain.MinFirst},
	}

	for _, tt := range tests {
		strategy, err := domain.ParseCoinSelectionStrategy(tt.name)
		require.NoError(t, err)
		require.Equal(t, tt.expected, strategy)
	}

	_, err := domain.ParseCoinSelectionStrategy("random")
	require.ErrorIs(t, err, domain.ErrUnknownStrategy)

	require.Equal(
		t, []string{"max-first", "min-first"}, domain.CoinSelectionStrategies(),
	)
}
