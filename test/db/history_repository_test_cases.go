package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

func TestHistoryRepository(
	t *testing.T, ctx context.Context, repo domain.HistoryRepository,
) {
	testAddRecords(t, ctx, repo)

	testResetHistory(t, ctx, repo)

	time.Sleep(1 * time.Second) //wait for events
}

func testAddRecords(
	t *testing.T, ctx context.Context, repo domain.HistoryRepository,
) {
	t.Run("add_records", func(t *testing.T) {
		history, err := repo.GetHistory(ctx, "US")
		require.NoError(t, err)
		require.Empty(t, history)

		now := time.Now()
		first := domain.NewSpendRecord(
			"US", []domain.Coin{{Denomination: 25, Quantity: 2}}, 100,
			now.Add(-time.Hour),
		)
		second := domain.NewSpendRecord(
			"US", []domain.Coin{
				{Denomination: 10, Quantity: 1, Image: "coins/US/10.png"},
				{Denomination: 5, Quantity: 1, Image: "coins/US/5.png"},
			}, 85,
			now,
		)
		other := domain.NewSpendRecord(
			"JP", []domain.Coin{{Denomination: 500, Quantity: 1}}, 0, now,
		)

		for _, record := range []*domain.SpendRecord{first, second, other} {
			done, err := repo.AddRecord(ctx, record)
			require.NoError(t, err)
			require.True(t, done)
		}

		done, err := repo.AddRecord(ctx, first)
		require.NoError(t, err)
		require.False(t, done)

		history, err = repo.GetHistory(ctx, "US")
		require.NoError(t, err)
		require.Len(t, history, 2)

		// Newest first.
		require.Equal(t, second.ID, history[0].ID)
		require.Equal(t, first.ID, history[1].ID)

		got := history[0]
		require.Equal(t, "US", got.Country)
		require.True(t, second.Date.Equal(got.Date))
		require.Equal(t, second.Combo, got.Combo)
		require.Equal(t, int64(85), got.Amount)
		require.Equal(t, int64(15), got.Spent)
		require.Equal(t, "$", got.Symbol)

		history, err = repo.GetHistory(ctx, "JP")
		require.NoError(t, err)
		require.Len(t, history, 1)
	})
}

func testResetHistory(
	t *testing.T, ctx context.Context, repo domain.HistoryRepository,
) {
	t.Run("reset_history", func(t *testing.T) {
		count, err := repo.ResetHistory(ctx, "US")
		require.NoError(t, err)
		require.Equal(t, 2, count)

		history, err := repo.GetHistory(ctx, "US")
		require.NoError(t, err)
		require.Empty(t, history)

		count, err = repo.ResetHistory(ctx, "US")
		require.NoError(t, err)
		require.Zero(t, count)

		// Other countries are left untouched.
		history, err = repo.GetHistory(ctx, "JP")
		require.NoError(t, err)
		require.Len(t, history, 1)
	})
}
