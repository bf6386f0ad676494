package application_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/coinpurse/internal/core/application"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/infrastructure/storage/db/inmemory"
)

func TestHistoryService(t *testing.T) {
	repoManager := inmemory.NewRepoManager()

	svc := application.NewHistoryService(repoManager)

	history, err := svc.GetHistory(ctx, "US")
	require.NoError(t, err)
	require.Empty(t, history)

	_, err = svc.GetHistory(ctx, "XX")
	require.ErrorIs(t, err, domain.ErrCurrencyNotSupported)

	_, err = svc.AddRecord(ctx, "US", []domain.Coin{}, 0)
	require.ErrorIs(t, err, application.ErrEmptyCombo)

	_, err = svc.AddRecord(ctx, "US", []domain.Coin{
		{Denomination: 25, Quantity: 1},
		{Denomination: 10, Quantity: 0},
	}, 0)
	require.ErrorIs(t, err, application.ErrInvalidComboCoin)

	_, err = svc.AddRecord(ctx, "US", []domain.Coin{
		{Denomination: -5, Quantity: 1},
	}, 0)
	require.ErrorIs(t, err, application.ErrInvalidComboCoin)

	first, err := svc.AddRecord(
		ctx, "US", []domain.Coin{{Denomination: 25, Quantity: 2}}, 50,
	)
	require.NoError(t, err)
	require.Equal(t, int64(50), first.Spent)

	second, err := svc.AddRecord(
		ctx, "US", []domain.Coin{{Denomination: 10, Quantity: 1}}, 40,
	)
	require.NoError(t, err)

	history, err = svc.GetHistory(ctx, "US")
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, second.ID, history[0].ID)
	require.Equal(t, first.ID, history[1].ID)

	count, err := svc.ResetHistory(ctx, "US")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	history, err = svc.GetHistory(ctx, "US")
	require.NoError(t, err)
	require.Empty(t, history)
}
