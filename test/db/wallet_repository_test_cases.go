package dbtest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

var (
	errSomethingWentWrong = fmt.Errorf("something went wrong")
)

func TestWalletRepository(
	t *testing.T, ctx context.Context, repo domain.WalletRepository,
) {
	testCreateWallet(t, ctx, repo)

	testUpdateWallet(t, ctx, repo)

	testConcurrentUpdateWallet(t, ctx, repo)

	time.Sleep(1 * time.Second) //wait for events
}

func testCreateWallet(
	t *testing.T, ctx context.Context, repo domain.WalletRepository,
) {
	t.Run("create_wallet", func(t *testing.T) {
		wallet, err := repo.GetWallet(ctx, "KR")
		require.ErrorIs(t, err, domain.ErrWalletNotFound)
		require.Nil(t, wallet)

		newWallet, err := domain.NewWallet("KR")
		require.NoError(t, err)
		require.NoError(t, newWallet.AddCoins(100, 2))

		err = repo.CreateWallet(ctx, newWallet)
		require.NoError(t, err)

		err = repo.CreateWallet(ctx, newWallet)
		require.ErrorIs(t, err, domain.ErrWalletAlreadyExists)

		wallet, err = repo.GetWallet(ctx, "KR")
		require.NoError(t, err)
		require.NotNil(t, wallet)
		require.Equal(t, "KR", wallet.Country)
		require.Equal(t, newWallet.Coins, wallet.Coins)
		require.Equal(t, newWallet.CreatedAt, wallet.CreatedAt)

		otherWallet, err := domain.NewWallet("US")
		require.NoError(t, err)
		err = repo.CreateWallet(ctx, otherWallet)
		require.NoError(t, err)

		wallet, err = repo.GetWallet(ctx, "US")
		require.NoError(t, err)
		require.Empty(t, wallet.Coins)
	})
}

func testUpdateWallet(
	t *testing.T, ctx context.Context, repo domain.WalletRepository,
) {
	t.Run("update_wallet", func(t *testing.T) {
		err := repo.UpdateWallet(
			ctx, "JP", domain.WalletCoinsAdded,
			func(w *domain.Wallet) (*domain.Wallet, error) {
				return w, nil
			},
		)
		require.ErrorIs(t, err, domain.ErrWalletNotFound)

		err = repo.UpdateWallet(
			ctx, "KR", domain.WalletCoinsAdded,
			func(w *domain.Wallet) (*domain.Wallet, error) {
				if err := w.AddCoins(50, 3); err != nil {
					return nil, err
				}
				if err := w.AddCoins(10, 5); err != nil {
					return nil, err
				}
				return w, nil
			},
		)
		require.NoError(t, err)

		wallet, err := repo.GetWallet(ctx, "KR")
		require.NoError(t, err)
		require.Equal(t, int64(400), wallet.Balance())
		require.Equal(t, []domain.Coin{
			{Denomination: 100, Quantity: 2, Image: "coins/KR/100.png"},
			{Denomination: 50, Quantity: 3, Image: "coins/KR/50.png"},
			{Denomination: 10, Quantity: 5, Image: "coins/KR/10.png"},
		}, wallet.Coins)

		// A failing update leaves the stored wallet untouched.
		err = repo.UpdateWallet(
			ctx, "KR", domain.WalletCoinsUsed,
			func(w *domain.Wallet) (*domain.Wallet, error) {
				w.UseCoins([]domain.Coin{{Denomination: 100, Quantity: 2}})
				return nil, errSomethingWentWrong
			},
		)
		require.ErrorIs(t, err, errSomethingWentWrong)

		wallet, err = repo.GetWallet(ctx, "KR")
		require.NoError(t, err)
		require.Equal(t, int64(400), wallet.Balance())

		err = repo.UpdateWallet(
			ctx, "KR", domain.WalletCoinsUsed,
			func(w *domain.Wallet) (*domain.Wallet, error) {
				w.UseCoins([]domain.Coin{
					{Denomination: 100, Quantity: 1},
					{Denomination: 50, Quantity: 1},
					{Denomination: 10, Quantity: 1},
				})
				return w, nil
			},
		)
		require.NoError(t, err)

		wallet, err = repo.GetWallet(ctx, "KR")
		require.NoError(t, err)
		require.Equal(t, int64(240), wallet.Balance())

		err = repo.UpdateWallet(
			ctx, "KR", domain.WalletReset,
			func(w *domain.Wallet) (*domain.Wallet, error) {
				w.Reset()
				return w, nil
			},
		)
		require.NoError(t, err)

		wallet, err = repo.GetWallet(ctx, "KR")
		require.NoError(t, err)
		require.Empty(t, wallet.Coins)
		require.Zero(t, wallet.Balance())
	})
}

func testConcurrentUpdateWallet(
	t *testing.T, ctx context.Context, repo domain.WalletRepository,
) {
	t.Run("concurrent_update_wallet", func(t *testing.T) {
		numOfUpdates := 10

		wg := &sync.WaitGroup{}
		wg.Add(numOfUpdates)
		for i := 0; i < numOfUpdates; i++ {
			go func() {
				defer wg.Done()
				err := repo.UpdateWallet(
					ctx, "US", domain.WalletCoinsAdded,
					func(w *domain.Wallet) (*domain.Wallet, error) {
						if err := w.AddCoins(25, 1); err != nil {
							return nil, err
						}
						return w, nil
					},
				)
				require.NoError(t, err)
			}()
		}
		wg.Wait()

		wallet, err := repo.GetWallet(ctx, "US")
		require.NoError(t, err)
		require.Equal(t, int64(numOfUpdates), wallet.Inventory().QuantityOf(25))
	})
}
