package application_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/coinpurse/internal/core/application"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/infrastructure/storage/db/inmemory"
)

func TestNotificationService(t *testing.T) {
	t.Run("forward spend records", func(t *testing.T) {
		repoManager := inmemory.NewRepoManager()

		publisher := newMockedEventPublisher()
		publisher.On("PublishSpendRecord", mock.Anything, mock.Anything).
			Return(nil).Once()
		publisher.On("PublishSpendRecord", mock.Anything, mock.Anything).
			Return(fmt.Errorf("broker unreachable"))

		application.NewNotificationService(repoManager, publisher)
		historySvc := application.NewHistoryService(repoManager)

		first, err := historySvc.AddRecord(
			ctx, "JP", []domain.Coin{{Denomination: 5, Quantity: 1}}, 0,
		)
		require.NoError(t, err)
		second, err := historySvc.AddRecord(
			ctx, "JP", []domain.Coin{{Denomination: 1, Quantity: 2}}, 0,
		)
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			return len(publisher.publishedRecords()) == 2
		}, 2*time.Second, 10*time.Millisecond)

		ids := []string{}
		for _, r := range publisher.publishedRecords() {
			ids = append(ids, r.ID)
		}
		require.ElementsMatch(t, []string{first.ID, second.ID}, ids)
		publisher.AssertNumberOfCalls(t, "PublishSpendRecord", 2)
	})

	t.Run("event channels", func(t *testing.T) {
		repoManager := inmemory.NewRepoManager()

		svc := application.NewNotificationService(repoManager, nil)
		walletSvc := application.NewWalletService(repoManager, application.BuildInfo{})
		historySvc := application.NewHistoryService(repoManager)

		subCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		chWallet, err := svc.GetWalletChannel(subCtx)
		require.NoError(t, err)
		chHistory, err := svc.GetHistoryChannel(subCtx)
		require.NoError(t, err)

		// The first AddCoins of a country creates its wallet, so two events
		// are generated back to back and none must get lost.
		_, err = walletSvc.AddCoins(ctx, "KR", 500, 1)
		require.NoError(t, err)

		received := map[domain.WalletEventType]domain.WalletEvent{}
		timeout := time.After(2 * time.Second)
		for len(received) < 2 {
			select {
			case event := <-chWallet:
				require.Equal(t, "KR", event.Country)
				received[event.EventType] = event
			case <-timeout:
				t.Fatalf("timeout waiting for wallet events, got %v", received)
			}
		}
		require.Contains(t, received, domain.WalletCreated)
		require.Contains(t, received, domain.WalletCoinsAdded)
		require.Equal(
			t, int64(500), domain.Coins(received[domain.WalletCoinsAdded].Coins).Total(),
		)

		record, err := historySvc.AddRecord(
			ctx, "KR", []domain.Coin{{Denomination: 500, Quantity: 1}}, 0,
		)
		require.NoError(t, err)

		select {
		case event := <-chHistory:
			require.Equal(t, domain.SpendRecordAdded, event.EventType)
			require.Equal(t, record.ID, event.Record.ID)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for history event")
		}
	})

	t.Run("multiple subscribers", func(t *testing.T) {
		repoManager := inmemory.NewRepoManager()

		svc := application.NewNotificationService(repoManager, nil)
		walletSvc := application.NewWalletService(repoManager, application.BuildInfo{})

		firstCtx, cancelFirst := context.WithCancel(ctx)
		secondCtx, cancelSecond := context.WithCancel(ctx)
		defer cancelSecond()

		first, err := svc.GetWalletChannel(firstCtx)
		require.NoError(t, err)
		second, err := svc.GetWalletChannel(secondCtx)
		require.NoError(t, err)

		_, err = walletSvc.GetWallet(ctx, "JP")
		require.NoError(t, err)

		for _, ch := range []chan domain.WalletEvent{first, second} {
			select {
			case event := <-ch:
				require.Equal(t, domain.WalletCreated, event.EventType)
			case <-time.After(2 * time.Second):
				t.Fatal("timeout waiting for wallet event")
			}
		}

		cancelFirst()
		// Let the subscription be removed.
		time.Sleep(50 * time.Millisecond)

		err = walletSvc.ResetWallet(ctx, "JP")
		require.NoError(t, err)

		select {
		case event := <-second:
			require.Equal(t, domain.WalletReset, event.EventType)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for wallet event")
		}
		require.Never(t, func() bool {
			return len(first) > 0
		}, 200*time.Millisecond, 10*time.Millisecond)
	})
}
