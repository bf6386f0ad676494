package testutil

import (
	"testing"

	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/core/ports"
)

// WalletHandlerFactory returns a wallet event handler logging every received
// event for the given repo type.
func WalletHandlerFactory(t *testing.T, repoType string) ports.WalletEventHandler {
	return func(event domain.WalletEvent) {
		t.Logf(
			"received event from %s repo: {EventType: %s, Country: %s, Coins: %v}\n",
			repoType, event.EventType, event.Country, event.Coins,
		)
	}
}

// HistoryHandlerFactory returns a history event handler logging every
// received event for the given repo type.
func HistoryHandlerFactory(t *testing.T, repoType string) ports.HistoryEventHandler {
	return func(event domain.HistoryEvent) {
		recordID := ""
		if event.Record != nil {
			recordID = event.Record.ID
		}
		t.Logf(
			"received event from %s repo: {EventType: %s, Country: %s, Record: %s}\n",
			repoType, event.EventType, event.Country, recordID,
		)
	}
}

// RegisterHandlers registers the logging handlers for every event type of
// the given repo manager.
func RegisterHandlers(t *testing.T, rm ports.RepoManager, repoType string) {
	walletHandler := WalletHandlerFactory(t, repoType)
	for _, eventType := range []domain.WalletEventType{
		domain.WalletCreated, domain.WalletCoinsAdded,
		domain.WalletCoinsUsed, domain.WalletReset,
	} {
		rm.RegisterHandlerForWalletEvent(eventType, walletHandler)
	}

	historyHandler := HistoryHandlerFactory(t, repoType)
	for _, eventType := range []domain.HistoryEventType{
		domain.SpendRecordAdded, domain.HistoryReset,
	} {
		rm.RegisterHandlerForHistoryEvent(eventType, historyHandler)
	}
}
