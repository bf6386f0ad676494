package ports

import (
	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

type WalletEventHandler func(event domain.WalletEvent)
type HistoryEventHandler func(event domain.HistoryEvent)

// RepoManager is the abstraction for any kind of service intended to manage
// domain repositories implementations of the same concrete type.
type RepoManager interface {
	// WalletRepository returns the wallet repository.
	WalletRepository() domain.WalletRepository
	// HistoryRepository returns the spend history repository.
	HistoryRepository() domain.HistoryRepository

	// RegisterHandlerForWalletEvent registers an handler function, executed
	// whenever the given event type occurs.
	RegisterHandlerForWalletEvent(
		eventType domain.WalletEventType, handler WalletEventHandler,
	)
	// RegisterHandlerForHistoryEvent registers an handler function, executed
	// whenever the given event type occurs.
	RegisterHandlerForHistoryEvent(
		eventType domain.HistoryEventType, handler HistoryEventHandler,
	)

	// Reset brings all the repos to their initial state by deleting any persisted data.
	Reset()

	// Close closes the connection with all concrete repositories
	// implementations.
	Close()
}
