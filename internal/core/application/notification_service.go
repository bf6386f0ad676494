package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/core/ports"
)

const (
	publishTimeout = 5 * time.Second
	// subscriberBufferSize is the number of events a subscriber can lag
	// behind before new ones are dropped for it.
	subscriberBufferSize = 64
)

var (
	walletEventTypes = []domain.WalletEventType{
		domain.WalletCreated, domain.WalletCoinsAdded,
		domain.WalletCoinsUsed, domain.WalletReset,
	}
	historyEventTypes = []domain.HistoryEventType{
		domain.SpendRecordAdded, domain.HistoryReset,
	}
)

// Notification service has the very simple task of making the events of the
// used domain.WalletRepository and domain.HistoryRepository accessible by
// external clients so that they can get real-time updates on the status of
// the wallets.
//
// Events are received through handlers registered to the repo manager and
// fanned out to every subscriber, each with its own buffered channel.
//
// If an event publisher is given, the service also registers a handler for
// domain.SpendRecordAdded events to forward every new spend record to it.
type NotificationService struct {
	repoManager ports.RepoManager
	publisher   ports.EventPublisher

	lock               *sync.RWMutex
	walletSubscribers  map[chan domain.WalletEvent]struct{}
	historySubscribers map[chan domain.HistoryEvent]struct{}

	warn func(err error, format string, a ...interface{})
}

func NewNotificationService(
	repoManager ports.RepoManager, publisher ports.EventPublisher,
) *NotificationService {
	warnFn := func(err error, format string, a ...interface{}) {
		format = fmt.Sprintf("notification service: %s", format)
		log.WithError(err).Warnf(format, a...)
	}

	svc := &NotificationService{
		repoManager:        repoManager,
		publisher:          publisher,
		lock:               &sync.RWMutex{},
		walletSubscribers:  make(map[chan domain.WalletEvent]struct{}),
		historySubscribers: make(map[chan domain.HistoryEvent]struct{}),
		warn:               warnFn,
	}
	svc.registerHandlersForSubscribers()
	svc.registerHandlerForHistoryEvents()
	return svc
}

// GetWalletChannel returns a channel receiving every wallet event until the
// given context is done.
func (ns *NotificationService) GetWalletChannel(
	ctx context.Context,
) (chan domain.WalletEvent, error) {
	ch := make(chan domain.WalletEvent, subscriberBufferSize)

	ns.lock.Lock()
	ns.walletSubscribers[ch] = struct{}{}
	ns.lock.Unlock()

	go func() {
		<-ctx.Done()
		ns.lock.Lock()
		delete(ns.walletSubscribers, ch)
		ns.lock.Unlock()
	}()

	return ch, nil
}

// GetHistoryChannel returns a channel receiving every history event until
// the given context is done.
func (ns *NotificationService) GetHistoryChannel(
	ctx context.Context,
) (chan domain.HistoryEvent, error) {
	ch := make(chan domain.HistoryEvent, subscriberBufferSize)

	ns.lock.Lock()
	ns.historySubscribers[ch] = struct{}{}
	ns.lock.Unlock()

	go func() {
		<-ctx.Done()
		ns.lock.Lock()
		delete(ns.historySubscribers, ch)
		ns.lock.Unlock()
	}()

	return ch, nil
}

func (ns *NotificationService) registerHandlersForSubscribers() {
	for _, eventType := range walletEventTypes {
		ns.repoManager.RegisterHandlerForWalletEvent(
			eventType, func(event domain.WalletEvent) {
				ns.lock.RLock()
				defer ns.lock.RUnlock()

				for ch := range ns.walletSubscribers {
					select {
					case ch <- event:
					default:
						ns.warn(
							fmt.Errorf("subscriber buffer full"),
							"dropped %s event of %s wallet", event.EventType, event.Country,
						)
					}
				}
			},
		)
	}

	for _, eventType := range historyEventTypes {
		ns.repoManager.RegisterHandlerForHistoryEvent(
			eventType, func(event domain.HistoryEvent) {
				ns.lock.RLock()
				defer ns.lock.RUnlock()

				for ch := range ns.historySubscribers {
					select {
					case ch <- event:
					default:
						ns.warn(
							fmt.Errorf("subscriber buffer full"),
							"dropped %s event of %s history", event.EventType, event.Country,
						)
					}
				}
			},
		)
	}
}

func (ns *NotificationService) registerHandlerForHistoryEvents() {
	if ns.publisher == nil {
		return
	}

	ns.repoManager.RegisterHandlerForHistoryEvent(
		domain.SpendRecordAdded, func(event domain.HistoryEvent) {
			if event.Record == nil {
				return
			}

			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			defer cancel()

			if err := ns.publisher.PublishSpendRecord(ctx, event.Record); err != nil {
				ns.warn(err, "failed to publish spend record %s", event.Record.ID)
			}
		},
	)
}
