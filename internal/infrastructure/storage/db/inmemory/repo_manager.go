package inmemory

import (
	"sync"
	"time"

	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/core/ports"
)

type repoManager struct {
	walletRepository  *walletRepository
	historyRepository *historyRepository

	walletEventHandlers  *handlerMap
	historyEventHandlers *handlerMap
}

func NewRepoManager() ports.RepoManager {
	walletRepo := newWalletRepository()
	historyRepo := newHistoryRepository()

	rm := &repoManager{
		walletRepository:     walletRepo,
		historyRepository:    historyRepo,
		walletEventHandlers:  newHandlerMap(),
		historyEventHandlers: newHandlerMap(),
	}

	go rm.listenToWalletEvents()
	go rm.listenToHistoryEvents()

	return rm
}

func (rm *repoManager) WalletRepository() domain.WalletRepository {
	return rm.walletRepository
}

func (rm *repoManager) HistoryRepository() domain.HistoryRepository {
	return rm.historyRepository
}

func (rm *repoManager) RegisterHandlerForWalletEvent(
	eventType domain.WalletEventType, handler ports.WalletEventHandler,
) {
	rm.walletEventHandlers.set(int(eventType), handler)
}

func (rm *repoManager) RegisterHandlerForHistoryEvent(
	eventType domain.HistoryEventType, handler ports.HistoryEventHandler,
) {
	rm.historyEventHandlers.set(int(eventType), handler)
}

func (rm *repoManager) listenToWalletEvents() {
	for event := range rm.walletRepository.chEvents {
		time.Sleep(time.Millisecond)

		if handlers, ok := rm.walletEventHandlers.get(int(event.EventType)); ok {
			for i := range handlers {
				handler := handlers[i]
				go handler.(ports.WalletEventHandler)(event)
			}
		}
	}
}

func (rm *repoManager) listenToHistoryEvents() {
	for event := range rm.historyRepository.chEvents {
		time.Sleep(time.Millisecond)

		if handlers, ok := rm.historyEventHandlers.get(int(event.EventType)); ok {
			for i := range handlers {
				handler := handlers[i]
				go handler.(ports.HistoryEventHandler)(event)
			}
		}
	}
}

func (rm *repoManager) Reset() {
	rm.walletRepository.reset()
	rm.historyRepository.reset()
}

func (rm *repoManager) Close() {
	rm.walletRepository.close()
	rm.historyRepository.close()
}

// handlerMap is a util type to prevent race conditions when registering
// or retrieving handlers for events.
type handlerMap struct {
	handlersByEventType map[int][]interface{}
	lock                *sync.RWMutex
}

func newHandlerMap() *handlerMap {
	return &handlerMap{
		handlersByEventType: make(map[int][]interface{}),
		lock:                &sync.RWMutex{},
	}
}

func (m *handlerMap) set(key int, val interface{}) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.handlersByEventType[key] = append(m.handlersByEventType[key], val)
}

func (m *handlerMap) get(key int) ([]interface{}, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	val, ok := m.handlersByEventType[key]
	return val, ok
}
