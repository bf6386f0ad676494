package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

type historyInmemoryStore struct {
	records map[string]*domain.SpendRecord
	// recordsByCountry keeps record ids in insertion order.
	recordsByCountry map[string][]string
	lock             *sync.RWMutex
}

type historyRepository struct {
	store            *historyInmemoryStore
	chEvents         chan domain.HistoryEvent
	externalChEvents chan domain.HistoryEvent
	chLock           *sync.Mutex
}

func newHistoryRepository() *historyRepository {
	return &historyRepository{
		store: &historyInmemoryStore{
			records:          make(map[string]*domain.SpendRecord),
			recordsByCountry: make(map[string][]string),
			lock:             &sync.RWMutex{},
		},
		chEvents:         make(chan domain.HistoryEvent),
		externalChEvents: make(chan domain.HistoryEvent),
		chLock:           &sync.Mutex{},
	}
}

func (r *historyRepository) AddRecord(
	_ context.Context, record *domain.SpendRecord,
) (bool, error) {
	r.store.lock.Lock()
	defer r.store.lock.Unlock()

	if _, ok := r.store.records[record.ID]; ok {
		return false, nil
	}

	r.store.records[record.ID] = record
	r.store.recordsByCountry[record.Country] = append(
		r.store.recordsByCountry[record.Country], record.ID,
	)

	go r.publishEvent(domain.HistoryEvent{
		EventType: domain.SpendRecordAdded,
		Country:   record.Country,
		Record:    record,
	})

	return true, nil
}

func (r *historyRepository) GetHistory(
	_ context.Context, country string,
) ([]*domain.SpendRecord, error) {
	r.store.lock.RLock()
	defer r.store.lock.RUnlock()

	ids := r.store.recordsByCountry[country]
	records := make([]*domain.SpendRecord, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		records = append(records, r.store.records[ids[i]])
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	return records, nil
}

func (r *historyRepository) ResetHistory(
	_ context.Context, country string,
) (int, error) {
	r.store.lock.Lock()
	defer r.store.lock.Unlock()

	ids := r.store.recordsByCountry[country]
	for _, id := range ids {
		delete(r.store.records, id)
	}
	delete(r.store.recordsByCountry, country)

	if len(ids) <= 0 {
		return 0, nil
	}

	go r.publishEvent(domain.HistoryEvent{
		EventType: domain.HistoryReset,
		Country:   country,
	})

	return len(ids), nil
}

func (r *historyRepository) GetEventChannel() chan domain.HistoryEvent {
	return r.externalChEvents
}

func (r *historyRepository) publishEvent(event domain.HistoryEvent) {
	r.chLock.Lock()
	defer r.chLock.Unlock()

	r.chEvents <- event
	// send over channel without blocking in case nobody is listening.
	select {
	case r.externalChEvents <- event:
	default:
	}
}

func (r *historyRepository) reset() {
	r.store.lock.Lock()
	defer r.store.lock.Unlock()

	r.store.records = make(map[string]*domain.SpendRecord)
	r.store.recordsByCountry = make(map[string][]string)
}

func (r *historyRepository) close() {
	close(r.chEvents)
	close(r.externalChEvents)
}
