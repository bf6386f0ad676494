package dbbadger

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dgraph-io/badger/v4"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

type historyRepository struct {
	store            *badgerhold.Store
	chEvents         chan domain.HistoryEvent
	externalChEvents chan domain.HistoryEvent
	lock             *sync.Mutex

	log func(format string, a ...interface{})
}

func newHistoryRepository(store *badgerhold.Store) *historyRepository {
	chEvents := make(chan domain.HistoryEvent)
	extrernalChEvents := make(chan domain.HistoryEvent)
	lock := &sync.Mutex{}
	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("history repository: %s", format)
		log.Debugf(format, a...)
	}
	return &historyRepository{
		store, chEvents, extrernalChEvents, lock, logFn,
	}
}

func (r *historyRepository) AddRecord(
	ctx context.Context, record *domain.SpendRecord,
) (bool, error) {
	done, err := r.insertRecord(ctx, record)
	if done {
		go r.publishEvent(domain.HistoryEvent{
			EventType: domain.SpendRecordAdded,
			Country:   record.Country,
			Record:    record,
		})
	}
	return done, err
}

func (r *historyRepository) GetHistory(
	ctx context.Context, country string,
) ([]*domain.SpendRecord, error) {
	query := badgerhold.Where("Country").Eq(country)
	return r.findRecords(ctx, query)
}

func (r *historyRepository) ResetHistory(
	ctx context.Context, country string,
) (int, error) {
	query := badgerhold.Where("Country").Eq(country)
	records, err := r.findRecords(ctx, query)
	if err != nil {
		return 0, err
	}
	if len(records) <= 0 {
		return 0, nil
	}

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxDeleteMatching(tx, domain.SpendRecord{}, query)
	} else {
		err = r.store.DeleteMatching(domain.SpendRecord{}, query)
	}
	if err != nil {
		return 0, err
	}

	go r.publishEvent(domain.HistoryEvent{
		EventType: domain.HistoryReset,
		Country:   country,
	})

	return len(records), nil
}

func (r *historyRepository) GetEventChannel() chan domain.HistoryEvent {
	return r.externalChEvents
}

func (r *historyRepository) insertRecord(
	ctx context.Context, record *domain.SpendRecord,
) (bool, error) {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxInsert(tx, record.ID, *record)
	} else {
		err = r.store.Insert(record.ID, *record)
	}

	if err != nil {
		if err == badgerhold.ErrKeyExists {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (r *historyRepository) findRecords(
	ctx context.Context, query *badgerhold.Query,
) ([]*domain.SpendRecord, error) {
	var list []domain.SpendRecord
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxFind(tx, &list, query)
	} else {
		err = r.store.Find(&list, query)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return make([]*domain.SpendRecord, 0), nil
		}
		return nil, err
	}

	records := make([]*domain.SpendRecord, 0, len(list))
	for i := range list {
		records = append(records, &list[i])
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	return records, nil
}

func (r *historyRepository) publishEvent(event domain.HistoryEvent) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.log("publish event %s", event.EventType)
	r.chEvents <- event

	// send over channel without blocking in case nobody is listening.
	select {
	case r.externalChEvents <- event:
	default:
	}
}

func (r *historyRepository) reset() {
	r.store.Badger().DropAll()
}

func (r *historyRepository) close() {
	r.store.Close()
	close(r.chEvents)
	close(r.externalChEvents)
}
