package sqlitedb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

const (
	insertSpendRecordQuery = `INSERT INTO spend_record (
    id, country, date, combo, amount, spent, symbol
) VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING`
	getSpendRecordsQuery = `SELECT id, country, date, combo, amount, spent, symbol
FROM spend_record WHERE country = ? ORDER BY date DESC, seq DESC`
	deleteSpendRecordsQuery = `DELETE FROM spend_record WHERE country = ?`
)

type historyRepository struct {
	db               *sql.DB
	chEvents         chan domain.HistoryEvent
	externalChEvents chan domain.HistoryEvent
	lock             *sync.Mutex

	log func(format string, a ...interface{})
}

func newHistoryRepository(db *sql.DB) *historyRepository {
	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("history repository: %s", format)
		log.Debugf(format, a...)
	}
	return &historyRepository{
		db:               db,
		chEvents:         make(chan domain.HistoryEvent),
		externalChEvents: make(chan domain.HistoryEvent),
		lock:             &sync.Mutex{},
		log:              logFn,
	}
}

func (r *historyRepository) AddRecord(
	ctx context.Context, record *domain.SpendRecord,
) (bool, error) {
	combo, err := json.Marshal(record.Combo)
	if err != nil {
		return false, err
	}

	result, err := r.db.ExecContext(
		ctx, insertSpendRecordQuery,
		record.ID, record.Country, record.Date.UnixMilli(), string(combo),
		record.Amount, record.Spent, record.Symbol,
	)
	if err != nil {
		return false, err
	}
	count, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if count <= 0 {
		return false, nil
	}

	go r.publishEvent(domain.HistoryEvent{
		EventType: domain.SpendRecordAdded,
		Country:   record.Country,
		Record:    record,
	})

	return true, nil
}

func (r *historyRepository) GetHistory(
	ctx context.Context, country string,
) ([]*domain.SpendRecord, error) {
	rows, err := r.db.QueryContext(ctx, getSpendRecordsQuery, country)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.SpendRecord, 0)
	for rows.Next() {
		var date int64
		var combo string
		record := &domain.SpendRecord{}
		if err := rows.Scan(
			&record.ID, &record.Country, &date, &combo,
			&record.Amount, &record.Spent, &record.Symbol,
		); err != nil {
			return nil, err
		}

		record.Date = time.UnixMilli(date).UTC()
		record.Combo = make([]domain.Coin, 0)
		if err := json.Unmarshal([]byte(combo), &record.Combo); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *historyRepository) ResetHistory(
	ctx context.Context, country string,
) (int, error) {
	result, err := r.db.ExecContext(ctx, deleteSpendRecordsQuery, country)
	if err != nil {
		return 0, err
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if count > 0 {
		go r.publishEvent(domain.HistoryEvent{
			EventType: domain.HistoryReset,
			Country:   country,
		})
	}

	return int(count), nil
}

func (r *historyRepository) GetEventChannel() chan domain.HistoryEvent {
	return r.externalChEvents
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

func (r *historyRepository) close() {
	close(r.chEvents)
	close(r.externalChEvents)
}
