package postgresdb

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/infrastructure/storage/db/postgres/sqlc/queries"
)

type historyRepositoryPg struct {
	pgxPool          *pgxpool.Pool
	querier          *queries.Queries
	chLock           *sync.Mutex
	chEvents         chan domain.HistoryEvent
	externalChEvents chan domain.HistoryEvent
}

func newHistoryRepositoryPgImpl(pgxPool *pgxpool.Pool) *historyRepositoryPg {
	return &historyRepositoryPg{
		pgxPool:          pgxPool,
		querier:          queries.New(pgxPool),
		chLock:           &sync.Mutex{},
		chEvents:         make(chan domain.HistoryEvent),
		externalChEvents: make(chan domain.HistoryEvent),
	}
}

func (h *historyRepositoryPg) AddRecord(
	ctx context.Context, record *domain.SpendRecord,
) (bool, error) {
	combo, err := json.Marshal(record.Combo)
	if err != nil {
		return false, err
	}

	count, err := h.querier.InsertSpendRecord(ctx, queries.InsertSpendRecordParams{
		ID:      record.ID,
		Country: record.Country,
		Date:    record.Date,
		Combo:   combo,
		Amount:  record.Amount,
		Spent:   record.Spent,
		Symbol:  record.Symbol,
	})
	if err != nil {
		return false, err
	}
	if count <= 0 {
		return false, nil
	}

	go h.publishEvent(domain.HistoryEvent{
		EventType: domain.SpendRecordAdded,
		Country:   record.Country,
		Record:    record,
	})

	return true, nil
}

func (h *historyRepositoryPg) GetHistory(
	ctx context.Context, country string,
) ([]*domain.SpendRecord, error) {
	rows, err := h.querier.GetSpendRecords(ctx, country)
	if err != nil {
		return nil, err
	}

	records := make([]*domain.SpendRecord, 0, len(rows))
	for _, row := range rows {
		combo := make([]domain.Coin, 0)
		if err := json.Unmarshal(row.Combo, &combo); err != nil {
			return nil, err
		}
		records = append(records, &domain.SpendRecord{
			ID:      row.ID,
			Country: row.Country,
			Date:    row.Date.UTC(),
			Combo:   combo,
			Amount:  row.Amount,
			Spent:   row.Spent,
			Symbol:  row.Symbol,
		})
	}
	return records, nil
}

func (h *historyRepositoryPg) ResetHistory(
	ctx context.Context, country string,
) (int, error) {
	count, err := h.querier.DeleteSpendRecords(ctx, country)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		go h.publishEvent(domain.HistoryEvent{
			EventType: domain.HistoryReset,
			Country:   country,
		})
	}

	return int(count), nil
}

func (h *historyRepositoryPg) GetEventChannel() chan domain.HistoryEvent {
	return h.externalChEvents
}

func (h *historyRepositoryPg) publishEvent(event domain.HistoryEvent) {
	h.chLock.Lock()
	defer h.chLock.Unlock()

	h.chEvents <- event
	// send over channel without blocking in case nobody is listening.
	select {
	case h.externalChEvents <- event:
	default:
	}
}

func (h *historyRepositoryPg) reset(ctx context.Context) error {
	return h.querier.ResetSpendRecords(ctx)
}

func (h *historyRepositoryPg) close() {
	close(h.chEvents)
	close(h.externalChEvents)
}
