package postgresdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/jackc/pgx/v4/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/core/ports"

	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	postgresDriver             = "pgx"
	insecureDataSourceTemplate = "postgresql://%s:%s@%s:%d/%s?sslmode=disable"
)

type repoManager struct {
	pgxPool *pgxpool.Pool

	walletRepository  *walletRepositoryPg
	historyRepository *historyRepositoryPg

	walletEventHandlers  *handlerMap
	historyEventHandlers *handlerMap
}

func NewRepoManager(dbConfig DbConfig) (ports.RepoManager, error) {
	dataSource := insecureDataSourceStr(dbConfig)

	pgxPool, err := connect(dataSource)
	if err != nil {
		return nil, err
	}

	if err = migrateDb(dataSource, dbConfig.MigrationSourceURL); err != nil {
		return nil, err
	}

	rm := &repoManager{
		pgxPool:              pgxPool,
		walletRepository:     newWalletRepositoryPgImpl(pgxPool),
		historyRepository:    newHistoryRepositoryPgImpl(pgxPool),
		walletEventHandlers:  newHandlerMap(),
		historyEventHandlers: newHandlerMap(),
	}

	go rm.listenToWalletEvents()
	go rm.listenToHistoryEvents()

	return rm, nil
}

type DbConfig struct {
	DbUser             string
	DbPassword         string
	DbHost             string
	DbPort             int
	DbName             string
	MigrationSourceURL string
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
	ctx := context.Background()
	if err := rm.historyRepository.reset(ctx); err != nil {
		log.Warnf("postgres: failed to reset history: %s", err)
	}
	if err := rm.walletRepository.reset(ctx); err != nil {
		log.Warnf("postgres: failed to reset wallets: %s", err)
	}
}

func (rm *repoManager) Close() {
	rm.walletRepository.close()
	rm.historyRepository.close()

	rm.pgxPool.Close()
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

func connect(dataSource string) (*pgxpool.Pool, error) {
	return pgxpool.Connect(context.Background(), dataSource)
}

func migrateDb(dataSource, migrationSourceUrl string) error {
	pg := postgres.Postgres{}

	d, err := pg.Open(dataSource)
	if err != nil {
		return fmt.Errorf("opening migration db: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationSourceUrl,
		postgresDriver,
		d,
	)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}

// insecureDataSourceStr converts database configuration params to connection string
func insecureDataSourceStr(dbConfig DbConfig) string {
	return fmt.Sprintf(
		insecureDataSourceTemplate,
		dbConfig.DbUser,
		dbConfig.DbPassword,
		dbConfig.DbHost,
		dbConfig.DbPort,
		dbConfig.DbName,
	)
}
