package sqlitedb

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/core/ports"

	_ "modernc.org/sqlite"
)

const (
	sqliteDriver   = "sqlite"
	inMemoryDbPath = ":memory:"
	dsnTemplate    = "file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
)

//go:embed migration/*.sql
var migrations embed.FS

type repoManager struct {
	db *sql.DB

	walletRepository  *walletRepository
	historyRepository *historyRepository

	walletEventHandlers  *handlerMap
	historyEventHandlers *handlerMap
}

// NewRepoManager opens (or creates) the sqlite db file at the given path,
// or an in-memory db if the path is empty, and applies the embedded
// migrations.
func NewRepoManager(dbPath string) (ports.RepoManager, error) {
	if len(dbPath) <= 0 {
		dbPath = inMemoryDbPath
	}

	db, err := sql.Open(sqliteDriver, fmt.Sprintf(dsnTemplate, dbPath))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// sqlite allows one writer at a time, and an in-memory db lives only as
	// long as its connection.
	db.SetMaxOpenConns(1)

	if err := migrateDb(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating sqlite db: %w", err)
	}

	rm := &repoManager{
		db:                   db,
		walletRepository:     newWalletRepository(db),
		historyRepository:    newHistoryRepository(db),
		walletEventHandlers:  newHandlerMap(),
		historyEventHandlers: newHandlerMap(),
	}

	go rm.listenToWalletEvents()
	go rm.listenToHistoryEvents()

	return rm, nil
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
	for _, table := range []string{"spend_record", "wallet_coin", "wallet"} {
		if _, err := rm.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			log.Warnf("sqlite: failed to reset table %s: %s", table, err)
		}
	}
}

func (rm *repoManager) Close() {
	rm.walletRepository.close()
	rm.historyRepository.close()

	rm.db.Close()
}

func migrateDb(db *sql.DB) error {
	src, err := iofs.New(migrations, "migration")
	if err != nil {
		return err
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, sqliteDriver, driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
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
