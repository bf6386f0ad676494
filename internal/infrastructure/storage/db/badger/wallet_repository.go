package dbbadger

import (
	"context"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

type walletRepository struct {
	store            *badgerhold.Store
	chEvents         chan domain.WalletEvent
	externalChEvents chan domain.WalletEvent
	lock             *sync.Mutex
	// updateLock serializes read-modify-write cycles on wallets.
	updateLock *sync.Mutex

	log func(format string, a ...interface{})
}

func newWalletRepository(store *badgerhold.Store) *walletRepository {
	chEvents := make(chan domain.WalletEvent, 10)
	extrernalChEvents := make(chan domain.WalletEvent, 10)
	lock := &sync.Mutex{}
	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("wallet repository: %s", format)
		log.Debugf(format, a...)
	}
	return &walletRepository{
		store, chEvents, extrernalChEvents, lock, &sync.Mutex{}, logFn,
	}
}

func (r *walletRepository) CreateWallet(
	ctx context.Context, wallet *domain.Wallet,
) error {
	if err := r.insertWallet(ctx, wallet); err != nil {
		return err
	}

	go r.publishEvent(domain.WalletEvent{
		EventType: domain.WalletCreated,
		Country:   wallet.Country,
		Coins:     domain.Coins(wallet.Coins).Clone(),
	})

	return nil
}

func (r *walletRepository) GetWallet(
	ctx context.Context, country string,
) (*domain.Wallet, error) {
	return r.getWallet(ctx, country)
}

func (r *walletRepository) UpdateWallet(
	ctx context.Context, country string, eventType domain.WalletEventType,
	updateFn func(v *domain.Wallet) (*domain.Wallet, error),
) error {
	r.updateLock.Lock()
	defer r.updateLock.Unlock()

	wallet, err := r.getWallet(ctx, country)
	if err != nil {
		return err
	}

	updatedWallet, err := updateFn(wallet)
	if err != nil {
		return err
	}

	if err := r.updateWallet(ctx, updatedWallet); err != nil {
		return err
	}

	go r.publishEvent(domain.WalletEvent{
		EventType: eventType,
		Country:   country,
		Coins:     domain.Coins(updatedWallet.Coins).Clone(),
	})

	return nil
}

func (r *walletRepository) GetEventChannel() chan domain.WalletEvent {
	return r.externalChEvents
}

func (r *walletRepository) insertWallet(
	ctx context.Context, wallet *domain.Wallet,
) error {
	var err error

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxInsert(tx, wallet.Country, *wallet)
	} else {
		err = r.store.Insert(wallet.Country, *wallet)
	}
	if err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrWalletAlreadyExists
		}
		return err
	}

	return nil
}

func (r *walletRepository) getWallet(
	ctx context.Context, country string,
) (*domain.Wallet, error) {
	var err error
	var wallet domain.Wallet

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxGet(tx, country, &wallet)
	} else {
		err = r.store.Get(country, &wallet)
	}

	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	if wallet.Coins == nil {
		wallet.Coins = make([]domain.Coin, 0)
	}

	return &wallet, nil
}

func (r *walletRepository) updateWallet(
	ctx context.Context, wallet *domain.Wallet,
) error {
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		return r.store.TxUpdate(tx, wallet.Country, *wallet)
	}
	return r.store.Update(wallet.Country, *wallet)
}

func (r *walletRepository) publishEvent(event domain.WalletEvent) {
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

func (r *walletRepository) reset() {
	r.store.Badger().DropAll()
}

func (r *walletRepository) close() {
	r.store.Close()
	close(r.chEvents)
	close(r.externalChEvents)
}
