package inmemory

import (
	"context"
	"sync"

	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

type walletInmemoryStore struct {
	wallets map[string]*domain.Wallet
	lock    *sync.RWMutex
}

type walletRepository struct {
	store            *walletInmemoryStore
	chEvents         chan domain.WalletEvent
	externalChEvents chan domain.WalletEvent
	chLock           *sync.Mutex
}

func newWalletRepository() *walletRepository {
	return &walletRepository{
		store: &walletInmemoryStore{
			wallets: make(map[string]*domain.Wallet),
			lock:    &sync.RWMutex{},
		},
		chEvents:         make(chan domain.WalletEvent),
		externalChEvents: make(chan domain.WalletEvent),
		chLock:           &sync.Mutex{},
	}
}

func (r *walletRepository) CreateWallet(
	_ context.Context, wallet *domain.Wallet,
) error {
	r.store.lock.Lock()
	defer r.store.lock.Unlock()

	if _, ok := r.store.wallets[wallet.Country]; ok {
		return domain.ErrWalletAlreadyExists
	}

	r.store.wallets[wallet.Country] = copyWallet(wallet)

	go r.publishEvent(domain.WalletEvent{
		EventType: domain.WalletCreated,
		Country:   wallet.Country,
		Coins:     domain.Coins(wallet.Coins).Clone(),
	})

	return nil
}

func (r *walletRepository) GetWallet(
	_ context.Context, country string,
) (*domain.Wallet, error) {
	r.store.lock.RLock()
	defer r.store.lock.RUnlock()

	return r.getWallet(country)
}

func (r *walletRepository) UpdateWallet(
	_ context.Context, country string, eventType domain.WalletEventType,
	updateFn func(*domain.Wallet) (*domain.Wallet, error),
) error {
	r.store.lock.Lock()
	defer r.store.lock.Unlock()

	wallet, err := r.getWallet(country)
	if err != nil {
		return err
	}

	updatedWallet, err := updateFn(wallet)
	if err != nil {
		return err
	}

	r.store.wallets[country] = copyWallet(updatedWallet)

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

// getWallet returns a copy of the stored wallet so that callers can never
// alter the store without going through UpdateWallet.
func (r *walletRepository) getWallet(country string) (*domain.Wallet, error) {
	wallet, ok := r.store.wallets[country]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	return copyWallet(wallet), nil
}

func (r *walletRepository) publishEvent(event domain.WalletEvent) {
	r.chLock.Lock()
	defer r.chLock.Unlock()

	r.chEvents <- event
	// send over channel without blocking in case nobody is listening.
	select {
	case r.externalChEvents <- event:
	default:
	}
}

func (r *walletRepository) reset() {
	r.store.lock.Lock()
	defer r.store.lock.Unlock()

	r.store.wallets = make(map[string]*domain.Wallet)
}

func (r *walletRepository) close() {
	close(r.chEvents)
	close(r.externalChEvents)
}

func copyWallet(w *domain.Wallet) *domain.Wallet {
	cp := *w
	cp.Coins = domain.Coins(w.Coins).Clone()
	return &cp
}
