package postgresdb

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/infrastructure/storage/db/postgres/sqlc/queries"
)

const (
	//uniqueViolation is a postgres error code for unique constraint violation
	uniqueViolation = "23505"
)

type walletRepositoryPg struct {
	pgxPool          *pgxpool.Pool
	querier          *queries.Queries
	chLock           *sync.Mutex
	chEvents         chan domain.WalletEvent
	externalChEvents chan domain.WalletEvent
}

func newWalletRepositoryPgImpl(pgxPool *pgxpool.Pool) *walletRepositoryPg {
	return &walletRepositoryPg{
		pgxPool:          pgxPool,
		querier:          queries.New(pgxPool),
		chLock:           &sync.Mutex{},
		chEvents:         make(chan domain.WalletEvent),
		externalChEvents: make(chan domain.WalletEvent),
	}
}

func (w *walletRepositoryPg) CreateWallet(
	ctx context.Context, wallet *domain.Wallet,
) error {
	tx, err := w.pgxPool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	querierWithTx := w.querier.WithTx(tx)

	if err := querierWithTx.InsertWallet(ctx, queries.InsertWalletParams{
		Country:   wallet.Country,
		CreatedAt: wallet.CreatedAt,
		UpdatedAt: wallet.UpdatedAt,
	}); err != nil {
		if pqErr, ok := err.(*pgconn.PgError); pqErr != nil && ok && pqErr.Code == uniqueViolation {
			return domain.ErrWalletAlreadyExists
		}
		return err
	}

	if err := w.insertCoins(ctx, querierWithTx, wallet); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	go w.publishEvent(domain.WalletEvent{
		EventType: domain.WalletCreated,
		Country:   wallet.Country,
		Coins:     domain.Coins(wallet.Coins).Clone(),
	})

	return nil
}

func (w *walletRepositoryPg) GetWallet(
	ctx context.Context, country string,
) (*domain.Wallet, error) {
	return w.getWallet(ctx, w.querier, country, false)
}

// UpdateWallet locks the wallet row for the whole duration of updateFn, then
// rewrites its coins table.
func (w *walletRepositoryPg) UpdateWallet(
	ctx context.Context, country string, eventType domain.WalletEventType,
	updateFn func(v *domain.Wallet) (*domain.Wallet, error),
) error {
	conn, err := w.pgxPool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	querierWithTx := w.querier.WithTx(tx)

	wallet, err := w.getWallet(ctx, querierWithTx, country, true)
	if err != nil {
		return err
	}

	updatedWallet, err := updateFn(wallet)
	if err != nil {
		return err
	}

	if err := querierWithTx.UpdateWallet(ctx, queries.UpdateWalletParams{
		Country:   country,
		UpdatedAt: updatedWallet.UpdatedAt,
	}); err != nil {
		return err
	}

	if err := querierWithTx.DeleteWalletCoins(ctx, country); err != nil {
		return err
	}
	if err := w.insertCoins(ctx, querierWithTx, updatedWallet); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	go w.publishEvent(domain.WalletEvent{
		EventType: eventType,
		Country:   country,
		Coins:     domain.Coins(updatedWallet.Coins).Clone(),
	})

	return nil
}

func (w *walletRepositoryPg) GetEventChannel() chan domain.WalletEvent {
	return w.externalChEvents
}

func (w *walletRepositoryPg) getWallet(
	ctx context.Context, querier *queries.Queries, country string,
	forUpdate bool,
) (*domain.Wallet, error) {
	var row queries.Wallet
	var err error
	if forUpdate {
		row, err = querier.GetWalletForUpdate(ctx, country)
	} else {
		row, err = querier.GetWallet(ctx, country)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}

	coins, err := querier.GetWalletCoins(ctx, country)
	if err != nil {
		return nil, err
	}

	wallet := &domain.Wallet{
		Country:   row.Country,
		Coins:     make([]domain.Coin, 0, len(coins)),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	for _, c := range coins {
		wallet.Coins = append(wallet.Coins, domain.Coin{
			Denomination: c.Denomination,
			Quantity:     c.Quantity,
			Image:        c.Image,
		})
	}
	return wallet, nil
}

func (w *walletRepositoryPg) insertCoins(
	ctx context.Context, querier *queries.Queries, wallet *domain.Wallet,
) error {
	for i, coin := range wallet.Coins {
		if err := querier.InsertWalletCoin(ctx, queries.InsertWalletCoinParams{
			FkWalletCountry: wallet.Country,
			Position:        int32(i),
			Denomination:    coin.Denomination,
			Quantity:        coin.Quantity,
			Image:           coin.Image,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (w *walletRepositoryPg) publishEvent(event domain.WalletEvent) {
	w.chLock.Lock()
	defer w.chLock.Unlock()

	w.chEvents <- event
	// send over channel without blocking in case nobody is listening.
	select {
	case w.externalChEvents <- event:
	default:
	}
}

func (w *walletRepositoryPg) reset(ctx context.Context) error {
	return w.querier.ResetWallets(ctx)
}

func (w *walletRepositoryPg) close() {
	close(w.chEvents)
	close(w.externalChEvents)
}
