package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

const (
	insertWalletQuery = `INSERT INTO wallet (country, created_at, updated_at)
VALUES (?, ?, ?)`
	getWalletQuery      = `SELECT country, created_at, updated_at FROM wallet WHERE country = ?`
	updateWalletQuery   = `UPDATE wallet SET updated_at = ? WHERE country = ?`
	getWalletCoinsQuery = `SELECT denomination, quantity, image FROM wallet_coin
WHERE fk_wallet_country = ? ORDER BY position`
	deleteWalletCoinsQuery = `DELETE FROM wallet_coin WHERE fk_wallet_country = ?`
	insertWalletCoinQuery  = `INSERT INTO wallet_coin (
    fk_wallet_country, position, denomination, quantity, image
) VALUES (?, ?, ?, ?, ?)`
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type walletRepository struct {
	db               *sql.DB
	chEvents         chan domain.WalletEvent
	externalChEvents chan domain.WalletEvent
	lock             *sync.Mutex

	log func(format string, a ...interface{})
}

func newWalletRepository(db *sql.DB) *walletRepository {
	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("wallet repository: %s", format)
		log.Debugf(format, a...)
	}
	return &walletRepository{
		db:               db,
		chEvents:         make(chan domain.WalletEvent),
		externalChEvents: make(chan domain.WalletEvent),
		lock:             &sync.Mutex{},
		log:              logFn,
	}
}

func (r *walletRepository) CreateWallet(
	ctx context.Context, wallet *domain.Wallet,
) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(
		ctx, insertWalletQuery, wallet.Country, wallet.CreatedAt, wallet.UpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrWalletAlreadyExists
		}
		return err
	}
	if err := insertCoins(ctx, tx, wallet); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
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
	return getWallet(ctx, r.db, country)
}

func (r *walletRepository) UpdateWallet(
	ctx context.Context, country string, eventType domain.WalletEventType,
	updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	wallet, err := getWallet(ctx, tx, country)
	if err != nil {
		return err
	}

	updatedWallet, err := updateFn(wallet)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(
		ctx, updateWalletQuery, updatedWallet.UpdatedAt, country,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, deleteWalletCoinsQuery, country); err != nil {
		return err
	}
	if err := insertCoins(ctx, tx, updatedWallet); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
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

func (r *walletRepository) close() {
	close(r.chEvents)
	close(r.externalChEvents)
}

func getWallet(
	ctx context.Context, q querier, country string,
) (*domain.Wallet, error) {
	wallet := &domain.Wallet{}
	if err := q.QueryRowContext(ctx, getWalletQuery, country).Scan(
		&wallet.Country, &wallet.CreatedAt, &wallet.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}

	rows, err := q.QueryContext(ctx, getWalletCoinsQuery, country)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wallet.Coins = make([]domain.Coin, 0)
	for rows.Next() {
		var coin domain.Coin
		if err := rows.Scan(
			&coin.Denomination, &coin.Quantity, &coin.Image,
		); err != nil {
			return nil, err
		}
		wallet.Coins = append(wallet.Coins, coin)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return wallet, nil
}

func insertCoins(ctx context.Context, q querier, wallet *domain.Wallet) error {
	for i, coin := range wallet.Coins {
		if _, err := q.ExecContext(
			ctx, insertWalletCoinQuery,
			wallet.Country, i, coin.Denomination, coin.Quantity, coin.Image,
		); err != nil {
			return err
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
