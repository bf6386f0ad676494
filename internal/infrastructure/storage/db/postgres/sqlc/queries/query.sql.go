package queries

import (
	"context"
	"time"
)

const insertWallet = `INSERT INTO wallet (country, created_at, updated_at)
VALUES ($1, $2, $3)`

type InsertWalletParams struct {
	Country   string
	CreatedAt int64
	UpdatedAt int64
}

func (q *Queries) InsertWallet(ctx context.Context, arg InsertWalletParams) error {
	_, err := q.db.Exec(ctx, insertWallet, arg.Country, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getWallet = `SELECT country, created_at, updated_at FROM wallet
WHERE country = $1`

func (q *Queries) GetWallet(ctx context.Context, country string) (Wallet, error) {
	row := q.db.QueryRow(ctx, getWallet, country)
	var i Wallet
	err := row.Scan(&i.Country, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getWalletForUpdate = `SELECT country, created_at, updated_at FROM wallet
WHERE country = $1 FOR UPDATE`

func (q *Queries) GetWalletForUpdate(ctx context.Context, country string) (Wallet, error) {
	row := q.db.QueryRow(ctx, getWalletForUpdate, country)
	var i Wallet
	err := row.Scan(&i.Country, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const updateWallet = `UPDATE wallet SET updated_at = $2 WHERE country = $1`

type UpdateWalletParams struct {
	Country   string
	UpdatedAt int64
}

func (q *Queries) UpdateWallet(ctx context.Context, arg UpdateWalletParams) error {
	_, err := q.db.Exec(ctx, updateWallet, arg.Country, arg.UpdatedAt)
	return err
}

const getWalletCoins = `SELECT fk_wallet_country, position, denomination, quantity, image
FROM wallet_coin WHERE fk_wallet_country = $1 ORDER BY position`

func (q *Queries) GetWalletCoins(ctx context.Context, country string) ([]WalletCoin, error) {
	rows, err := q.db.Query(ctx, getWalletCoins, country)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]WalletCoin, 0)
	for rows.Next() {
		var i WalletCoin
		if err := rows.Scan(
			&i.FkWalletCountry,
			&i.Position,
			&i.Denomination,
			&i.Quantity,
			&i.Image,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteWalletCoins = `DELETE FROM wallet_coin WHERE fk_wallet_country = $1`

func (q *Queries) DeleteWalletCoins(ctx context.Context, country string) error {
	_, err := q.db.Exec(ctx, deleteWalletCoins, country)
	return err
}

const insertWalletCoin = `INSERT INTO wallet_coin (
    fk_wallet_country, position, denomination, quantity, image
) VALUES ($1, $2, $3, $4, $5)`

type InsertWalletCoinParams struct {
	FkWalletCountry string
	Position        int32
	Denomination    int64
	Quantity        int64
	Image           string
}

func (q *Queries) InsertWalletCoin(ctx context.Context, arg InsertWalletCoinParams) error {
	_, err := q.db.Exec(ctx, insertWalletCoin,
		arg.FkWalletCountry,
		arg.Position,
		arg.Denomination,
		arg.Quantity,
		arg.Image,
	)
	return err
}

const insertSpendRecord = `INSERT INTO spend_record (
    id, country, date, combo, amount, spent, symbol
) VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO NOTHING`

type InsertSpendRecordParams struct {
	ID      string
	Country string
	Date    time.Time
	Combo   []byte
	Amount  int64
	Spent   int64
	Symbol  string
}

func (q *Queries) InsertSpendRecord(ctx context.Context, arg InsertSpendRecordParams) (int64, error) {
	result, err := q.db.Exec(ctx, insertSpendRecord,
		arg.ID,
		arg.Country,
		arg.Date,
		arg.Combo,
		arg.Amount,
		arg.Spent,
		arg.Symbol,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getSpendRecords = `SELECT seq, id, country, date, combo, amount, spent, symbol
FROM spend_record WHERE country = $1 ORDER BY date DESC, seq DESC`

func (q *Queries) GetSpendRecords(ctx context.Context, country string) ([]SpendRecord, error) {
	rows, err := q.db.Query(ctx, getSpendRecords, country)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]SpendRecord, 0)
	for rows.Next() {
		var i SpendRecord
		if err := rows.Scan(
			&i.Seq,
			&i.ID,
			&i.Country,
			&i.Date,
			&i.Combo,
			&i.Amount,
			&i.Spent,
			&i.Symbol,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteSpendRecords = `DELETE FROM spend_record WHERE country = $1`

func (q *Queries) DeleteSpendRecords(ctx context.Context, country string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteSpendRecords, country)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const resetWallets = `TRUNCATE wallet, wallet_coin`

func (q *Queries) ResetWallets(ctx context.Context) error {
	_, err := q.db.Exec(ctx, resetWallets)
	return err
}

const resetSpendRecords = `TRUNCATE spend_record`

func (q *Queries) ResetSpendRecords(ctx context.Context) error {
	_, err := q.db.Exec(ctx, resetSpendRecords)
	return err
}
