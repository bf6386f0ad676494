package queries

import (
	"time"
)

type Wallet struct {
	Country   string
	CreatedAt int64
	UpdatedAt int64
}

type WalletCoin struct {
	FkWalletCountry string
	Position        int32
	Denomination    int64
	Quantity        int64
	Image           string
}

type SpendRecord struct {
	Seq     int64
	ID      string
	Country string
	Date    time.Time
	Combo   []byte
	Amount  int64
	Spent   int64
	Symbol  string
}
