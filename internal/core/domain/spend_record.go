package domain

import (
	"time"

	"github.com/google/uuid"
)

// SpendRecord is the data structure representing a confirmed spend of a
// combo of coins, with the value left in the wallet right after it.
type SpendRecord struct {
	ID      string
	Country string
	Date    time.Time
	Combo   []Coin
	Amount  int64
	Spent   int64
	Symbol  string
}

// NewSpendRecord returns a new SpendRecord for the given combo, identified
// by a random uuid. The date is stored in UTC with millisecond precision.
func NewSpendRecord(
	country string, combo []Coin, remaining int64, date time.Time,
) *SpendRecord {
	return &SpendRecord{
		ID:      uuid.New().String(),
		Country: country,
		Date:    date.UTC().Truncate(time.Millisecond),
		Combo:   Coins(combo).Clone(),
		Amount:  remaining,
		Spent:   Coins(combo).Total(),
		Symbol:  CurrencySymbol(country),
	}
}

// CoinCount returns the number of coins spent.
func (r *SpendRecord) CoinCount() int64 {
	return Coins(r.Combo).Count()
}
