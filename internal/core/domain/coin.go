package domain

import (
	"fmt"
	"sort"
)

// Coin is the data structure representing how many physical coins of a
// certain denomination are held. Denomination is expressed in the smallest
// unit of the currency, Image is an opaque display handle never interpreted
// by the wallet.
type Coin struct {
	Denomination int64  `json:"denomination"`
	Quantity     int64  `json:"quantity"`
	Image        string `json:"image"`
}

// Value returns the total value of the coin record.
func (c Coin) Value() int64 {
	return c.Denomination * c.Quantity
}

// MaxUsable returns how many coins of this record can be used without
// exceeding the given amount. It's always 0 for non positive denominations
// and never exceeds the available quantity.
func (c Coin) MaxUsable(amount int64) int64 {
	if c.Denomination <= 0 {
		return 0
	}
	return min(amount/c.Denomination, c.Quantity)
}

func (c Coin) String() string {
	return fmt.Sprintf("{%d: %d}", c.Denomination, c.Quantity)
}

// Coins is a list of coin records, either an inventory or a combo.
type Coins []Coin

// Total returns the sum of denomination x quantity over the list.
func (c Coins) Total() int64 {
	var total int64
	for _, coin := range c {
		total += coin.Value()
	}
	return total
}

// Count returns the total number of coins in the list.
func (c Coins) Count() int64 {
	var count int64
	for _, coin := range c {
		count += coin.Quantity
	}
	return count
}

// QuantityOf returns the quantity held for the given denomination, summing
// duplicated records if any.
func (c Coins) QuantityOf(denomination int64) int64 {
	var qty int64
	for _, coin := range c {
		if coin.Denomination == denomination {
			qty += coin.Quantity
		}
	}
	return qty
}

// Clone returns a copy of the list.
func (c Coins) Clone() Coins {
	clone := make(Coins, len(c))
	copy(clone, c)
	return clone
}

// Sorted returns a copy of the list sorted by denomination. The sort is
// stable so records with the same denomination keep their relative order.
func (c Coins) Sorted(descending bool) Coins {
	sorted := c.Clone()
	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return sorted[i].Denomination > sorted[j].Denomination
		}
		return sorted[i].Denomination < sorted[j].Denomination
	})
	return sorted
}
