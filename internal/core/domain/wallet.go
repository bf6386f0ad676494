package domain

import (
	"fmt"
	"time"
)

var (
	ErrWalletNotFound       = fmt.Errorf("wallet not found")
	ErrWalletAlreadyExists  = fmt.Errorf("wallet already existing")
	ErrWalletMissingCountry = fmt.Errorf("missing wallet country")
	ErrInvalidDenomination  = fmt.Errorf("denomination not issued by wallet currency")
	ErrZeroDelta            = fmt.Errorf("coin quantity delta must not be zero")
	ErrInsufficientCoins    = fmt.Errorf("not enough coins")
)

// Wallet is the data structure representing the physical coins held for the
// currency issued by a certain country.
type Wallet struct {
	Country   string
	Coins     []Coin
	CreatedAt int64
	UpdatedAt int64
}

// NewWallet returns a new empty Wallet for the given country.
func NewWallet(country string) (*Wallet, error) {
	if country == "" {
		return nil, ErrWalletMissingCountry
	}
	if _, err := GetCurrency(country); err != nil {
		return nil, err
	}
	now := time.Now().Unix()
	return &Wallet{
		Country:   country,
		Coins:     make([]Coin, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Currency returns the currency of the wallet.
func (w *Wallet) Currency() Currency {
	return CurrencyInfo(w.Country)
}

// Inventory returns a copy of the coins held.
func (w *Wallet) Inventory() Coins {
	return Coins(w.Coins).Clone()
}

// Balance returns the total value of the coins held.
func (w *Wallet) Balance() int64 {
	return Coins(w.Coins).Total()
}

// AddCoins adds (or removes if delta is negative) coins of the given
// denomination. The resulting quantity can never go below zero.
func (w *Wallet) AddCoins(denomination, delta int64) error {
	if delta == 0 {
		return ErrZeroDelta
	}
	if !w.Currency().HasDenomination(denomination) {
		return fmt.Errorf(
			"%w: %d %s", ErrInvalidDenomination, denomination, w.Currency().Name,
		)
	}

	for i, coin := range w.Coins {
		if coin.Denomination != denomination {
			continue
		}
		if coin.Quantity+delta < 0 {
			return fmt.Errorf(
				"%w: %d coins of %d available", ErrInsufficientCoins,
				coin.Quantity, denomination,
			)
		}
		w.Coins[i].Quantity += delta
		w.touch()
		return nil
	}

	if delta < 0 {
		return fmt.Errorf(
			"%w: 0 coins of %d available", ErrInsufficientCoins, denomination,
		)
	}
	w.Coins = append(w.Coins, Coin{
		Denomination: denomination,
		Quantity:     delta,
		Image:        CoinImage(w.Country, denomination),
	})
	w.touch()
	return nil
}

// CanSpend returns whether every record of the given combo is covered by
// the coins held. Records with non-positive quantity are never spendable.
func (w *Wallet) CanSpend(combo []Coin) bool {
	used := make(map[int64]int64)
	for _, c := range combo {
		if c.Quantity <= 0 {
			return false
		}
		used[c.Denomination] += c.Quantity
	}
	inventory := Coins(w.Coins)
	for denomination, qty := range used {
		if qty > inventory.QuantityOf(denomination) {
			return false
		}
	}
	return true
}

// UseCoins decrements the quantity of every denomination in the given combo,
// never going below zero, and returns the value spent.
func (w *Wallet) UseCoins(combo []Coin) int64 {
	used := make(map[int64]int64)
	for _, c := range combo {
		used[c.Denomination] += c.Quantity
	}
	for i, coin := range w.Coins {
		qty, ok := used[coin.Denomination]
		if !ok || qty <= 0 {
			continue
		}
		spent := min(coin.Quantity, qty)
		w.Coins[i].Quantity -= spent
		used[coin.Denomination] -= spent
	}
	w.touch()
	return Coins(combo).Total()
}

// Reset removes all coins from the wallet.
func (w *Wallet) Reset() {
	w.Coins = make([]Coin, 0)
	w.touch()
}

func (w *Wallet) touch() {
	w.UpdatedAt = time.Now().Unix()
}
