package domain

import (
	"context"
)

const (
	WalletCreated WalletEventType = iota
	WalletCoinsAdded
	WalletCoinsUsed
	WalletReset
)

var (
	walletTypeString = map[WalletEventType]string{
		WalletCreated:    "WalletCreated",
		WalletCoinsAdded: "WalletCoinsAdded",
		WalletCoinsUsed:  "WalletCoinsUsed",
		WalletReset:      "WalletReset",
	}
)

type WalletEventType int

func (t WalletEventType) String() string {
	return walletTypeString[t]
}

// WalletEvent holds info about an event occured within the repository.
type WalletEvent struct {
	EventType WalletEventType
	Country   string
	Coins     []Coin
}

// WalletRepository is the abstraction for any kind of database intended to
// persist Wallets, one per country.
type WalletRepository interface {
	// CreateWallet stores a new Wallet if not yet existing.
	// Generates a WalletCreated event if successfull.
	CreateWallet(ctx context.Context, wallet *Wallet) error
	// GetWallet returns the wallet of the given country, if existing.
	GetWallet(ctx context.Context, country string) (*Wallet, error)
	// UpdateWallet allows to make multiple changes to the Wallet of the given
	// country in a transactional way.
	// Generates an event of the given type if successfull.
	UpdateWallet(
		ctx context.Context, country string, eventType WalletEventType,
		updateFn func(w *Wallet) (*Wallet, error),
	) error
	// GetEventChannel returns the channel of WalletEvents.
	GetEventChannel() chan WalletEvent
}
