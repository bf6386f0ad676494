package application

import (
	"errors"

	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

var invalidArgumentErrors = []error{
	domain.ErrCurrencyNotSupported,
	domain.ErrWalletMissingCountry,
	domain.ErrInvalidDenomination,
	domain.ErrZeroDelta,
	domain.ErrInsufficientCoins,
	domain.ErrUnknownStrategy,
	ErrEmptyCombo,
	ErrComboExceedsInventory,
	ErrInvalidComboCoin,
}

// IsInvalidArgument returns whether the error is caused by a malformed or
// unsatisfiable request rather than by a failure of the service.
func IsInvalidArgument(err error) bool {
	for _, e := range invalidArgumentErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// IsNotFound returns whether the error is caused by a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrWalletNotFound)
}
