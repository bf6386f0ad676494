package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

const defaultCurrency = "KR"

var (
	ErrCurrencyNotSupported = fmt.Errorf("currency not supported")

	currencies = map[string]Currency{
		"KR": {
			Code:     "KR",
			Name:     "KRW",
			Symbol:   "₩",
			Flag:     "🇰🇷",
			Exponent: 0,
			Denominations: []Denomination{
				{500, "coins/KR/500.png"},
				{100, "coins/KR/100.png"},
				{50, "coins/KR/50.png"},
				{10, "coins/KR/10.png"},
			},
		},
		"JP": {
			Code:     "JP",
			Name:     "JPY",
			Symbol:   "¥",
			Flag:     "🇯🇵",
			Exponent: 0,
			Denominations: []Denomination{
				{500, "coins/JP/500.png"},
				{100, "coins/JP/100.png"},
				{50, "coins/JP/50.png"},
				{10, "coins/JP/10.png"},
				{5, "coins/JP/5.png"},
				{1, "coins/JP/1.png"},
			},
		},
		"US": {
			Code:     "US",
			Name:     "USD",
			Symbol:   "$",
			Flag:     "🇺🇸",
			Exponent: 2,
			Denominations: []Denomination{
				{100, "coins/US/100.png"},
				{50, "coins/US/50.png"},
				{25, "coins/US/25.png"},
				{10, "coins/US/10.png"},
				{5, "coins/US/5.png"},
				{1, "coins/US/1.png"},
			},
		},
	}
)

// Denomination is a coin face value of a currency, in its smallest unit.
type Denomination struct {
	Value int64
	Image string
}

// Currency holds the metadata of a supported currency, identified by the
// code of the country issuing it.
type Currency struct {
	Code          string
	Name          string
	Symbol        string
	Flag          string
	Exponent      int32
	Denominations []Denomination
}

// HasDenomination returns whether the currency issues coins of the given
// face value.
func (c Currency) HasDenomination(value int64) bool {
	for _, d := range c.Denominations {
		if d.Value == value {
			return true
		}
	}
	return false
}

// FormatAmount renders an amount expressed in the smallest unit of the
// currency, ie. 160 cents is rendered as $1.60.
func (c Currency) FormatAmount(amount int64) string {
	value := decimal.New(amount, -c.Exponent)
	return c.Symbol + value.StringFixed(c.Exponent)
}

// GetCurrency returns the currency issued by the given country.
func GetCurrency(code string) (*Currency, error) {
	currency, ok := currencies[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCurrencyNotSupported, code)
	}
	return &currency, nil
}

// CurrencyInfo returns the currency issued by the given country, falling
// back to the default one if not supported.
func CurrencyInfo(code string) Currency {
	if currency, ok := currencies[code]; ok {
		return currency
	}
	return currencies[defaultCurrency]
}

// CurrencySymbol returns the symbol of the currency issued by the given
// country, or an empty string if not supported.
func CurrencySymbol(code string) string {
	return currencies[code].Symbol
}

// CoinImage returns the display handle of a coin of the given currency, or
// an empty string if unknown.
func CoinImage(code string, denomination int64) string {
	for _, d := range currencies[code].Denominations {
		if d.Value == denomination {
			return d.Image
		}
	}
	return ""
}

// ListCurrencies returns all supported currencies sorted by code.
func ListCurrencies() []Currency {
	list := make([]Currency, 0, len(currencies))
	for _, c := range currencies {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Code < list[j].Code
	})
	return list
}
