package domain

import (
	"fmt"
	"strings"
)

const (
	// MaxFirst spends the largest denominations first in a single greedy pass.
	MaxFirst CoinSelectionStrategy = iota
	// MinFirst explores combinations starting from the smallest denomination
	// and suggests one of the shortest found.
	MinFirst
)

var (
	ErrUnknownStrategy = fmt.Errorf("unknown coin selection strategy")

	strategyString = map[CoinSelectionStrategy]string{
		MaxFirst: "max-first",
		MinFirst: "min-first",
	}
)

type CoinSelectionStrategy int

func (s CoinSelectionStrategy) String() string {
	return strategyString[s]
}

// ParseCoinSelectionStrategy returns the strategy matching the given name.
// An empty name selects the default MaxFirst strategy.
func ParseCoinSelectionStrategy(name string) (CoinSelectionStrategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return MaxFirst, nil
	}
	for strategy, str := range strategyString {
		if str == name {
			return strategy, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
}

// CoinSelectionStrategies returns the names of all supported strategies.
func CoinSelectionStrategies() []string {
	return []string{MaxFirst.String(), MinFirst.String()}
}
