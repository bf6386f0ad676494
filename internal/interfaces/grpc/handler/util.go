package grpc_handler

import (
	"fmt"
	"math"
	"strings"

	"github.com/vulpemventures/coinpurse/internal/core/application"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"google.golang.org/protobuf/types/known/structpb"
)

func parseCountry(req *structpb.Struct) (string, error) {
	country := strings.ToUpper(req.GetFields()["country"].GetStringValue())
	if country == "" {
		return "", fmt.Errorf("missing country")
	}
	return country, nil
}

func parseInt64(req *structpb.Struct, key string) (int64, error) {
	val, ok := req.GetFields()[key]
	if !ok {
		return 0, fmt.Errorf("missing %s", key)
	}
	num, ok := val.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	if num.NumberValue != math.Trunc(num.NumberValue) ||
		math.Abs(num.NumberValue) > 1<<53 {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return int64(num.NumberValue), nil
}

func parseAmount(req *structpb.Struct) (int64, error) {
	amount, err := parseInt64(req, "amount")
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be a positive number")
	}
	return amount, nil
}

func parseStrategy(
	req *structpb.Struct, defaultStrategy domain.CoinSelectionStrategy,
) (domain.CoinSelectionStrategy, error) {
	name := req.GetFields()["strategy"].GetStringValue()
	if name == "" {
		return defaultStrategy, nil
	}
	return domain.ParseCoinSelectionStrategy(name)
}

func parseCombo(req *structpb.Struct) ([]domain.Coin, error) {
	list := req.GetFields()["combo"].GetListValue().GetValues()
	if len(list) <= 0 {
		return nil, fmt.Errorf("missing combo")
	}

	combo := make([]domain.Coin, 0, len(list))
	for i, v := range list {
		s := v.GetStructValue()
		if s == nil {
			return nil, fmt.Errorf("combo[%d] must be an object", i)
		}
		denomination, err := parseInt64(s, "denomination")
		if err != nil {
			return nil, fmt.Errorf("combo[%d]: %s", i, err)
		}
		quantity, err := parseInt64(s, "quantity")
		if err != nil {
			return nil, fmt.Errorf("combo[%d]: %s", i, err)
		}
		if denomination <= 0 || quantity <= 0 {
			return nil, fmt.Errorf(
				"combo[%d]: denomination and quantity must be positive numbers", i,
			)
		}
		combo = append(combo, domain.Coin{
			Denomination: denomination,
			Quantity:     quantity,
			Image:        s.GetFields()["image"].GetStringValue(),
		})
	}
	return combo, nil
}

func toStruct(m map[string]interface{}) (*structpb.Struct, error) {
	return structpb.NewStruct(m)
}

func coinsToList(coins []domain.Coin) []interface{} {
	list := make([]interface{}, 0, len(coins))
	for _, c := range coins {
		list = append(list, map[string]interface{}{
			"denomination": c.Denomination,
			"quantity":     c.Quantity,
			"image":        c.Image,
		})
	}
	return list
}

func currencyToMap(c domain.Currency) map[string]interface{} {
	denominations := make([]interface{}, 0, len(c.Denominations))
	for _, d := range c.Denominations {
		denominations = append(denominations, map[string]interface{}{
			"value": d.Value,
			"image": d.Image,
		})
	}
	return map[string]interface{}{
		"code":          c.Code,
		"name":          c.Name,
		"symbol":        c.Symbol,
		"flag":          c.Flag,
		"exponent":      c.Exponent,
		"denominations": denominations,
	}
}

func walletToMap(w *application.WalletInfo) map[string]interface{} {
	balance := w.Balance()
	return map[string]interface{}{
		"country":    w.Country,
		"coins":      coinsToList(w.Coins),
		"balance":    balance,
		"formatted":  w.Currency.FormatAmount(balance),
		"currency":   currencyToMap(w.Currency),
		"created_at": w.CreatedAt,
		"updated_at": w.UpdatedAt,
	}
}

func recordToMap(r *domain.SpendRecord) map[string]interface{} {
	currency := domain.CurrencyInfo(r.Country)
	return map[string]interface{}{
		"id":        r.ID,
		"country":   r.Country,
		"date":      r.Date.UnixMilli(),
		"combo":     coinsToList(r.Combo),
		"spent":     r.Spent,
		"remaining": r.Amount,
		"symbol":    r.Symbol,
		"formatted": currency.FormatAmount(r.Spent),
	}
}

func recordsToList(records []*domain.SpendRecord) []interface{} {
	list := make([]interface{}, 0, len(records))
	for _, r := range records {
		list = append(list, recordToMap(r))
	}
	return list
}

func calculationToMap(r *application.CalculationResult) map[string]interface{} {
	return map[string]interface{}{
		"country":   r.Country,
		"amount":    r.Amount,
		"strategy":  r.Strategy.String(),
		"combo":     coinsToList(r.Combo),
		"total":     r.Total,
		"found":     r.Found,
		"formatted": r.Formatted,
	}
}

func walletEventToMap(e domain.WalletEvent) map[string]interface{} {
	return map[string]interface{}{
		"event_type": e.EventType.String(),
		"country":    e.Country,
		"coins":      coinsToList(e.Coins),
	}
}

func historyEventToMap(e domain.HistoryEvent) map[string]interface{} {
	m := map[string]interface{}{
		"event_type": e.EventType.String(),
		"country":    e.Country,
	}
	if e.Record != nil {
		m["record"] = recordToMap(e.Record)
	}
	return m
}
