package rest_interface

import (
	"github.com/vulpemventures/coinpurse/internal/core/application"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type coinDTO struct {
	Denomination int64  `json:"denomination" binding:"gt=0"`
	Quantity     int64  `json:"quantity" binding:"gt=0"`
	Image        string `json:"image,omitempty"`
}

type addCoinsRequest struct {
	Denomination int64 `json:"denomination" binding:"required"`
	Delta        int64 `json:"delta" binding:"required"`
}

type calculateRequest struct {
	Amount   int64  `json:"amount" binding:"required,gt=0"`
	Strategy string `json:"strategy"`
	Spend    bool   `json:"spend"`
}

type spendRequest struct {
	Combo []coinDTO `json:"combo" binding:"required,min=1,dive"`
}

type addRecordRequest struct {
	Combo     []coinDTO `json:"combo" binding:"required,min=1,dive"`
	Remaining int64     `json:"remaining" binding:"gte=0"`
}

type denominationResponse struct {
	Value int64  `json:"value"`
	Image string `json:"image"`
}

type currencyResponse struct {
	Code          string                 `json:"code"`
	Name          string                 `json:"name"`
	Symbol        string                 `json:"symbol"`
	Flag          string                 `json:"flag"`
	Exponent      int32                  `json:"exponent"`
	Denominations []denominationResponse `json:"denominations"`
}

type walletResponse struct {
	Country   string           `json:"country"`
	Coins     []coinDTO        `json:"coins"`
	Balance   int64            `json:"balance"`
	Formatted string           `json:"formatted"`
	Currency  currencyResponse `json:"currency"`
	CreatedAt int64            `json:"created_at"`
	UpdatedAt int64            `json:"updated_at"`
}

type recordResponse struct {
	ID        string    `json:"id"`
	Country   string    `json:"country"`
	Date      int64     `json:"date"`
	Combo     []coinDTO `json:"combo"`
	Spent     int64     `json:"spent"`
	Remaining int64     `json:"remaining"`
	Symbol    string    `json:"symbol"`
	Formatted string    `json:"formatted"`
}

type calculationResponse struct {
	Country   string          `json:"country"`
	Amount    int64           `json:"amount"`
	Strategy  string          `json:"strategy"`
	Combo     []coinDTO       `json:"combo"`
	Total     int64           `json:"total"`
	Found     bool            `json:"found"`
	Formatted string          `json:"formatted"`
	Record    *recordResponse `json:"record,omitempty"`
}

type historyResponse struct {
	Records []recordResponse `json:"records"`
}

type resetResponse struct {
	DeletedRecords int `json:"deleted_records"`
}

type infoResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func toCoins(dtos []coinDTO) []domain.Coin {
	coins := make([]domain.Coin, 0, len(dtos))
	for _, c := range dtos {
		coins = append(coins, domain.Coin{
			Denomination: c.Denomination,
			Quantity:     c.Quantity,
			Image:        c.Image,
		})
	}
	return coins
}

func fromCoins(coins []domain.Coin) []coinDTO {
	dtos := make([]coinDTO, 0, len(coins))
	for _, c := range coins {
		dtos = append(dtos, coinDTO{c.Denomination, c.Quantity, c.Image})
	}
	return dtos
}

func fromCurrency(c domain.Currency) currencyResponse {
	denominations := make([]denominationResponse, 0, len(c.Denominations))
	for _, d := range c.Denominations {
		denominations = append(denominations, denominationResponse{d.Value, d.Image})
	}
	return currencyResponse{
		Code:          c.Code,
		Name:          c.Name,
		Symbol:        c.Symbol,
		Flag:          c.Flag,
		Exponent:      c.Exponent,
		Denominations: denominations,
	}
}

func fromWallet(w *application.WalletInfo) walletResponse {
	balance := w.Balance()
	return walletResponse{
		Country:   w.Country,
		Coins:     fromCoins(w.Coins),
		Balance:   balance,
		Formatted: w.Currency.FormatAmount(balance),
		Currency:  fromCurrency(w.Currency),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func fromRecord(r *domain.SpendRecord) recordResponse {
	return recordResponse{
		ID:        r.ID,
		Country:   r.Country,
		Date:      r.Date.UnixMilli(),
		Combo:     fromCoins(r.Combo),
		Spent:     r.Spent,
		Remaining: r.Amount,
		Symbol:    r.Symbol,
		Formatted: domain.CurrencyInfo(r.Country).FormatAmount(r.Spent),
	}
}

func fromCalculation(r *application.CalculationResult) calculationResponse {
	return calculationResponse{
		Country:   r.Country,
		Amount:    r.Amount,
		Strategy:  r.Strategy.String(),
		Combo:     fromCoins(r.Combo),
		Total:     r.Total,
		Found:     r.Found,
		Formatted: r.Formatted,
	}
}
