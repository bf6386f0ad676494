package amqppublisher

import (
	"encoding/json"
	"time"

	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

type coinMessage struct {
	Denomination int64 `json:"denomination"`
	Quantity     int64 `json:"quantity"`
}

// SpendRecordMessage is the body of the messages published for every new
// spend record.
type SpendRecordMessage struct {
	ID        string        `json:"id"`
	Country   string        `json:"country"`
	Spent     int64         `json:"spent"`
	Remaining int64         `json:"remaining"`
	Symbol    string        `json:"symbol"`
	Combo     []coinMessage `json:"combo"`
	Timestamp int64         `json:"timestamp"`
}

func NewSpendRecordMessage(record *domain.SpendRecord) *SpendRecordMessage {
	combo := make([]coinMessage, 0, len(record.Combo))
	for _, c := range record.Combo {
		combo = append(combo, coinMessage{c.Denomination, c.Quantity})
	}
	return &SpendRecordMessage{
		ID:        record.ID,
		Country:   record.Country,
		Spent:     record.Spent,
		Remaining: record.Amount,
		Symbol:    record.Symbol,
		Combo:     combo,
		Timestamp: record.Date.UnixMilli(),
	}
}

func (m *SpendRecordMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func (m *SpendRecordMessage) Date() time.Time {
	return time.UnixMilli(m.Timestamp).UTC()
}

func SpendRecordMessageFromJSON(data []byte) (*SpendRecordMessage, error) {
	var msg SpendRecordMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
