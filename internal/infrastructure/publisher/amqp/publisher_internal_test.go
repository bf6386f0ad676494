package amqppublisher

import (
	"context"
	"fmt"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) PublishWithContext(
	ctx context.Context, exchange, key string, mandatory, immediate bool,
	msg amqp.Publishing,
) error {
	args := m.Called(exchange, key, msg)
	return args.Error(0)
}

func (m *mockChannel) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestPublishSpendRecord(t *testing.T) {
	record := domain.NewSpendRecord(
		"US",
		[]domain.Coin{
			{Denomination: 25, Quantity: 2, Image: "coins/US/25.png"},
			{Denomination: 10, Quantity: 1},
		},
		40,
		time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	)

	t.Run("valid", func(t *testing.T) {
		ch := &mockChannel{}
		ch.On(
			"PublishWithContext", DefaultExchange, DefaultRoutingKey,
			mock.MatchedBy(func(msg amqp.Publishing) bool {
				decoded, err := SpendRecordMessageFromJSON(msg.Body)
				if err != nil {
					return false
				}
				return msg.MessageId == record.ID &&
					msg.ContentType == "application/json" &&
					decoded.ID == record.ID &&
					decoded.Spent == 60 &&
					decoded.Remaining == 40 &&
					decoded.Symbol == "$" &&
					len(decoded.Combo) == 2 &&
					decoded.Date().Equal(record.Date)
			}),
		).Return(nil)
		ch.On("Close").Return(nil)

		p := newPublisher(ch, DefaultExchange, DefaultRoutingKey)
		err := p.PublishSpendRecord(context.Background(), record)
		require.NoError(t, err)

		require.NoError(t, p.Close())
		ch.AssertExpectations(t)
	})

	t.Run("invalid", func(t *testing.T) {
		ch := &mockChannel{}
		ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything).
			Return(fmt.Errorf("channel closed"))

		p := newPublisher(ch, DefaultExchange, DefaultRoutingKey)
		err := p.PublishSpendRecord(context.Background(), record)
		require.Error(t, err)
		require.Contains(t, err.Error(), "channel closed")
	})
}
