package amqppublisher

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/core/ports"
)

const (
	DefaultExchange   = "coinpurse"
	DefaultRoutingKey = "spend_records"

	publishTimeout = 5 * time.Second
)

type channel interface {
	PublishWithContext(
		ctx context.Context, exchange, key string, mandatory, immediate bool,
		msg amqp.Publishing,
	) error
	Close() error
}

type publisher struct {
	conn       *amqp.Connection
	channel    channel
	exchange   string
	routingKey string

	log func(format string, a ...interface{})
}

// NewEventPublisher connects to the broker at the given url and declares a
// durable direct exchange with a queue bound to it through the routing key.
func NewEventPublisher(
	url, exchange, routingKey string,
) (ports.EventPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if routingKey == "" {
		routingKey = DefaultRoutingKey
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := setup(ch, exchange, routingKey); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	p := newPublisher(ch, exchange, routingKey)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange, routingKey string) *publisher {
	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("amqp publisher: %s", format)
		log.Debugf(format, a...)
	}
	return &publisher{
		channel:    ch,
		exchange:   exchange,
		routingKey: routingKey,
		log:        logFn,
	}
}

func setup(ch *amqp.Channel, exchange, routingKey string) error {
	if err := ch.ExchangeDeclare(
		exchange, // name
		"direct", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(
		routingKey, // name
		true,       // durable
		false,      // delete when unused
		false,      // exclusive
		false,      // no-wait
		nil,        // arguments
	); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(
		routingKey, // queue name
		routingKey, // routing key
		exchange,   // exchange
		false,
		nil,
	); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

func (p *publisher) PublishSpendRecord(
	ctx context.Context, record *domain.SpendRecord,
) error {
	body, err := NewSpendRecordMessage(record).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.channel.PublishWithContext(
		ctx,
		p.exchange,   // exchange
		p.routingKey, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    record.ID,
			Timestamp:    time.Now(),
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	p.log("published spend record %s to exchange %s", record.ID, p.exchange)
	return nil
}

func (p *publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
