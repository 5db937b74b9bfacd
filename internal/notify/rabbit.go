package notify

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/i474232898/business-hours/internal/business"
)

// StatusChangedTopic is the topic suffix status transitions are published on.
const StatusChangedTopic = "status_changed"

func topicName(prefix, topic string) string {
	return fmt.Sprintf("%s_%s", prefix, topic)
}

// RabbitPublisher publishes status changes to a durable topic exchange.
type RabbitPublisher struct {
	conn *amqp.Connection
	name string
}

// NewRabbitPublisher declares the exchange and a durable queue bound to it.
func NewRabbitPublisher(conn *amqp.Connection, prefix string) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	defer ch.Close()

	name := topicName(prefix, StatusChangedTopic)
	if err := ch.ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-delete
		false,   // internal
		false,   // noWait
		nil,     // arguments
	); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", name, err)
	}
	if _, err := ch.QueueDeclare(
		name,  // name of the queue
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // noWait
		nil,   // arguments
	); err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", name, err)
	}
	if err := ch.QueueBind(name, name, name, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue %s: %w", name, err)
	}
	return &RabbitPublisher{conn: conn, name: name}, nil
}

func encodeChange(change business.StatusChange) (amqp.Publishing, error) {
	body, err := sonic.Marshal(change)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    change.ID.String(),
		Timestamp:    change.At,
		Body:         body,
	}, nil
}

func (p *RabbitPublisher) PublishStatusChange(ctx context.Context, change business.StatusChange) error {
	msg, err := encodeChange(change)
	if err != nil {
		return err
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	return ch.PublishWithContext(ctx, p.name, p.name, false, false, msg)
}

// NopPublisher drops every change. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishStatusChange(context.Context, business.StatusChange) error { return nil }
