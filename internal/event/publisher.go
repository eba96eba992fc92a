package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher publishes marketplace events to RabbitMQ
type Publisher struct {
	conn              *RabbitMQConnection
	messagesPublished int64
	messagesFailed    int64
}

func NewPublisher(conn *RabbitMQConnection) *Publisher {
	return &Publisher{conn: conn}
}

// PublishPickupScheduled publishes a pickup event to the pickup_events queue
func (p *Publisher) PublishPickupScheduled(ctx context.Context, event PickupScheduledEvent) error {
	if err := p.publish(ctx, PickupEventsQueue, event); err != nil {
		return err
	}
	slog.Info("Pickup event published",
		"queue", PickupEventsQueue,
		"submission_id", event.SubmissionID,
		"pickup_date", event.PickupDate,
	)
	return nil
}

// PublishOrderPlaced publishes an order event to the order_events queue
func (p *Publisher) PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error {
	if err := p.publish(ctx, OrderEventsQueue, event); err != nil {
		return err
	}
	slog.Info("Order event published",
		"queue", OrderEventsQueue,
		"order_id", event.OrderID,
		"total_amount", event.TotalAmount,
	)
	return nil
}

// GetMetrics returns publisher metrics
func (p *Publisher) GetMetrics() map[string]any {
	return map[string]any{
		"messages_published": p.messagesPublished,
		"messages_failed":    p.messagesFailed,
	}
}

func (p *Publisher) publish(ctx context.Context, queue string, event any) error {
	// Ensure the queue exists
	_, err := p.conn.Channel.QueueDeclare(
		queue, // queue name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",    // exchange
		queue, // routing key (queue name)
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.messagesPublished++
	return nil
}
