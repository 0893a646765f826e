package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/orderflow/order-fulfillment/internal/order/domain"
	"github.com/orderflow/order-fulfillment/pkg/tracing"
)

// Publisher fans confirmed orders out to the broker. Single attempt: a
// failed write is the caller's to log, never to retry here.
type Publisher struct {
	log    *slog.Logger
	writer *kafka.Writer
}

func NewPublisher(log *slog.Logger, brokers []string, topic string) *Publisher {
	return &Publisher{
		log: log,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *Publisher) PublishOrderConfirmed(ctx context.Context, o domain.Order) error {
	payload, err := json.Marshal(domain.OrderConfirmed{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		ProductID:  o.ProductID,
		Quantity:   o.Quantity,
		Timestamp:  o.Timestamp,
	})
	if err != nil {
		return err
	}

	headers := []kafka.Header{{Key: "event_type", Value: []byte("OrderConfirmed")}}
	headers = tracing.InjectKafkaHeaders(ctx, headers)

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(o.ID),
		Value:   payload,
		Headers: headers,
	}); err != nil {
		return err
	}
	p.log.Info("order event published", "order_id", o.ID, "type", "OrderConfirmed")
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
