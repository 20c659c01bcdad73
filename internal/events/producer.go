package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"

	"github.com/your-org/marketplace-backend/internal/domain/order"
)

const (
	OrderCreatedTopic = "order.created"
)

type OrderCreatedEvent struct {
	OrderID     string              `json:"order_id"`
	UserID      uint                `json:"user_id"`
	TotalAmount int64               `json:"total_amount"`
	StoreOrders []StoreOrderSummary `json:"store_orders"`
	CreatedAt   time.Time           `json:"created_at"`
	EventTime   time.Time           `json:"event_time"`
}

type StoreOrderSummary struct {
	StoreOrderID string `json:"store_order_id"`
	StoreID      string `json:"store_id"`
	Subtotal     int64  `json:"subtotal"`
	ItemCount    int    `json:"item_count"`
}

type KafkaProducer struct {
	producer sarama.SyncProducer
	logger   *logrus.Logger
}

func NewKafkaProducer(brokers []string, logger *logrus.Logger) (*KafkaProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Version = sarama.V2_6_0_0

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &KafkaProducer{
		producer: producer,
		logger:   logger,
	}, nil
}

// PublishOrderCreated announces a committed order. One event per umbrella
// order, keyed by order id so replays for a buyer stay ordered.
func (p *KafkaProducer) PublishOrderCreated(ctx context.Context, o *order.Order) error {
	event := OrderCreatedEvent{
		OrderID:     o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
		EventTime:   time.Now(),
	}
	for _, so := range o.StoreOrders {
		event.StoreOrders = append(event.StoreOrders, StoreOrderSummary{
			StoreOrderID: so.ID,
			StoreID:      so.StoreID,
			Subtotal:     so.Subtotal,
			ItemCount:    len(so.Items),
		})
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: OrderCreatedTopic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.WithError(err).Error("Failed to send message to Kafka")
		return err
	}

	p.logger.WithFields(logrus.Fields{
		"topic":     OrderCreatedTopic,
		"partition": partition,
		"offset":    offset,
		"order_id":  event.OrderID,
	}).Info("Event published to Kafka")

	return nil
}

func (p *KafkaProducer) Close() error {
	return p.producer.Close()
}
