package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stocktrack/internal/model"
	"stocktrack/internal/product"
	"stocktrack/internal/product/dto"
	"stocktrack/pkg/broker"

	"go.uber.org/zap"
)

// InventoryListener consumes order events and issues "out" movements for the
// sold items. Failed adjustments are logged and dropped; retry policy belongs
// to the producer side, not this layer.
type InventoryListener struct {
	consumer *broker.KafkaConsumer
	uc       product.UseCase
	logger   *zap.Logger
}

func NewInventoryListener(consumer *broker.KafkaConsumer, uc product.UseCase, log *zap.Logger) *InventoryListener {
	return &InventoryListener{
		consumer: consumer,
		uc:       uc,
		logger:   log,
	}
}

func (l *InventoryListener) Start(ctx context.Context) {
	l.logger.Info("starting inventory order-events listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping inventory order-events listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type OrderCreatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID    string             `json:"id"`
	Items []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

func (l *InventoryListener) processMessage(ctx context.Context, value []byte) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal order event", zap.Error(err))
		return
	}

	if event.EventType != "OrderCreated" {
		return
	}

	l.logger.Info("processing OrderCreated event",
		zap.String("event_id", event.EventID),
		zap.String("order_id", event.Payload.ID),
	)

	for _, item := range event.Payload.Items {
		note := fmt.Sprintf("order %s", event.Payload.ID)
		input := &dto.AdjustmentInput{
			Type: model.MovementOut,
			Qty:  item.Quantity,
			Note: &note,
		}

		if _, err := l.uc.Adjust(ctx, item.ProductID, input); err != nil {
			l.logger.Error("failed to adjust inventory for order item",
				zap.String("order_id", event.Payload.ID),
				zap.Int64("product_id", item.ProductID),
				zap.Error(err),
			)
		}
	}
}
