package kafka

import (
	"time"

	"github.com/google/uuid"
)

// EventType определяет тип события заказа.
type EventType string

const (
	// EventTypeOrderPlaced — заказ успешно оформлен, остатки списаны.
	EventTypeOrderPlaced EventType = "order.placed"
	// EventTypeOrderPlaceFailed — оформление сорвалось в мутирующей фазе,
	// отработала best-effort компенсация.
	EventTypeOrderPlaceFailed EventType = "order.place_failed"
	// EventTypeOrderCancelled — заказ отменён, остатки возвращены.
	EventTypeOrderCancelled EventType = "order.cancelled"
)

// Topics для Kafka
const (
	TopicOrderEvents = "rims.order.events"
)

// OrderEvent представляет событие жизненного цикла заказа.
type OrderEvent struct {
	EventID    string                 `json:"event_id"`
	EventType  EventType              `json:"event_type"`
	OrderID    int64                  `json:"order_id,omitempty"`
	CustomerID int64                  `json:"cust_id"`
	Total      float64                `json:"total_amount"`
	Timestamp  time.Time              `json:"timestamp"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// NewOrderEvent создаёт событие заказа с уникальным event_id.
func NewOrderEvent(eventType EventType, orderID, customerID int64, total float64, metadata map[string]interface{}) *OrderEvent {
	return &OrderEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OrderID:    orderID,
		CustomerID: customerID,
		Total:      total,
		Timestamp:  time.Now().UTC(),
		Metadata:   metadata,
	}
}
