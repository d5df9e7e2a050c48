package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewOrderEvent(t *testing.T) {
	event := NewOrderEvent(EventTypeOrderPlaced, 3, 7, 20.00, map[string]interface{}{
		"items_count": 1,
	})

	if _, err := uuid.Parse(event.EventID); err != nil {
		t.Errorf("event_id is not a uuid: %q", event.EventID)
	}
	if event.EventType != EventTypeOrderPlaced {
		t.Errorf("unexpected event type: %s", event.EventType)
	}
	if event.OrderID != 3 || event.CustomerID != 7 || event.Total != 20.00 {
		t.Errorf("unexpected payload: %+v", event)
	}
	if time.Since(event.Timestamp) > time.Minute {
		t.Errorf("timestamp not recent: %v", event.Timestamp)
	}
}

func TestNewOrderEvent_UniqueIDs(t *testing.T) {
	first := NewOrderEvent(EventTypeOrderPlaced, 1, 1, 1.00, nil)
	second := NewOrderEvent(EventTypeOrderPlaced, 1, 1, 1.00, nil)

	if first.EventID == second.EventID {
		t.Error("event ids must be unique")
	}
}

func TestOrderEvent_JSONShape(t *testing.T) {
	event := NewOrderEvent(EventTypeOrderCancelled, 3, 7, 20.00, nil)

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for _, key := range []string{"event_id", "event_type", "order_id", "cust_id", "total_amount", "timestamp"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("key %q missing in payload: %s", key, data)
		}
	}
	if _, ok := decoded["metadata"]; ok {
		t.Error("empty metadata must be omitted")
	}
}
