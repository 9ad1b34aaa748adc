package events

import "time"

const (
	EventOrderCancelRequested = "ORDER_CANCEL_REQUESTED"
	EventOrderReturnRequested = "ORDER_RETURN_REQUESTED"
)

// NewOrderCancelRequested is emitted when a customer cancels an order
// through the assistant. Downstream systems (fulfillment, billing)
// consume it off the bus.
func NewOrderCancelRequested(orderId string, sessionId string) Event {
	return BaseEvent{
		Type: EventOrderCancelRequested,
		Data: map[string]interface{}{
			"order_id":   orderId,
			"session_id": sessionId,
		},
		OccurredAt: time.Now(),
	}
}

// NewOrderReturnRequested is emitted when a customer initiates a return
// for a delivered order through the assistant.
func NewOrderReturnRequested(orderId string, sessionId string) Event {
	return BaseEvent{
		Type: EventOrderReturnRequested,
		Data: map[string]interface{}{
			"order_id":   orderId,
			"session_id": sessionId,
		},
		OccurredAt: time.Now(),
	}
}
