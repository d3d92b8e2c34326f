package models

import "time"

// Event types
const (
	EventTypeOrderCreated = "ORDER_CREATED"
	EventTypeOrderDeleted = "ORDER_DELETED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedEvent published when reconciliation persists a new order.
// Fulfillment workflows consume this to start shipping.
type OrderCreatedEvent struct {
	BaseEvent
	OrderID       int64   `json:"order_id"`
	ProductID     int64   `json:"product_id"`
	TransactionID string  `json:"transaction_id"`
	CustomerEmail string  `json:"customer_email"`
	ManagerEmail  string  `json:"manager_email"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
}

// OrderDeletedEvent published when an order is administratively removed.
type OrderDeletedEvent struct {
	BaseEvent
	OrderID int64 `json:"order_id"`
}
