package models

import "time"

// Product represents a catalog listing owned by a seller.
type Product struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description"`
	Image        string    `db:"image" json:"image"`
	Category     string    `db:"category" json:"category"`
	Price        float64   `db:"price" json:"price"`
	Quantity     int       `db:"quantity" json:"quantity"`
	ManagerName  string    `db:"manager_name" json:"manager_name"`
	ManagerEmail string    `db:"manager_email" json:"manager_email"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Order records a single reconciled payment. TransactionID carries the
// gateway's payment-intent id and is unique: one order per completed charge.
type Order struct {
	ID            int64     `db:"id" json:"id"`
	ProductID     int64     `db:"product_id" json:"product_id"`
	TransactionID string    `db:"transaction_id" json:"transaction_id"`
	CustomerEmail string    `db:"customer_email" json:"customer_email"`
	CustomerName  string    `db:"customer_name" json:"customer_name"`
	Status        string    `db:"status" json:"status"`
	ManagerName   string    `db:"manager_name" json:"manager_name"`
	ManagerEmail  string    `db:"manager_email" json:"manager_email"`
	ProductName   string    `db:"product_name" json:"product_name"`
	Category      string    `db:"category" json:"category"`
	Quantity      int       `db:"quantity" json:"quantity"`
	Price         float64   `db:"price" json:"price"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Order statuses. Fulfillment workflows downstream move orders past PENDING.
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)
