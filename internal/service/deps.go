package service

import (
	"context"

	"storefront-service/internal/models"
)

// ProductStore is the catalog store contract. Satisfied by *store.Store.
type ProductStore interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProductsByManager(ctx context.Context, managerEmail string) ([]models.Product, error)
	DecrementQuantity(ctx context.Context, productID int64, by int) (bool, error)
}

// OrderStore is the order store contract. Satisfied by *store.Store.
// CreateOrder must enforce uniqueness on transaction id and report a
// conflicting insert as store.ErrDuplicateTransaction.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByTransactionID(ctx context.Context, transactionID string) (*models.Order, error)
	GetOrders(ctx context.Context) ([]models.Order, error)
	GetOrdersByCustomer(ctx context.Context, customerEmail string) ([]models.Order, error)
	GetOrdersByManager(ctx context.Context, managerEmail string) ([]models.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

// ProductCache is the read-through cache contract. Satisfied by
// *redisclient.Client. A miss is (nil, nil).
type ProductCache interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product) error
	InvalidateProduct(ctx context.Context, id int64) error
}

// OrderEvents publishes order lifecycle events. Satisfied by
// *broker.EventPublisher.
type OrderEvents interface {
	PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error
	PublishOrderDeleted(ctx context.Context, event *models.OrderDeletedEvent) error
}
