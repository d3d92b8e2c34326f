package store

import (
	"context"
	"database/sql"
	"errors"

	"storefront-service/internal/models"
)

// CreateOrder inserts a new order. The orders table enforces a unique
// constraint on transaction_id; a conflicting insert returns
// ErrDuplicateTransaction so callers can fall back to the existing row.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (product_id, transaction_id, customer_email, customer_name,
			status, manager_name, manager_email, product_name, category, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	err := s.db.GetContext(ctx, order, query,
		order.ProductID, order.TransactionID, order.CustomerEmail, order.CustomerName,
		order.Status, order.ManagerName, order.ManagerEmail,
		order.ProductName, order.Category, order.Quantity, order.Price)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateTransaction
	}
	return err
}

// GetOrderByID retrieves an order by ID
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderByTransactionID retrieves the order for a payment-intent id.
// Absence is a normal outcome and yields (nil, nil).
func (s *Store) GetOrderByTransactionID(ctx context.Context, transactionID string) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE transaction_id = $1", transactionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrders retrieves all orders
func (s *Store) GetOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders, "SELECT * FROM orders ORDER BY created_at DESC")
	return orders, err
}

// GetOrdersByCustomer retrieves orders placed by a buyer
func (s *Store) GetOrdersByCustomer(ctx context.Context, customerEmail string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE customer_email = $1 ORDER BY created_at DESC", customerEmail)
	return orders, err
}

// GetOrdersByManager retrieves orders for products owned by a seller
func (s *Store) GetOrdersByManager(ctx context.Context, managerEmail string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE manager_email = $1 ORDER BY created_at DESC", managerEmail)
	return orders, err
}

// DeleteOrder removes an order by ID
func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
