package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storefront-service/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateTransaction is returned when an order insert hits the
	// unique constraint on transaction_id.
	ErrDuplicateTransaction = errors.New("duplicate transaction")
)

const pqUniqueViolation = "23505"

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateProduct inserts a new product listing
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, description, image, category, price, quantity, manager_name, manager_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, product, query,
		product.Name, product.Description, product.Image, product.Category,
		product.Price, product.Quantity, product.ManagerName, product.ManagerEmail)
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProducts retrieves all products
func (s *Store) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products, "SELECT * FROM products ORDER BY id")
	return products, err
}

// GetProductsByManager retrieves products owned by a seller
func (s *Store) GetProductsByManager(ctx context.Context, managerEmail string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE manager_email = $1 ORDER BY id", managerEmail)
	return products, err
}

// DecrementQuantity applies a relative decrement so concurrent decrements for
// different transactions commute. The quantity > 0 guard keeps stock from
// going negative; the boolean reports whether a unit was actually taken.
func (s *Store) DecrementQuantity(ctx context.Context, productID int64, by int) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE products SET quantity = quantity - $1 WHERE id = $2 AND quantity >= $1",
		by, productID)
	if err != nil {
		return false, fmt.Errorf("failed to decrement quantity: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
