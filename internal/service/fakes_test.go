package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/payment"
	"storefront-service/internal/store"
)

// fakeGateway implements payment.Gateway for testing
type fakeGateway struct {
	sessions    map[string]*payment.Session
	retrieveErr error
	createURL   string
	createErr   error
	lastRequest *payment.SessionRequest
}

func (f *fakeGateway) CreateSession(_ context.Context, req *payment.SessionRequest) (string, error) {
	f.lastRequest = req
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.createURL, nil
}

func (f *fakeGateway) RetrieveSession(_ context.Context, id string) (*payment.Session, error) {
	if f.retrieveErr != nil {
		return nil, f.retrieveErr
	}
	session, ok := f.sessions[id]
	if !ok {
		return nil, errors.New("no such session")
	}
	return session, nil
}

// fakeStore implements ProductStore and OrderStore with the same uniqueness
// and guarded-decrement semantics the SQL store enforces.
type fakeStore struct {
	mu           sync.Mutex
	products     map[int64]models.Product
	orders       map[string]models.Order // keyed by transaction id
	nextID       int64
	decrements   int
	missLookups  int // force GetOrderByTransactionID misses to provoke insert races
	productErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: make(map[int64]models.Product),
		orders:   make(map[string]models.Order),
	}
}

func (f *fakeStore) CreateProduct(_ context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	product.ID = f.nextID
	product.CreatedAt = time.Now()
	f.products[product.ID] = *product
	return nil
}

func (f *fakeStore) GetProductByID(_ context.Context, id int64) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.productErr != nil {
		return nil, f.productErr
	}
	product, ok := f.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &product, nil
}

func (f *fakeStore) GetProducts(_ context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	products := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		products = append(products, p)
	}
	return products, nil
}

func (f *fakeStore) GetProductsByManager(_ context.Context, managerEmail string) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var products []models.Product
	for _, p := range f.products {
		if p.ManagerEmail == managerEmail {
			products = append(products, p)
		}
	}
	return products, nil
}

func (f *fakeStore) DecrementQuantity(_ context.Context, productID int64, by int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[productID]
	if !ok || product.Quantity < by {
		return false, nil
	}
	product.Quantity -= by
	f.products[productID] = product
	f.decrements++
	return true, nil
}

func (f *fakeStore) CreateOrder(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.orders[order.TransactionID]; exists {
		return store.ErrDuplicateTransaction
	}
	f.nextID++
	order.ID = f.nextID
	order.CreatedAt = time.Now()
	f.orders[order.TransactionID] = *order
	return nil
}

func (f *fakeStore) GetOrderByTransactionID(_ context.Context, transactionID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.missLookups > 0 {
		f.missLookups--
		return nil, nil
	}
	order, ok := f.orders[transactionID]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (f *fakeStore) GetOrders(_ context.Context) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	orders := make([]models.Order, 0, len(f.orders))
	for _, o := range f.orders {
		orders = append(orders, o)
	}
	return orders, nil
}

func (f *fakeStore) GetOrdersByCustomer(_ context.Context, customerEmail string) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var orders []models.Order
	for _, o := range f.orders {
		if o.CustomerEmail == customerEmail {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (f *fakeStore) GetOrdersByManager(_ context.Context, managerEmail string) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var orders []models.Order
	for _, o := range f.orders {
		if o.ManagerEmail == managerEmail {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (f *fakeStore) DeleteOrder(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for txID, o := range f.orders {
		if o.ID == id {
			delete(f.orders, txID)
			return nil
		}
	}
	return store.ErrNotFound
}

// fakeCache implements ProductCache
type fakeCache struct {
	mu            sync.Mutex
	products      map[int64]models.Product
	invalidations []int64
	getErr        error
}

func newFakeCache() *fakeCache {
	return &fakeCache{products: make(map[int64]models.Product)}
}

func (f *fakeCache) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	product, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func (f *fakeCache) SetProduct(_ context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[product.ID] = *product
	return nil
}

func (f *fakeCache) InvalidateProduct(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.products, id)
	f.invalidations = append(f.invalidations, id)
	return nil
}

// fakeEvents implements OrderEvents
type fakeEvents struct {
	mu      sync.Mutex
	created []*models.OrderCreatedEvent
	deleted []*models.OrderDeletedEvent
	err     error
}

func (f *fakeEvents) PublishOrderCreated(_ context.Context, event *models.OrderCreatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, event)
	return nil
}

func (f *fakeEvents) PublishOrderDeleted(_ context.Context, event *models.OrderDeletedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, event)
	return nil
}
