package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/payment"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReconciliationService converts a completed payment session into a durable
// order, exactly once per transaction id, with a matching inventory decrement.
type ReconciliationService struct {
	products ProductStore
	orders   OrderStore
	cache    ProductCache
	gateway  payment.Gateway
	events   OrderEvents
	logger   *zap.Logger
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(
	products ProductStore,
	orders OrderStore,
	cache ProductCache,
	gateway payment.Gateway,
	events OrderEvents,
) *ReconciliationService {
	return &ReconciliationService{
		products: products,
		orders:   orders,
		cache:    cache,
		gateway:  gateway,
		events:   events,
		logger:   util.GetLogger(),
	}
}

// ReconcileResult identifies the order backing a completed payment.
type ReconcileResult struct {
	TransactionID string `json:"transactionId"`
	OrderID       int64  `json:"orderId"`
}

// Reconcile resolves a checkout session id to an order. A first call for a
// completed session inserts the order and decrements stock; any replay for
// the same transaction returns the existing order untouched. The existence
// check, the insert and the decrement run strictly in that order, and the
// unique constraint on transaction_id is what makes concurrent callbacks
// collapse to a single order.
func (s *ReconciliationService) Reconcile(ctx context.Context, sessionID string) (*ReconcileResult, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionId is required", ErrValidation)
	}

	ctx, span := util.StartSpan(ctx, "ReconciliationService.Reconcile")
	defer span.End()

	// Once started, the insert/decrement pair must finish even if the buyer
	// closes the tab mid-callback.
	ctx = context.WithoutCancel(ctx)

	start := time.Now()
	defer func() {
		util.ReconciliationLatency.Observe(time.Since(start).Seconds())
	}()

	session, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		util.ReconciliationsTotal.WithLabelValues("upstream_error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrUpstreamLookup, err)
	}

	existing, err := s.orders.GetOrderByTransactionID(ctx, session.PaymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up order by transaction: %w", err)
	}
	if existing != nil {
		return s.replay(session, existing), nil
	}

	if session.Status != payment.SessionStatusComplete {
		util.ReconciliationsTotal.WithLabelValues("not_complete").Inc()
		s.logger.Warn("Reconcile called on unpaid session",
			zap.String("session_id", sessionID),
			zap.String("status", session.Status))
		return nil, ErrPaymentNotComplete
	}

	productID, err := strconv.ParseInt(session.Metadata[payment.MetadataProductID], 10, 64)
	if err != nil {
		util.ReconciliationsTotal.WithLabelValues("product_gone").Inc()
		return nil, fmt.Errorf("%w: session carries no usable product reference", ErrProductGone)
	}

	product, err := s.products.GetProductByID(ctx, productID)
	if errors.Is(err, store.ErrNotFound) {
		util.ReconciliationsTotal.WithLabelValues("product_gone").Inc()
		s.logger.Warn("Completed payment references a deleted product",
			zap.String("transaction_id", session.PaymentIntentID),
			zap.Int64("product_id", productID))
		return nil, ErrProductGone
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	order := &models.Order{
		ProductID:     product.ID,
		TransactionID: session.PaymentIntentID,
		CustomerEmail: session.Metadata[payment.MetadataCustomerEmail],
		CustomerName:  session.Metadata[payment.MetadataCustomerName],
		Status:        models.OrderStatusPending,
		ManagerName:   product.ManagerName,
		ManagerEmail:  product.ManagerEmail,
		ProductName:   product.Name,
		Category:      product.Category,
		Quantity:      1,
		Price:         float64(session.AmountTotal) / 100,
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, store.ErrDuplicateTransaction) {
			// Lost the race against a concurrent callback; the winner's row
			// is the order.
			winner, lookupErr := s.orders.GetOrderByTransactionID(ctx, session.PaymentIntentID)
			if lookupErr != nil || winner == nil {
				return nil, fmt.Errorf("failed to resolve duplicate transaction %s: %v",
					session.PaymentIntentID, lookupErr)
			}
			return s.replay(session, winner), nil
		}
		util.ReconciliationsTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	s.settleInventory(ctx, order)

	util.OrdersCreatedTotal.Inc()
	util.ReconciliationsTotal.WithLabelValues("created").Inc()
	s.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.String("transaction_id", order.TransactionID),
		zap.Int64("product_id", order.ProductID))

	s.publishOrderCreated(ctx, order)

	return &ReconcileResult{
		TransactionID: order.TransactionID,
		OrderID:       order.ID,
	}, nil
}

// settleInventory decrements stock for a freshly persisted order. The order
// is already durable at this point, so a failed or empty decrement is
// recorded but never unwinds the order.
func (s *ReconciliationService) settleInventory(ctx context.Context, order *models.Order) {
	taken, err := s.products.DecrementQuantity(ctx, order.ProductID, order.Quantity)
	if err != nil {
		s.logger.Error("Failed to decrement product quantity",
			zap.Int64("order_id", order.ID),
			zap.Int64("product_id", order.ProductID),
			zap.Error(err))
		return
	}

	if !taken {
		util.InventoryOversoldTotal.Inc()
		s.logger.Warn("Product was already out of stock at reconciliation",
			zap.Int64("order_id", order.ID),
			zap.Int64("product_id", order.ProductID))
	} else {
		util.InventoryDecrementsTotal.Inc()
	}

	if err := s.cache.InvalidateProduct(ctx, order.ProductID); err != nil {
		s.logger.Warn("Failed to invalidate product cache",
			zap.Int64("product_id", order.ProductID),
			zap.Error(err))
	}
}

// replay resolves a repeated callback to the already-persisted order without
// touching the stores.
func (s *ReconciliationService) replay(session *payment.Session, order *models.Order) *ReconcileResult {
	util.ReconciliationReplaysTotal.Inc()
	util.ReconciliationsTotal.WithLabelValues("replayed").Inc()

	charged := float64(session.AmountTotal) / 100
	if charged != order.Price {
		s.logger.Warn("Replayed session amount differs from recorded order price",
			zap.String("transaction_id", order.TransactionID),
			zap.Float64("order_price", order.Price),
			zap.Float64("session_amount", charged))
	}

	s.logger.Info("Duplicate payment callback resolved to existing order",
		zap.String("transaction_id", order.TransactionID),
		zap.Int64("order_id", order.ID))

	return &ReconcileResult{
		TransactionID: order.TransactionID,
		OrderID:       order.ID,
	}
}

func (s *ReconciliationService) publishOrderCreated(ctx context.Context, order *models.Order) {
	event := &models.OrderCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderCreated,
			Timestamp: time.Now(),
		},
		OrderID:       order.ID,
		ProductID:     order.ProductID,
		TransactionID: order.TransactionID,
		CustomerEmail: order.CustomerEmail,
		ManagerEmail:  order.ManagerEmail,
		Price:         order.Price,
		Quantity:      order.Quantity,
	}

	if err := s.events.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderCreated event",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
	}
}
