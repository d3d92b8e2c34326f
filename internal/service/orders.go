package service

import (
	"context"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order queries and administrative deletion.
type OrderService struct {
	orders OrderStore
	events OrderEvents
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orders OrderStore, events OrderEvents) *OrderService {
	return &OrderService{
		orders: orders,
		events: events,
		logger: util.GetLogger(),
	}
}

// ListOrders returns orders filtered by customer or manager email; with no
// filter it returns everything.
func (s *OrderService) ListOrders(ctx context.Context, customerEmail, managerEmail string) ([]models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.ListOrders")
	defer span.End()

	switch {
	case customerEmail != "":
		return s.orders.GetOrdersByCustomer(ctx, customerEmail)
	case managerEmail != "":
		return s.orders.GetOrdersByManager(ctx, managerEmail)
	default:
		return s.orders.GetOrders(ctx)
	}
}

// DeleteOrder removes an order by id
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	ctx, span := util.StartSpan(ctx, "OrderService.DeleteOrder")
	defer span.End()

	if err := s.orders.DeleteOrder(ctx, id); err != nil {
		return err
	}

	util.OrdersDeletedTotal.Inc()
	s.logger.Info("Order deleted", zap.Int64("order_id", id))

	event := &models.OrderDeletedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderDeleted,
			Timestamp: time.Now(),
		},
		OrderID: id,
	}
	if err := s.events.PublishOrderDeleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderDeleted event",
			zap.Int64("order_id", id),
			zap.Error(err))
	}

	return nil
}
