package service

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"storefront-service/internal/payment"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// CheckoutService turns a cart-like request into a hosted payment session.
type CheckoutService struct {
	gateway      payment.Gateway
	clientDomain string
	logger       *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(gateway payment.Gateway, clientDomain string) *CheckoutService {
	return &CheckoutService{
		gateway:      gateway,
		clientDomain: clientDomain,
		logger:       util.GetLogger(),
	}
}

// StartSessionRequest is the checkout initiation body.
type StartSessionRequest struct {
	ProductID   int64        `json:"productId" binding:"required"`
	Name        string       `json:"name" binding:"required"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
	Price       float64      `json:"price" binding:"required"`
	Quantity    int          `json:"quantity" binding:"required"`
	Customer    CustomerInfo `json:"customer" binding:"required"`
}

// CustomerInfo carries the buyer snapshot encoded into session metadata.
type CustomerInfo struct {
	Name  string `json:"customer"`
	Email string `json:"email" binding:"required,email"`
}

// StartSessionResponse carries the hosted payment page URL.
type StartSessionResponse struct {
	URL string `json:"url"`
}

// StartSession validates the request and creates a gateway-hosted checkout
// session. The product id and buyer snapshot ride along as session metadata
// so reconciliation never depends on a second read of mutable state.
func (s *CheckoutService) StartSession(ctx context.Context, req *StartSessionRequest) (*StartSessionResponse, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.StartSession")
	defer span.End()

	if req.ProductID <= 0 {
		util.CheckoutSessionsFailedTotal.WithLabelValues("validation").Inc()
		return nil, fmt.Errorf("%w: productId is required", ErrValidation)
	}
	if req.Price <= 0 {
		util.CheckoutSessionsFailedTotal.WithLabelValues("validation").Inc()
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if req.Quantity <= 0 {
		util.CheckoutSessionsFailedTotal.WithLabelValues("validation").Inc()
		return nil, fmt.Errorf("%w: quantity must be a positive integer", ErrValidation)
	}

	productID := strconv.FormatInt(req.ProductID, 10)
	sessionReq := &payment.SessionRequest{
		ProductName:        req.Name,
		ProductDescription: req.Description,
		ProductImage:       req.Image,
		UnitAmount:         int64(math.Round(req.Price * 100)),
		Quantity:           int64(req.Quantity),
		CustomerEmail:      req.Customer.Email,
		Metadata: map[string]string{
			payment.MetadataProductID:     productID,
			payment.MetadataCustomerName:  req.Customer.Name,
			payment.MetadataCustomerEmail: req.Customer.Email,
		},
		SuccessURL: fmt.Sprintf("%s/paymentSuccessful", s.clientDomain),
		CancelURL:  fmt.Sprintf("%s/product/%s", s.clientDomain, productID),
	}

	url, err := s.gateway.CreateSession(ctx, sessionReq)
	if err != nil {
		util.CheckoutSessionsFailedTotal.WithLabelValues("gateway_error").Inc()
		s.logger.Error("Failed to create checkout session",
			zap.Int64("product_id", req.ProductID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSessionCreation, err)
	}

	util.CheckoutSessionsCreatedTotal.Inc()
	s.logger.Info("Checkout session created",
		zap.Int64("product_id", req.ProductID),
		zap.String("customer_email", req.Customer.Email))

	return &StartSessionResponse{URL: url}, nil
}
