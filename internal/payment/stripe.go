package payment

import (
	"context"
	"fmt"
	"time"

	"storefront-service/internal/util"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeGateway implements Gateway against Stripe Checkout.
type StripeGateway struct {
	api      *client.API
	currency string
}

// NewStripeGateway creates a gateway client with its own API handle rather
// than the package-global stripe key.
func NewStripeGateway(secretKey, currency string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &StripeGateway{
		api:      api,
		currency: currency,
	}
}

// CreateSession creates a hosted checkout session and returns its payment URL
func (g *StripeGateway) CreateSession(ctx context.Context, req *SessionRequest) (string, error) {
	start := time.Now()
	defer func() {
		util.GatewayRequestLatency.WithLabelValues("create_session").Observe(time.Since(start).Seconds())
	}()

	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name:        stripe.String(req.ProductName),
		Description: stripe.String(req.ProductDescription),
	}
	if req.ProductImage != "" {
		productData.Images = []*string{stripe.String(req.ProductImage)}
	}

	params := &stripe.CheckoutSessionParams{
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(g.currency),
					ProductData: productData,
					UnitAmount:  stripe.Int64(req.UnitAmount),
				},
				Quantity: stripe.Int64(req.Quantity),
			},
		},
		CustomerEmail: stripe.String(req.CustomerEmail),
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(req.SuccessURL),
		CancelURL:     stripe.String(req.CancelURL),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe session create failed: %w", err)
	}

	return session.URL, nil
}

// RetrieveSession fetches a checkout session by id
func (g *StripeGateway) RetrieveSession(ctx context.Context, id string) (*Session, error) {
	start := time.Now()
	defer func() {
		util.GatewayRequestLatency.WithLabelValues("retrieve_session").Observe(time.Since(start).Seconds())
	}()

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("stripe session retrieve failed: %w", err)
	}

	var paymentIntentID string
	if session.PaymentIntent != nil {
		paymentIntentID = session.PaymentIntent.ID
	}

	return &Session{
		ID:              session.ID,
		Status:          string(session.Status),
		PaymentIntentID: paymentIntentID,
		AmountTotal:     session.AmountTotal,
		Metadata:        session.Metadata,
	}, nil
}
