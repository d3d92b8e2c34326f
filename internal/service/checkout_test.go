package service

import (
	"context"
	"errors"
	"testing"

	"storefront-service/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStartRequest() *StartSessionRequest {
	return &StartSessionRequest{
		ProductID:   42,
		Name:        "Walnut Desk",
		Description: "solid walnut, 140cm",
		Image:       "https://img.test/desk.png",
		Price:       25.00,
		Quantity:    1,
		Customer: CustomerInfo{
			Name:  "A",
			Email: "a@b.com",
		},
	}
}

func TestStartSessionBuildsGatewayRequest(t *testing.T) {
	gw := &fakeGateway{createURL: "https://pay.test/cs_123"}
	svc := NewCheckoutService(gw, "https://shop.test")

	resp, err := svc.StartSession(context.Background(), validStartRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.test/cs_123", resp.URL)

	req := gw.lastRequest
	require.NotNil(t, req)
	assert.Equal(t, int64(2500), req.UnitAmount)
	assert.Equal(t, int64(1), req.Quantity)
	assert.Equal(t, "a@b.com", req.CustomerEmail)
	assert.Equal(t, "42", req.Metadata[payment.MetadataProductID])
	assert.Equal(t, "A", req.Metadata[payment.MetadataCustomerName])
	assert.Equal(t, "a@b.com", req.Metadata[payment.MetadataCustomerEmail])
	assert.Equal(t, "https://shop.test/paymentSuccessful", req.SuccessURL)
	assert.Equal(t, "https://shop.test/product/42", req.CancelURL)
}

func TestStartSessionValidation(t *testing.T) {
	gw := &fakeGateway{createURL: "https://pay.test/cs_123"}
	svc := NewCheckoutService(gw, "https://shop.test")

	tests := []struct {
		name   string
		mutate func(*StartSessionRequest)
	}{
		{"missing product", func(r *StartSessionRequest) { r.ProductID = 0 }},
		{"zero price", func(r *StartSessionRequest) { r.Price = 0 }},
		{"negative price", func(r *StartSessionRequest) { r.Price = -3 }},
		{"zero quantity", func(r *StartSessionRequest) { r.Quantity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validStartRequest()
			tt.mutate(req)

			_, err := svc.StartSession(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Nil(t, gw.lastRequest)
		})
	}
}

func TestStartSessionGatewayFailure(t *testing.T) {
	gw := &fakeGateway{createErr: errors.New("stripe is down")}
	svc := NewCheckoutService(gw, "https://shop.test")

	_, err := svc.StartSession(context.Background(), validStartRequest())
	assert.ErrorIs(t, err, ErrSessionCreation)
}
