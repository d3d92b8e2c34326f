package payment

import "context"

// Session statuses as reported by the gateway.
const (
	SessionStatusOpen     = "open"
	SessionStatusComplete = "complete"
	SessionStatusExpired  = "expired"
)

// Metadata keys stored on the hosted session so reconciliation can recover
// the product and customer without re-reading mutable state.
const (
	MetadataProductID     = "productId"
	MetadataCustomerName  = "customerName"
	MetadataCustomerEmail = "customerEmail"
)

// Session is a read-only view of a gateway-hosted checkout session.
type Session struct {
	ID              string
	Status          string
	PaymentIntentID string
	AmountTotal     int64 // minor currency units
	Metadata        map[string]string
}

// SessionRequest describes a hosted checkout session to create.
type SessionRequest struct {
	ProductName        string
	ProductDescription string
	ProductImage       string
	UnitAmount         int64 // minor currency units
	Quantity           int64
	CustomerEmail      string
	Metadata           map[string]string
	SuccessURL         string
	CancelURL          string
}

// Gateway is the payment processor contract consumed by the services.
type Gateway interface {
	CreateSession(ctx context.Context, req *SessionRequest) (url string, err error)
	RetrieveSession(ctx context.Context, id string) (*Session, error)
}
