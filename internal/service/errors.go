package service

import "errors"

var (
	// ErrValidation marks a malformed or incomplete request.
	ErrValidation = errors.New("invalid request")
	// ErrUpstreamLookup marks a gateway that is unreachable or does not know
	// the session id.
	ErrUpstreamLookup = errors.New("payment gateway lookup failed")
	// ErrSessionCreation marks a gateway failure while creating a session.
	ErrSessionCreation = errors.New("checkout session creation failed")
	// ErrPaymentNotComplete marks a session that exists but was never paid.
	ErrPaymentNotComplete = errors.New("payment not complete")
	// ErrProductGone marks a completed payment whose product was deleted
	// after checkout started. No order is written for it.
	ErrProductGone = errors.New("product no longer exists")
)
