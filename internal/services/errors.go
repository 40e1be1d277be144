package services

import "errors"

// Sentinel errors for the checkout and order flows. Handlers map these
// to HTTP statuses; callers test them with errors.Is.
var (
	// ErrInvalidInput marks a request the client can correct.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstreamSession marks a failed session-creation call to the
	// payment processor.
	ErrUpstreamSession = errors.New("failed to create checkout session")
	// ErrPersistence marks an unavailable or failing order store.
	ErrPersistence = errors.New("order store error")
	// ErrNotFound marks an order lookup miss.
	ErrNotFound = errors.New("order not found")
	// ErrInvalidSignature marks a webhook whose signature did not
	// verify. Such events are rejected before any processing.
	ErrInvalidSignature = errors.New("webhook signature verification failed")
)
