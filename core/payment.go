package core

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PaymentConfirmer answers whether a fee payment has been received for an
// application. The admission officer consults it on the awaiting_payment
// branch; production systems back it with the real payment provider, tests
// and demos use StaticPayments.
type PaymentConfirmer interface {
	Confirm(ctx context.Context, applicationID string) (*PaymentDetails, bool)
}

// NoPayments is a PaymentConfirmer that never confirms. It is the default:
// an application parks at awaiting_payment until the caller re-enters the
// workflow with a confirmer that knows about the payment.
type NoPayments struct{}

// Confirm implements PaymentConfirmer.
func (NoPayments) Confirm(context.Context, string) (*PaymentDetails, bool) { return nil, false }

// StaticPayments is an in-memory PaymentConfirmer fed by explicit Mark calls.
// Safe for concurrent use.
type StaticPayments struct {
	mu       sync.RWMutex
	payments map[string]*PaymentDetails
}

// NewStaticPayments constructs an empty StaticPayments.
func NewStaticPayments() *StaticPayments {
	return &StaticPayments{payments: make(map[string]*PaymentDetails)}
}

// Mark records a received payment for an application. A zero amount is
// allowed; missing method and transaction id are filled with defaults.
func (s *StaticPayments) Mark(applicationID string, amount int, method string) *PaymentDetails {
	if method == "" {
		method = "Online"
	}
	pd := &PaymentDetails{
		AmountPaid:    amount,
		Method:        method,
		TransactionID: uuid.NewString(),
		PaidAt:        time.Now().UTC(),
	}
	s.mu.Lock()
	s.payments[applicationID] = pd
	s.mu.Unlock()
	return pd
}

// Confirm implements PaymentConfirmer.
func (s *StaticPayments) Confirm(_ context.Context, applicationID string) (*PaymentDetails, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pd, ok := s.payments[applicationID]
	if !ok {
		return nil, false
	}
	clone := *pd
	return &clone, true
}
