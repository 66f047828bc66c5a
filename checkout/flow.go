// Package checkout drives one client payment attempt through the gateway:
// order creation, the gateway's checkout UI, and receipt verification. The
// flow is a small state machine; every terminal state hands control back to
// the caller and only Settled may advance the user to a receipt view.
package checkout

import (
	"admission-portal/errors"
	"admission-portal/models"
	"admission-portal/services"
	"context"
)

// State is the position of a checkout attempt.
type State int

const (
	Idle State = iota
	OrderRequested
	GatewayOpen
	VerificationPending
	Settled
	Failed
	Abandoned
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case OrderRequested:
		return "order_requested"
	case GatewayOpen:
		return "gateway_open"
	case VerificationPending:
		return "verification_pending"
	case Settled:
		return "settled"
	case Failed:
		return "failed"
	case Abandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// ErrAbandoned is returned when the user dismisses the gateway UI without
// paying. No mutation has occurred and the flow may restart from Idle.
var ErrAbandoned = errors.NewError("checkout abandoned by user")

// Receipt is what the gateway hands back after a completed payment.
type Receipt struct {
	OrderID   string
	PaymentID string
	Signature string
}

// OrderCreator creates a payment intent with the gateway.
type OrderCreator interface {
	CreateOrder(req services.CreateOrderRequest) (*models.OrderIntent, error)
}

// Settler verifies a receipt and settles the payment.
type Settler interface {
	VerifyAndSettle(ctx context.Context, req services.SettleRequest) (*services.SettlementResult, error)
}

// GatewayUI presents the checkout UI for an order. It returns the signed
// receipt on completion, or ErrAbandoned when the user dismisses it.
type GatewayUI interface {
	Present(ctx context.Context, order models.OrderIntent) (Receipt, error)
}

// Flow orchestrates a single checkout attempt. A Flow is single-use; start a
// new one to retry after Failed or Abandoned.
type Flow struct {
	orders  OrderCreator
	settler Settler
	gateway GatewayUI
	state   State
}

// NewFlow returns an Idle flow over the given collaborators.
func NewFlow(orders OrderCreator, settler Settler, gateway GatewayUI) *Flow {
	return &Flow{orders: orders, settler: settler, gateway: gateway, state: Idle}
}

// State reports the flow's current position.
func (f *Flow) State() State {
	return f.state
}

// Run executes the whole attempt for a student purchasing a course. Course
// amounts are rupees; the gateway order is created in paise.
func (f *Flow) Run(ctx context.Context, rollNumber string, course models.CourseSelection) (*services.SettlementResult, error) {
	if f.state != Idle {
		return nil, errors.NewConflictError("checkout flow already used")
	}

	f.state = OrderRequested
	order, err := f.orders.CreateOrder(services.CreateOrderRequest{
		Amount:     int64(course.Amount * 100),
		Currency:   "INR",
		RollNumber: rollNumber,
	})
	if err != nil {
		f.state = Failed
		return nil, err
	}

	f.state = GatewayOpen
	receipt, err := f.gateway.Present(ctx, *order)
	if err != nil {
		if errors.Is(err, ErrAbandoned) {
			f.state = Abandoned
			return nil, ErrAbandoned
		}
		f.state = Failed
		return nil, err
	}

	f.state = VerificationPending
	result, err := f.settler.VerifyAndSettle(ctx, services.SettleRequest{
		OrderID:    receipt.OrderID,
		PaymentID:  receipt.PaymentID,
		Signature:  receipt.Signature,
		RollNumber: rollNumber,
		Course:     course,
	})
	if err != nil {
		f.state = Failed
		return nil, err
	}

	f.state = Settled
	return result, nil
}
