package checkout

import (
	"context"
	"testing"

	"admission-portal/errors"
	"admission-portal/models"
	"admission-portal/services"

	"github.com/stretchr/testify/require"
)

type fakeOrders struct {
	order *models.OrderIntent
	err   error
	got   services.CreateOrderRequest
}

func (f *fakeOrders) CreateOrder(req services.CreateOrderRequest) (*models.OrderIntent, error) {
	f.got = req
	return f.order, f.err
}

type fakeSettler struct {
	result *services.SettlementResult
	err    error
	got    *services.SettleRequest
}

func (f *fakeSettler) VerifyAndSettle(ctx context.Context, req services.SettleRequest) (*services.SettlementResult, error) {
	f.got = &req
	return f.result, f.err
}

type fakeGatewayUI struct {
	receipt Receipt
	err     error
}

func (f *fakeGatewayUI) Present(ctx context.Context, order models.OrderIntent) (Receipt, error) {
	return f.receipt, f.err
}

func testCourse() models.CourseSelection {
	return models.CourseSelection{
		Level:         "UG",
		Branch:        "Science",
		HonsSubject:   "Physics",
		Amount:        1500.00,
		PaymentStatus: models.CoursePaymentPending,
	}
}

func TestFlow_SettledPath(t *testing.T) {
	orders := &fakeOrders{order: &models.OrderIntent{ID: "order_1", Amount: 150000, Currency: "INR", KeyID: "rzp_k"}}
	settler := &fakeSettler{result: &services.SettlementResult{
		Entry: models.LedgerEntry{OrderID: "order_1", Amount: 1500.00, Currency: "INR"},
	}}
	gateway := &fakeGatewayUI{receipt: Receipt{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"}}

	flow := NewFlow(orders, settler, gateway)
	require.Equal(t, Idle, flow.State())

	result, err := flow.Run(context.Background(), "2026-CS-001", testCourse())
	require.NoError(t, err)
	require.Equal(t, Settled, flow.State())
	require.Equal(t, "order_1", result.Entry.OrderID)

	// Course fee of 1500 rupees becomes a 150000 paise order.
	require.Equal(t, int64(150000), orders.got.Amount)
	require.Equal(t, "INR", orders.got.Currency)

	// The settle request carries the gateway receipt untouched.
	require.Equal(t, "order_1", settler.got.OrderID)
	require.Equal(t, "pay_1", settler.got.PaymentID)
	require.Equal(t, "sig", settler.got.Signature)
	require.Equal(t, "2026-CS-001", settler.got.RollNumber)
}

func TestFlow_OrderCreationFails(t *testing.T) {
	orders := &fakeOrders{err: errors.NewGatewayError("gateway down", nil)}
	settler := &fakeSettler{}
	gateway := &fakeGatewayUI{}

	flow := NewFlow(orders, settler, gateway)
	_, err := flow.Run(context.Background(), "2026-CS-001", testCourse())
	require.Error(t, err)
	require.Equal(t, Failed, flow.State())
	require.Nil(t, settler.got, "settlement must never be attempted without an order")
}

func TestFlow_UserAbandonsGateway(t *testing.T) {
	orders := &fakeOrders{order: &models.OrderIntent{ID: "order_1", Amount: 150000, Currency: "INR"}}
	settler := &fakeSettler{}
	gateway := &fakeGatewayUI{err: ErrAbandoned}

	flow := NewFlow(orders, settler, gateway)
	_, err := flow.Run(context.Background(), "2026-CS-001", testCourse())
	require.ErrorIs(t, err, ErrAbandoned)
	require.Equal(t, Abandoned, flow.State())
	require.Nil(t, settler.got, "dismissal must not reach verification")
}

func TestFlow_VerificationFails(t *testing.T) {
	orders := &fakeOrders{order: &models.OrderIntent{ID: "order_1", Amount: 150000, Currency: "INR"}}
	settler := &fakeSettler{err: errors.NewUnauthorizedError("signature mismatch")}
	gateway := &fakeGatewayUI{receipt: Receipt{OrderID: "order_1", PaymentID: "pay_1", Signature: "bad"}}

	flow := NewFlow(orders, settler, gateway)
	_, err := flow.Run(context.Background(), "2026-CS-001", testCourse())
	require.Error(t, err)
	require.Equal(t, Failed, flow.State())
}

func TestFlow_SingleUse(t *testing.T) {
	orders := &fakeOrders{order: &models.OrderIntent{ID: "order_1", Amount: 150000, Currency: "INR"}}
	settler := &fakeSettler{result: &services.SettlementResult{}}
	gateway := &fakeGatewayUI{receipt: Receipt{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"}}

	flow := NewFlow(orders, settler, gateway)
	_, err := flow.Run(context.Background(), "2026-CS-001", testCourse())
	require.NoError(t, err)

	_, err = flow.Run(context.Background(), "2026-CS-001", testCourse())
	require.Error(t, err)
	require.True(t, errors.IsKind(err, errors.Conflict))
}

func TestState_String(t *testing.T) {
	states := map[State]string{
		Idle:                "idle",
		OrderRequested:      "order_requested",
		GatewayOpen:         "gateway_open",
		VerificationPending: "verification_pending",
		Settled:             "settled",
		Failed:              "failed",
		Abandoned:           "abandoned",
	}
	for state, want := range states {
		require.Equal(t, want, state.String())
	}
}
