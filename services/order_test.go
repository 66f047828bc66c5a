package services

import (
	"testing"
	"time"

	"admission-portal/errors"

	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	resp  map[string]interface{}
	err   error
	delay time.Duration

	gotData map[string]interface{}
}

func (f *fakeGateway) Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error) {
	f.gotData = data
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.resp, f.err
}

func newTestOrderService(gw *fakeGateway, timeout time.Duration) *OrderService {
	return &OrderService{gateway: gw, keyID: "rzp_test_key", timeout: timeout}
}

func TestCreateOrder_EchoesAmountAndCurrency(t *testing.T) {
	gw := &fakeGateway{resp: map[string]interface{}{"id": "order_test_1"}}
	svc := newTestOrderService(gw, time.Second)

	order, err := svc.CreateOrder(CreateOrderRequest{Amount: 150000, Currency: "INR", RollNumber: "2026-CS-001"})
	require.NoError(t, err)

	require.Equal(t, "order_test_1", order.ID)
	require.Equal(t, int64(150000), order.Amount)
	require.Equal(t, "INR", order.Currency)
	require.Equal(t, "rzp_test_key", order.KeyID)
	require.NotEmpty(t, order.Receipt)

	// The gateway must be asked for exactly the requested paise.
	require.Equal(t, int64(150000), gw.gotData["amount"])
	require.Equal(t, "INR", gw.gotData["currency"])
}

func TestCreateOrder_DefaultsCurrencyToINR(t *testing.T) {
	gw := &fakeGateway{resp: map[string]interface{}{"id": "order_test_2"}}
	svc := newTestOrderService(gw, time.Second)

	order, err := svc.CreateOrder(CreateOrderRequest{Amount: 5000})
	require.NoError(t, err)
	require.Equal(t, "INR", order.Currency)
}

func TestCreateOrder_RejectsNonPositiveAmount(t *testing.T) {
	gw := &fakeGateway{resp: map[string]interface{}{"id": "order_never"}}
	svc := newTestOrderService(gw, time.Second)

	for _, amount := range []int64{0, -1, -150000} {
		_, err := svc.CreateOrder(CreateOrderRequest{Amount: amount})
		require.Error(t, err)
		require.True(t, errors.IsKind(err, errors.Invalid))
	}

	// The gateway must never have been called.
	require.Nil(t, gw.gotData)
}

func TestCreateOrder_GatewayFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.NewError("BAD_REQUEST_ERROR: amount exceeds maximum")}
	svc := newTestOrderService(gw, time.Second)

	_, err := svc.CreateOrder(CreateOrderRequest{Amount: 100})
	require.Error(t, err)
	require.True(t, errors.IsKind(err, errors.Gateway))
}

func TestCreateOrder_GatewayTimeout(t *testing.T) {
	gw := &fakeGateway{resp: map[string]interface{}{"id": "order_late"}, delay: 200 * time.Millisecond}
	svc := newTestOrderService(gw, 20*time.Millisecond)

	_, err := svc.CreateOrder(CreateOrderRequest{Amount: 100})
	require.Error(t, err)
	require.True(t, errors.IsKind(err, errors.Timeout))
}

func TestCreateOrder_MissingOrderID(t *testing.T) {
	gw := &fakeGateway{resp: map[string]interface{}{"status": "created"}}
	svc := newTestOrderService(gw, time.Second)

	_, err := svc.CreateOrder(CreateOrderRequest{Amount: 100})
	require.Error(t, err)
	require.True(t, errors.IsKind(err, errors.Gateway))
}
