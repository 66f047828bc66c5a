package services

import (
	"admission-portal/config"
	"admission-portal/errors"
	"admission-portal/models"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/razorpay/razorpay-go"
)

// gatewayOrders is the slice of the Razorpay client the order service needs.
// Satisfied by razorpay.Client.Order.
type gatewayOrders interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// OrderService creates payment intents with the external gateway. It holds no
// mutable state, so calls may run concurrently across students.
type OrderService struct {
	gateway gatewayOrders
	keyID   string
	timeout time.Duration
}

// CreateOrderRequest represents an order creation request
type CreateOrderRequest struct {
	Amount     int64  // paise
	Currency   string
	RollNumber string
}

// NewOrderService creates an OrderService backed by Razorpay, using the
// credentials and timeout from the loaded config.
func NewOrderService() (*OrderService, error) {
	keyID := config.AppConfig.RazorpayKeyID
	keySecret := config.AppConfig.RazorpayKeySecret

	if keyID == "" || keySecret == "" {
		return nil, errors.NewInternalServerError("razorpay credentials not configured")
	}

	client := razorpay.NewClient(keyID, keySecret)

	return &OrderService{
		gateway: client.Order,
		keyID:   keyID,
		timeout: config.AppConfig.GatewayTimeout,
	}, nil
}

// CreateOrder validates the request and asks the gateway for an order. No
// local state is mutated on failure; a timed-out call surfaces as a Timeout
// error the client may retry.
func (s *OrderService) CreateOrder(req CreateOrderRequest) (*models.OrderIntent, error) {
	if req.Amount <= 0 {
		return nil, errors.NewInvalidParamsError("amount must be a positive integer in paise")
	}
	if req.Currency == "" {
		req.Currency = "INR"
	}

	receipt := fmt.Sprintf("rcpt_%s", uuid.NewString()[:8])

	data := map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  receipt,
	}

	resp, err := s.createWithTimeout(data)
	if err != nil {
		return nil, err
	}

	orderID, ok := resp["id"].(string)
	if !ok || orderID == "" {
		return nil, errors.NewGatewayError("gateway returned no order id", nil)
	}

	return &models.OrderIntent{
		ID:       orderID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  receipt,
		KeyID:    s.keyID,
	}, nil
}

// createWithTimeout runs the gateway call under the configured deadline. The
// razorpay client does not take a context, so the call is raced against a
// timer; a late result from a timed-out call is discarded.
func (s *OrderService) createWithTimeout(data map[string]interface{}) (map[string]interface{}, error) {
	type result struct {
		resp map[string]interface{}
		err  error
	}

	done := make(chan result, 1)
	go func() {
		resp, err := s.gateway.Create(data, nil)
		done <- result{resp, err}
	}()

	timeout := s.timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	select {
	case res := <-done:
		if res.err != nil {
			return nil, errors.NewGatewayError("error creating gateway order", res.err)
		}
		return res.resp, nil
	case <-time.After(timeout):
		return nil, errors.NewTimeoutError(fmt.Sprintf("gateway order creation exceeded %v", timeout))
	}
}
