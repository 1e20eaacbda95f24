package services

import (
	"fmt"
	"math"
	"sync"
)

// MockRazorpayService is a mock implementation of RazorpayInterface for
// testing. It creates deterministic gateway orders and verifies signatures
// with the same HMAC scheme as the real gateway, using a test secret.
type MockRazorpayService struct {
	secret      string
	failCreates bool
	orders      map[string]GatewayOrder
	nextID      int
	mu          sync.Mutex
}

// NewMockRazorpayService creates a new mock gateway with the given secret
func NewMockRazorpayService(secret string) *MockRazorpayService {
	return &MockRazorpayService{
		secret: secret,
		orders: make(map[string]GatewayOrder),
	}
}

// SetAsMockForTesting sets this mock as the global Razorpay service instance for testing
func (m *MockRazorpayService) SetAsMockForTesting() {
	SetRazorpayService(m)
}

// FailCreates makes every subsequent CreateOrder call return an error,
// simulating a gateway outage
func (m *MockRazorpayService) FailCreates(fail bool) {
	m.mu.Lock()
	m.failCreates = fail
	m.mu.Unlock()
}

// CreateOrder simulates registering an order with the gateway
func (m *MockRazorpayService) CreateOrder(amount float64, receipt string) (GatewayOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failCreates {
		return GatewayOrder{}, fmt.Errorf("mock razorpay: gateway unavailable")
	}

	m.nextID++
	order := GatewayOrder{
		ID:       fmt.Sprintf("order_mock%06d", m.nextID),
		Amount:   int64(math.Round(amount * 100)),
		Currency: "INR",
		Receipt:  receipt,
	}
	m.orders[order.ID] = order

	return order, nil
}

// VerifySignature verifies using the mock's secret and the real HMAC scheme
func (m *MockRazorpayService) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	return VerifyPaymentSignature(m.secret, gatewayOrderID, paymentID, signature)
}

// Sign produces a valid confirmation signature for the given ids, as the
// real gateway would (for test setups)
func (m *MockRazorpayService) Sign(gatewayOrderID, paymentID string) string {
	return SignPayment(m.secret, gatewayOrderID, paymentID)
}

// CreatedOrders returns all gateway orders created so far (for assertions)
func (m *MockRazorpayService) CreatedOrders() map[string]GatewayOrder {
	m.mu.Lock()
	defer m.mu.Unlock()

	orders := make(map[string]GatewayOrder, len(m.orders))
	for k, v := range m.orders {
		orders[k] = v
	}
	return orders
}
