package services

import (
	"fmt"
	"sync"

	"github.com/stitch-n-style/stitch-n-style-api/models"
)

// MockStripeService is a mock implementation of StripeInterface for testing
type MockStripeService struct {
	sessions     map[string]uint // session ID -> order ID
	failSessions bool
	nextID       int
	mu           sync.Mutex
}

// NewMockStripeService creates a new mock hosted-checkout gateway
func NewMockStripeService() *MockStripeService {
	return &MockStripeService{
		sessions: make(map[string]uint),
	}
}

// SetAsMockForTesting sets this mock as the global Stripe service instance for testing
func (m *MockStripeService) SetAsMockForTesting() {
	SetStripeService(m)
}

// FailSessions makes every subsequent CreateCheckoutSession call return an
// error, simulating a gateway outage
func (m *MockStripeService) FailSessions(fail bool) {
	m.mu.Lock()
	m.failSessions = fail
	m.mu.Unlock()
}

// CreateCheckoutSession simulates building a hosted payment page
func (m *MockStripeService) CreateCheckoutSession(orderID uint, items models.OrderItems, origin string) (CheckoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSessions {
		return CheckoutSession{}, fmt.Errorf("mock stripe: gateway unavailable")
	}

	m.nextID++
	sessionID := fmt.Sprintf("cs_test_mock%06d", m.nextID)
	m.sessions[sessionID] = orderID

	return CheckoutSession{
		ID:  sessionID,
		URL: fmt.Sprintf("https://checkout.stripe.test/pay/%s", sessionID),
	}, nil
}

// CreatedSessions returns all checkout sessions created so far (for assertions)
func (m *MockStripeService) CreatedSessions() map[string]uint {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessions := make(map[string]uint, len(m.sessions))
	for k, v := range m.sessions {
		sessions[k] = v
	}
	return sessions
}
