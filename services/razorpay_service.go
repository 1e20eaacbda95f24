package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"

	razorpay "github.com/razorpay/razorpay-go"
	appConfig "github.com/stitch-n-style/stitch-n-style-api/config"
)

// GatewayOrder is a payment order created at the gateway. Its ID is handed to
// the client and comes back later in the signature-verified confirmation call.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // smallest currency unit (paise)
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// RazorpayInterface defines the interface for the intent-based payment gateway
type RazorpayInterface interface {
	// CreateOrder registers a pre-paid order with the gateway. Amount is in
	// rupees; the receipt ties the gateway order back to ours.
	CreateOrder(amount float64, receipt string) (GatewayOrder, error)

	// VerifySignature checks the gateway's payment confirmation signature
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}

// RazorpayService handles all Razorpay gateway operations
type RazorpayService struct {
	client *razorpay.Client
	secret string
}

var razorpayServiceInstance RazorpayInterface

// InitRazorpayService initializes the Razorpay service with API credentials
func InitRazorpayService() RazorpayInterface {
	cfg := appConfig.GetConfig()
	razorpayServiceInstance = &RazorpayService{
		client: razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		secret: cfg.RazorpayKeySecret,
	}
	return razorpayServiceInstance
}

// GetRazorpayService returns the initialized Razorpay service instance
func GetRazorpayService() RazorpayInterface {
	return razorpayServiceInstance
}

// SetRazorpayService sets the Razorpay service instance (primarily for testing)
func SetRazorpayService(service RazorpayInterface) {
	razorpayServiceInstance = service
}

// CreateOrder creates a Razorpay order for the given amount in rupees
func (s *RazorpayService) CreateOrder(amount float64, receipt string) (GatewayOrder, error) {
	// Razorpay expects the amount in paise
	paise := int64(math.Round(amount * 100))

	data := map[string]interface{}{
		"amount":   paise,
		"currency": "INR",
		"receipt":  receipt,
	}

	body, err := s.client.Order.Create(data, nil)
	if err != nil {
		return GatewayOrder{}, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return GatewayOrder{}, fmt.Errorf("razorpay order response missing id")
	}

	return GatewayOrder{
		ID:       id,
		Amount:   paise,
		Currency: "INR",
		Receipt:  receipt,
	}, nil
}

// VerifySignature recomputes the expected HMAC-SHA256 signature over
// "{gatewayOrderID}|{paymentID}" and compares it in constant time
func (s *RazorpayService) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	return VerifyPaymentSignature(s.secret, gatewayOrderID, paymentID, signature)
}

// VerifyPaymentSignature checks a Razorpay payment confirmation signature
// against the shared secret. The comparison is constant time so signature
// checking does not leak timing information.
func VerifyPaymentSignature(secret, gatewayOrderID, paymentID, signature string) bool {
	expected := SignPayment(secret, gatewayOrderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignPayment computes the hex HMAC-SHA256 signature over
// "{gatewayOrderID}|{paymentID}" with the given secret
func SignPayment(secret, gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
