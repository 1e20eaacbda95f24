package services

import (
	"fmt"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"
	appConfig "github.com/stitch-n-style/stitch-n-style-api/config"
	"github.com/stitch-n-style/stitch-n-style-api/models"
)

// Flat delivery charge added as its own line item on hosted checkouts
const DeliveryCharge = 49.0

// CheckoutSession is the hosted-checkout handle returned to the client: it
// redirects the shopper to the gateway's payment page.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// StripeInterface defines the interface for the hosted-checkout gateway
type StripeInterface interface {
	// CreateCheckoutSession builds a hosted payment page for the order items.
	// origin is the frontend base URL for the success/cancel redirects.
	CreateCheckoutSession(orderID uint, items models.OrderItems, origin string) (CheckoutSession, error)
}

// StripeService handles all Stripe gateway operations
type StripeService struct{}

var stripeServiceInstance StripeInterface

// InitStripeService initializes the Stripe service with the API key
func InitStripeService() StripeInterface {
	cfg := appConfig.GetConfig()
	stripe.Key = cfg.StripeSecretKey
	stripeServiceInstance = &StripeService{}
	return stripeServiceInstance
}

// GetStripeService returns the initialized Stripe service instance
func GetStripeService() StripeInterface {
	return stripeServiceInstance
}

// SetStripeService sets the Stripe service instance (primarily for testing)
func SetStripeService(service StripeInterface) {
	stripeServiceInstance = service
}

// CreateCheckoutSession creates a Stripe Checkout session with one line item
// per ordered product plus the delivery charge
func (s *StripeService) CreateCheckoutSession(orderID uint, items models.OrderItems, origin string) (CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items)+1)
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(int64(item.Price * 100)),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency: stripe.String(string(stripe.CurrencyUSD)),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String("Delivery Charges"),
			},
			UnitAmount: stripe.Int64(int64(DeliveryCharge * 100)),
		},
		Quantity: stripe.Int64(1),
	})

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(fmt.Sprintf("%s/verify?success=true&orderId=%d", origin, orderID)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/verify?success=false&orderId=%d", origin, orderID)),
		LineItems:  lineItems,
	}

	sess, err := session.New(params)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}
