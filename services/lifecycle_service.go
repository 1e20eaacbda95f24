package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/stitch-n-style/stitch-n-style-api/models"
	"gorm.io/gorm"
)

// EstimatedDeliveryWindow is how far out delivery is promised once a custom
// order enters production
const EstimatedDeliveryWindow = 14 * 24 * time.Hour

// statusTransitions is the canonical transition table for the custom-order
// lifecycle. Every status write goes through it; there is deliberately no
// other place in the codebase that assigns CustomOrder.Status.
var statusTransitions = map[string][]string{
	models.StatusPending:        {models.StatusAccepted, models.StatusCancelled},
	models.StatusAccepted:       {models.StatusWaitingPayment, models.StatusInProgress, models.StatusCancelled},
	models.StatusWaitingPayment: {models.StatusInProgress},
	models.StatusInProgress:     {models.StatusCompleted},
	models.StatusCompleted:      {models.StatusShipped},
	models.StatusShipped:        {models.StatusDelivered},
}

// CanTransition reports whether the lifecycle permits moving a custom order
// from one status to another
func CanTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// LifecycleService owns the custom-order status field, its valid transitions
// and the side effects each transition triggers (pricing, timestamps, cart
// clearing, payment details). Dependencies are injected so tests can supply
// an in-memory database and a mock gateway.
type LifecycleService struct {
	db      *gorm.DB
	gateway RazorpayInterface
}

// NewLifecycleService creates a lifecycle service bound to the given database
// handle and payment gateway
func NewLifecycleService(db *gorm.DB, gateway RazorpayInterface) *LifecycleService {
	return &LifecycleService{db: db, gateway: gateway}
}

// timestampColumn maps a status to the column recording when it was first
// reached
var timestampColumn = map[string]string{
	models.StatusAccepted:   "accepted_at",
	models.StatusInProgress: "in_progress_at",
	models.StatusCompleted:  "completed_at",
	models.StatusShipped:    "shipped_at",
	models.StatusDelivered:  "delivered_at",
	models.StatusCancelled:  "cancelled_at",
}

// statusTimestamp returns the timestamp field value for a status, or nil if
// the status has no timestamp or it was already set (set-once semantics)
func statusTimestamp(order *models.CustomOrder, status string) *time.Time {
	switch status {
	case models.StatusAccepted:
		return order.AcceptedAt
	case models.StatusInProgress:
		return order.InProgressAt
	case models.StatusCompleted:
		return order.CompletedAt
	case models.StatusShipped:
		return order.ShippedAt
	case models.StatusDelivered:
		return order.DeliveredAt
	case models.StatusCancelled:
		return order.CancelledAt
	}
	return nil
}

// withStatusTimestamp adds the status-entry timestamp to an update map,
// unless the order has already been in this status before
func withStatusTimestamp(updates map[string]interface{}, order *models.CustomOrder, status string, now time.Time) {
	column, ok := timestampColumn[status]
	if !ok {
		return
	}
	if statusTimestamp(order, status) == nil {
		updates[column] = now
	}
}

// findOrder loads an order by id, translating gorm's not-found error
func (s *LifecycleService) findOrder(orderID uint) (*models.CustomOrder, error) {
	var order models.CustomOrder
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &order, nil
}

// findCustomerOrder loads an order scoped to its owning customer
func (s *LifecycleService) findCustomerOrder(orderID, customerID uint) (*models.CustomOrder, error) {
	var order models.CustomOrder
	err := s.db.Where("id = ? AND customer_id = ?", orderID, customerID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &order, nil
}

// AcceptBid assigns a designer and a price to a pending order and moves it to
// accepted. The update is conditional on the order still being pending, so a
// racing second bid loses cleanly.
func (s *LifecycleService) AcceptBid(orderID, designerID uint, price float64) (*models.CustomOrder, error) {
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	order, err := s.findOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.StatusPending {
		return nil, ErrOrderNotEligible
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":               models.StatusAccepted,
		"price":                price,
		"assigned_designer_id": designerID,
	}
	withStatusTimestamp(updates, order, models.StatusAccepted, now)

	result := s.db.Model(&models.CustomOrder{}).
		Where("id = ? AND status = ?", orderID, models.StatusPending).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to accept bid: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Another designer got there first
		return nil, ErrOrderNotEligible
	}

	return s.findOrder(orderID)
}

// Checkout records the shipping address and payment method for an accepted,
// priced order. COD orders go straight to in_progress with the cart cleared;
// razorpay orders move to waiting_payment and return a gateway order for the
// client to pay. The gateway is called before any state is written, so a
// gateway failure leaves the order untouched.
func (s *LifecycleService) Checkout(orderID, customerID uint, address models.ShippingAddress, method string) (*models.CustomOrder, *GatewayOrder, error) {
	if method != models.PaymentMethodCOD && method != models.PaymentMethodRazorpay {
		return nil, nil, ErrUnsupportedPaymentMethod
	}

	order, err := s.findCustomerOrder(orderID, customerID)
	if err != nil {
		return nil, nil, err
	}
	if order.Price == nil {
		return nil, nil, ErrOrderNotEligible
	}
	if order.Status != models.StatusAccepted {
		return nil, nil, ErrOrderNotEligible
	}

	now := time.Now()
	addressUpdates := map[string]interface{}{
		"shipping_first_name":    address.FirstName,
		"shipping_last_name":     address.LastName,
		"shipping_email":         address.Email,
		"shipping_address_line1": address.AddressLine1,
		"shipping_address_line2": address.AddressLine2,
		"shipping_city":          address.City,
		"shipping_state":         address.State,
		"shipping_postal_code":   address.PostalCode,
		"shipping_country":       address.Country,
		"shipping_phone_number":  address.PhoneNumber,
	}

	if method == models.PaymentMethodCOD {
		updates := map[string]interface{}{
			"status":                     models.StatusInProgress,
			"payment_method":             models.PaymentMethodCOD,
			"payment_detail_method":      models.PaymentMethodCOD,
			"payment_detail_verified_at": now,
			"estimated_delivery":         now.Add(EstimatedDeliveryWindow),
		}
		for k, v := range addressUpdates {
			updates[k] = v
		}
		withStatusTimestamp(updates, order, models.StatusInProgress, now)

		// Order transition and cart clear are one atomic unit
		err := s.db.Transaction(func(tx *gorm.DB) error {
			result := tx.Model(&models.CustomOrder{}).
				Where("id = ? AND status = ?", orderID, models.StatusAccepted).
				Updates(updates)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrOrderNotEligible
			}

			return tx.Model(&models.User{}).
				Where("id = ?", customerID).
				Update("cart_data", models.CartData{}).Error
		})
		if err != nil {
			var lifecycleErr *LifecycleError
			if errors.As(err, &lifecycleErr) {
				return nil, nil, err
			}
			return nil, nil, fmt.Errorf("failed to process COD checkout: %w", err)
		}

		updated, err := s.findOrder(orderID)
		return updated, nil, err
	}

	// Online payment: register the order with the gateway first
	gatewayOrder, err := s.gateway.CreateOrder(*order.Price, fmt.Sprintf("custom-order-%d", orderID))
	if err != nil {
		return nil, nil, fmt.Errorf("payment gateway error: %w", err)
	}

	updates := map[string]interface{}{
		"status":         models.StatusWaitingPayment,
		"payment_method": models.PaymentMethodRazorpay,
	}
	for k, v := range addressUpdates {
		updates[k] = v
	}

	result := s.db.Model(&models.CustomOrder{}).
		Where("id = ? AND status = ?", orderID, models.StatusAccepted).
		Updates(updates)
	if result.Error != nil {
		return nil, nil, fmt.Errorf("failed to start payment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// The unpaid gateway order is abandoned; it can never be confirmed
		return nil, nil, ErrOrderNotEligible
	}

	updated, err := s.findOrder(orderID)
	if err != nil {
		return nil, nil, err
	}
	return updated, &gatewayOrder, nil
}

// VerifyPayment confirms an online payment. It is idempotent against replay:
// once a payment has been verified, re-submitting the confirmation returns
// the existing order without touching paymentDetails. The status transition
// and the customer's cart clear commit as one transaction.
func (s *LifecycleService) VerifyPayment(orderID uint, paymentID, gatewayOrderID, signature string) (*models.CustomOrder, error) {
	order, err := s.findOrder(orderID)
	if err != nil {
		return nil, err
	}

	// Already verified: replayed confirmations are a no-op
	if order.PaymentDetails.VerifiedAt != nil {
		return order, nil
	}
	if order.Status != models.StatusWaitingPayment {
		return nil, ErrOrderNotEligible
	}

	if !s.gateway.VerifySignature(gatewayOrderID, paymentID, signature) {
		return nil, ErrInvalidSignature
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":                          models.StatusInProgress,
		"payment_detail_method":           models.PaymentMethodRazorpay,
		"payment_detail_payment_id":       paymentID,
		"payment_detail_gateway_order_id": gatewayOrderID,
		"payment_detail_signature":        signature,
		"payment_detail_verified_at":      now,
		"estimated_delivery":              now.Add(EstimatedDeliveryWindow),
	}
	withStatusTimestamp(updates, order, models.StatusInProgress, now)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.CustomOrder{}).
			Where("id = ? AND status = ?", orderID, models.StatusWaitingPayment).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOrderNotEligible
		}

		return tx.Model(&models.User{}).
			Where("id = ?", order.CustomerID).
			Update("cart_data", models.CartData{}).Error
	})
	if err != nil {
		var lifecycleErr *LifecycleError
		if errors.As(err, &lifecycleErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}

	return s.findOrder(orderID)
}

// UpdateProgress advances the assigned designer's progress figure and derives
// the status from it: completed at 100, in_progress above zero
func (s *LifecycleService) UpdateProgress(orderID, designerID uint, progress int) (*models.CustomOrder, error) {
	if progress < 0 || progress > 100 {
		return nil, ErrInvalidProgress
	}

	order, err := s.findOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.AssignedDesignerID == nil || *order.AssignedDesignerID != designerID {
		return nil, ErrNotAuthorized
	}
	if order.Status != models.StatusAccepted && order.Status != models.StatusInProgress {
		return nil, ErrOrderNotEligible
	}

	now := time.Now()
	updates := map[string]interface{}{
		"progress": progress,
	}
	switch {
	case progress >= 100:
		updates["status"] = models.StatusCompleted
		withStatusTimestamp(updates, order, models.StatusInProgress, now)
		withStatusTimestamp(updates, order, models.StatusCompleted, now)
	case progress > 0:
		updates["status"] = models.StatusInProgress
		withStatusTimestamp(updates, order, models.StatusInProgress, now)
	}

	result := s.db.Model(&models.CustomOrder{}).
		Where("id = ? AND status IN ?", orderID, []string{models.StatusAccepted, models.StatusInProgress}).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update progress: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrOrderNotEligible
	}

	return s.findOrder(orderID)
}

// UpdateStatus performs a manual transition along the table (used by the
// designer dashboard for completed -> shipped -> delivered style moves)
func (s *LifecycleService) UpdateStatus(orderID uint, to string) (*models.CustomOrder, error) {
	order, err := s.findOrder(orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(order.Status, to) {
		return nil, &InvalidTransitionError{From: order.Status, To: to}
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status": to,
	}
	withStatusTimestamp(updates, order, to, now)

	result := s.db.Model(&models.CustomOrder{}).
		Where("id = ? AND status = ?", orderID, order.Status).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Raced with another transition; the guard no longer holds
		return nil, ErrOrderNotEligible
	}

	return s.findOrder(orderID)
}

// Cancel marks a customer's order cancelled. Only pre-payment orders may be
// cancelled; the row is never deleted.
func (s *LifecycleService) Cancel(orderID, customerID uint) (*models.CustomOrder, error) {
	order, err := s.findCustomerOrder(orderID, customerID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(order.Status, models.StatusCancelled) {
		return nil, &InvalidTransitionError{From: order.Status, To: models.StatusCancelled}
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status": models.StatusCancelled,
	}
	withStatusTimestamp(updates, order, models.StatusCancelled, now)

	result := s.db.Model(&models.CustomOrder{}).
		Where("id = ? AND status = ?", orderID, order.Status).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrOrderNotEligible
	}

	return s.findOrder(orderID)
}

// SetTracking records shipment tracking details. A completed order advances
// to shipped as a side effect; any other status keeps its place in the
// lifecycle and just carries the tracking info.
func (s *LifecycleService) SetTracking(orderID, designerID uint, number, carrier string) (*models.CustomOrder, error) {
	order, err := s.findOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.AssignedDesignerID == nil || *order.AssignedDesignerID != designerID {
		return nil, ErrNotAuthorized
	}

	now := time.Now()
	updates := map[string]interface{}{
		"tracking_number":     number,
		"tracking_carrier":    carrier,
		"tracking_updated_at": now,
	}
	if order.Status == models.StatusCompleted {
		updates["status"] = models.StatusShipped
		withStatusTimestamp(updates, order, models.StatusShipped, now)
	}

	result := s.db.Model(&models.CustomOrder{}).
		Where("id = ? AND status = ?", orderID, order.Status).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to set tracking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrOrderNotEligible
	}

	return s.findOrder(orderID)
}
