package services

import "fmt"

// LifecycleError is a typed failure from a custom-order lifecycle operation.
// Controllers map the code to an HTTP status.
type LifecycleError struct {
	Code    string
	Message string
}

func (e *LifecycleError) Error() string {
	return e.Message
}

// Lifecycle operation failures
var (
	// ErrOrderNotFound means no order matched the id (and owner, where scoped)
	ErrOrderNotFound = &LifecycleError{Code: "ORDER_NOT_FOUND", Message: "Order not found"}

	// ErrOrderNotEligible means the order exists but its current status or
	// missing price forbids the requested operation
	ErrOrderNotEligible = &LifecycleError{Code: "ORDER_NOT_ELIGIBLE", Message: "Order is not eligible for this operation"}

	// ErrNotAuthorized means the caller is not the order's assigned designer
	ErrNotAuthorized = &LifecycleError{Code: "NOT_AUTHORIZED", Message: "Not authorized to modify this order"}

	// ErrInvalidSignature means the payment confirmation signature did not match
	ErrInvalidSignature = &LifecycleError{Code: "INVALID_SIGNATURE", Message: "Invalid payment signature"}

	// ErrInvalidPrice means the proposed bid price is not a positive number
	ErrInvalidPrice = &LifecycleError{Code: "INVALID_PRICE", Message: "Price must be a positive number"}

	// ErrInvalidProgress means the progress value is outside 0-100
	ErrInvalidProgress = &LifecycleError{Code: "INVALID_PROGRESS", Message: "Progress must be between 0 and 100"}

	// ErrUnsupportedPaymentMethod means the payment method is not cod or razorpay
	ErrUnsupportedPaymentMethod = &LifecycleError{Code: "UNSUPPORTED_PAYMENT_METHOD", Message: "Unsupported payment method"}
)

// InvalidTransitionError reports a status change outside the transition
// table, carrying the attempted edge
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}
