package model

// Payment statuses.  Status is recorded as reported by the caller; no
// external payment gateway is consulted.
const (
	PaymentPending  = "PENDING"
	PaymentSuccess  = "SUCCESS"
	PaymentFailed   = "FAILED"
	PaymentRefunded = "REFUNDED"
)

// ValidPaymentStatus reports whether s is a member of the payment status set.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentSuccess, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Payment records money taken for a booking.  Each booking has at most
// one payment.
//
// Fields:
//  ID            – primary key identifier.
//  BookingID     – booking being paid for.
//  Amount        – amount charged.
//  PaymentMethod – how the passenger paid (e.g. UPI, CARD, CASH).
//  Status        – one of the Payment* constants.
//  TransactionID – generated transaction reference (nullable).
type Payment struct {
	ID            uint64  // payments.id
	BookingID     uint64  // payments.booking_id
	Amount        float64 // payments.amount
	PaymentMethod string  // payments.payment_method
	Status        string  // payments.status
	TransactionID *string // payments.transaction_id (nullable)
}
