// Package ledger implements the pure payment-ledger core: running-balance
// math over a server's earnings and append-only payment history. It holds no
// state of its own; callers pass a Server value in and get one back.
package ledger

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hazemadel/staffdeck-be/internal/models"
)

var (
	// ErrNotFound signals an unknown server or event id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidAmount signals a missing, zero, negative or non-finite amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrValidation signals a malformed payload, e.g. a missing name.
	ErrValidation = errors.New("validation failed")
)

// ValidateAmount checks that a payment amount is a finite number > 0.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("amount must be a finite number: %w", ErrInvalidAmount)
	}
	if amount <= 0 {
		return fmt.Errorf("amount must be greater than zero, got %s: %w", FormatCurrency(amount), ErrInvalidAmount)
	}
	return nil
}

// ApplyPayment records a payment against the server's remaining balance and
// appends the resulting record to its history. Overpayment is accepted and
// the balance clamps at zero; the record's Remaining carries the post-payment
// snapshot. The input value is not mutated.
func ApplyPayment(srv models.Server, amount float64, method models.PaymentMethod, note string, now time.Time) (models.Server, models.PaymentRecord, error) {
	if err := ValidateAmount(amount); err != nil {
		return srv, models.PaymentRecord{}, err
	}

	if method == "" {
		method = models.MethodCash
	}
	if !method.Valid() {
		return srv, models.PaymentRecord{}, fmt.Errorf("unknown payment method %q: %w", method, ErrValidation)
	}

	remaining := srv.TotalEarnings - amount
	if remaining < 0 {
		remaining = 0
	}

	record := models.PaymentRecord{
		ID:        uuid.New().String(),
		ServerID:  srv.ID,
		Amount:    amount,
		Remaining: remaining,
		Method:    method,
		Note:      note,
		CreatedAt: now,
	}

	srv.TotalEarnings = remaining
	srv.Payments = append(append([]models.PaymentRecord(nil), srv.Payments...), record)
	return srv, record, nil
}

// TotalPaid sums the amounts of all recorded payments. An empty or nil
// history sums to 0.
func TotalPaid(payments []models.PaymentRecord) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}

// OriginalEarnings reconstructs the pre-payment earnings total from the
// current balance and payment history. This is exact as long as every
// balance change goes through ApplyPayment.
func OriginalEarnings(srv models.Server) float64 {
	return srv.TotalEarnings + TotalPaid(srv.Payments)
}

// FormatCurrency renders an amount with a fixed two decimal places.
func FormatCurrency(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
